//go:build linux

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/waysurface"
	"github.com/gogpu/waysurface/internal/config"
)

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"title":            "window.title",
	"app-id":           "window.app_id",
	"width":            "window.width",
	"height":           "window.height",
	"clear-color":      "render.clear_color",
	"present-mode":     "render.present_mode",
	"backend":          "gpu.backend",
	"power-preference": "gpu.power_preference",
	"gpu-debug":        "gpu.debug",
	"log-level":        "log.level",
	"log-format":       "log.format",
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "waysurface",
		Short: "Show a GPU-presented Wayland window",
		Long: `waysurface connects to the Wayland compositor, opens one xdg_toplevel
window and clears it on the GPU every frame until the compositor closes it.

Settings come from flags, WAYSURFACE_* environment variables, the config file
($XDG_CONFIG_HOME/waysurface/config.yaml) and built-in defaults, in that order.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.Setup(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			waysurface.SetLogger(newLogger(cfg.Log, os.Stderr))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/waysurface/config.yaml)")

	f := root.Flags()
	f.String("title", "", "window title")
	f.String("app-id", "", "application id")
	f.Int("width", 0, "width when the compositor leaves sizing to the client")
	f.Int("height", 0, "height when the compositor leaves sizing to the client")
	f.String("clear-color", "", "clear color: SVG name or #rrggbb[aa]")
	f.String("present-mode", "", "present mode: mailbox, fifo, fifo-relaxed, immediate")
	f.String("backend", "", "GPU backend: auto, vulkan, gl")
	f.String("power-preference", "", "adapter power preference: none, low-power, high-performance")
	f.Bool("gpu-debug", false, "enable GPU debug and validation layers")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "", "log format: auto, text, json")

	for name, key := range flagKeys {
		flag := f.Lookup(name)
		if flag == nil {
			flag = root.PersistentFlags().Lookup(name)
		}
		_ = v.BindPFlag(key, flag)
	}

	root.AddCommand(newVersionCmd(), newConfigCmd(v))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "waysurface %s\n", waysurface.Version)
		},
	}
}

func newConfigCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			if used := v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", used)
			}
			return cfg.WriteYAML(cmd.OutOrStdout())
		},
	}
}
