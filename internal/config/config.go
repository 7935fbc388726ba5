// Package config loads waysurface settings from flags, environment,
// config file and defaults through viper.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. WAYSURFACE_WINDOW_TITLE.
const EnvPrefix = "WAYSURFACE"

// Config is the complete configuration of the waysurface command.
type Config struct {
	Window WindowConfig `mapstructure:"window" yaml:"window"`
	Render RenderConfig `mapstructure:"render" yaml:"render"`
	GPU    GPUConfig    `mapstructure:"gpu" yaml:"gpu"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// WindowConfig controls the toplevel window.
type WindowConfig struct {
	// Title is shown by the compositor. NFC-normalized before use.
	Title string `mapstructure:"title" yaml:"title"`
	// AppID groups windows of the same application.
	AppID string `mapstructure:"app_id" yaml:"app_id"`
	// Width and Height are used when the compositor leaves the size to the
	// client.
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// RenderConfig controls frame content and presentation.
type RenderConfig struct {
	// ClearColor is an SVG color name or #rrggbb[aa].
	ClearColor string `mapstructure:"clear_color" yaml:"clear_color"`
	// PresentMode is mailbox, fifo, fifo-relaxed or immediate.
	PresentMode string `mapstructure:"present_mode" yaml:"present_mode"`
}

// GPUConfig controls adapter and device selection.
type GPUConfig struct {
	Backend         string `mapstructure:"backend" yaml:"backend"`
	PowerPreference string `mapstructure:"power_preference" yaml:"power_preference"`
	Debug           bool   `mapstructure:"debug" yaml:"debug"`
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "waysurface",
			AppID:  "waysurface",
			Width:  320,
			Height: 320,
		},
		Render: RenderConfig{
			ClearColor:  "blue",
			PresentMode: "mailbox",
		},
		GPU: GPUConfig{
			Backend:         "auto",
			PowerPreference: "none",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "auto",
		},
	}
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("window.title", defaults.Window.Title)
	v.SetDefault("window.app_id", defaults.Window.AppID)
	v.SetDefault("window.width", defaults.Window.Width)
	v.SetDefault("window.height", defaults.Window.Height)

	v.SetDefault("render.clear_color", defaults.Render.ClearColor)
	v.SetDefault("render.present_mode", defaults.Render.PresentMode)

	v.SetDefault("gpu.backend", defaults.GPU.Backend)
	v.SetDefault("gpu.power_preference", defaults.GPU.PowerPreference)
	v.SetDefault("gpu.debug", defaults.GPU.Debug)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
}

// Setup prepares v: defaults, environment binding and the config file.
// An explicit file must exist; the default file is optional.
func Setup(v *viper.Viper, file string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		return v.ReadInConfig()
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// Load reads the configuration from v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// ConfigDir returns the directory holding config.yaml.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "waysurface")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".waysurface"
	}
	return filepath.Join(home, ".config", "waysurface")
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
