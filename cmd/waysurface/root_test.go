//go:build linux

package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/waysurface"
	"github.com/gogpu/waysurface/internal/config"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute(%v) error = %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	got := execute(t, "version")
	if want := "waysurface " + waysurface.Version + "\n"; got != want {
		t.Errorf("version output = %q, want %q", got, want)
	}
}

func TestConfigCommand(t *testing.T) {
	t.Setenv("WAYSURFACE_WINDOW_TITLE", "env title")
	got := execute(t, "config", "--log-level", "debug")

	for _, want := range []string{"title: env title", "level: debug", "present_mode: mailbox"} {
		if !strings.Contains(got, want) {
			t.Errorf("config output missing %q:\n%s", want, got)
		}
	}
}

func TestConfigCommandInvalid(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"config", "--log-format", "xml"})
	if err := root.Execute(); err == nil {
		t.Error("Execute() with invalid log format error = nil, want error")
	}
}

func TestFlagKeysBound(t *testing.T) {
	root := newRootCmd()
	for name := range flagKeys {
		if root.Flags().Lookup(name) == nil && root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("flag --%s not defined", name)
		}
	}
}

func TestUseJSON(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		format string
		want   bool
	}{
		{"json", true},
		{"JSON", true},
		{"text", false},
		{"auto", false}, // not a file
	}
	for _, tt := range tests {
		if got := useJSON(tt.format, &buf); got != tt.want {
			t.Errorf("useJSON(%q, buffer) = %v, want %v", tt.format, got, tt.want)
		}
	}

	f, err := os.CreateTemp(t.TempDir(), "log")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if !useJSON("auto", f) {
		t.Error("useJSON(\"auto\", regular file) = false, want true")
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(config.LogConfig{Level: "warn", Format: "text"}, &buf)
	l.Info("hidden")
	l.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("logger output = %q, want only warn records", out)
	}
}

func TestGPUOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Render.ClearColor = "#ff0000"

	clearColor, opts, err := gpuOptions(cfg)
	if err != nil {
		t.Fatalf("gpuOptions() error = %v", err)
	}
	if want := (gputypes.Color{R: 1, A: 1}); clearColor != want {
		t.Errorf("clear color = %+v, want %+v", clearColor, want)
	}
	if len(opts) != 4 {
		t.Errorf("len(opts) = %d, want 4", len(opts))
	}

	cfg.Render.PresentMode = "bogus"
	if _, _, err := gpuOptions(cfg); err == nil {
		t.Error("gpuOptions() with bad present mode error = nil, want error")
	}
}

func TestSessionOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Title = "Demo"
	cfg.Window.Width, cfg.Window.Height = 640, 480

	s := waysurface.NewSession(nil, sessionOptions(cfg)...)
	if s.Title() != "Demo" {
		t.Errorf("Title() = %q, want %q", s.Title(), "Demo")
	}
	if got := s.CurrentSize(); got != (waysurface.WindowSize{Width: 640, Height: 480}) {
		t.Errorf("CurrentSize() = %v, want 640x480", got)
	}
}
