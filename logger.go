package waysurface

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/wgpu"

	"github.com/gogpu/waysurface/present"
	"github.com/gogpu/waysurface/render"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for waysurface, its sub-packages and the
// wgpu stack underneath. By default nothing is logged.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by waysurface:
//   - [slog.LevelDebug]: protocol traffic (globals, configure serials, toplevel states)
//   - [slog.LevelInfo]: lifecycle transitions (role assigned, surface configured, adapter selected)
//   - [slog.LevelWarn]: non-fatal issues (global removed, present mode fallback)
//
// Example:
//
//	waysurface.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	present.SetLogger(l)
	render.SetLogger(l)
	wgpu.SetLogger(l)
}

// Logger returns the current logger used by waysurface.
// The platform layer calls this to share the same logger configuration
// without introducing import cycles.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
