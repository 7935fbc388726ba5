// Package waysurface drives a single GPU-presented window on a Wayland
// compositor.
//
// # Overview
//
// Wayland requires an explicit handshake before a client may show pixels.
// waysurface sequences that handshake as an explicit state machine:
//
//  1. Registry discovery binds wl_compositor and xdg_wm_base and creates the
//     base wl_surface.
//  2. The surface receives the xdg_toplevel role, a title and an app id, and
//     is committed without a buffer.
//  3. Each xdg_surface.configure is acknowledged, the most recent toplevel
//     size is applied to the GPU surface, and the window becomes configured.
//  4. The run loop alternates pumping events and rendering one frame until
//     the compositor asks the window to close.
//
// # Quick Start
//
//	conn, err := platform.Connect("")
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
//	s := waysurface.NewSession(conn, waysurface.WithTitle("demo"))
//	err = waysurface.Run(ctx, conn, s, func(window uintptr) (waysurface.Presenter, error) {
//	    return newGPUPresenter(conn.DisplayHandle(), window)
//	})
//
// # Architecture
//
// The package itself is transport-agnostic. Protocol objects are reached
// through the narrow interfaces in protocol.go, events arrive as the closed
// [Event] set, and GPU work is delegated to a [Presenter]. The concrete
// libwayland binding lives in internal/wl and internal/platform; GPU
// presentation lives in present and render.
//
// # Threading
//
// Everything runs on the goroutine that calls [Run]. Event handlers execute
// synchronously inside [EventSource.Pump] and mutate the [Session] without
// locks.
package waysurface

// Version information
const (
	// Version is the current version of the module
	Version = "0.1.0"
)
