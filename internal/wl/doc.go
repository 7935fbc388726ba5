// Package wl is a minimal Wayland client binding over libwayland-client.
//
// The library is loaded at runtime with goffi, so no cgo toolchain is
// needed. Only the objects required to show one xdg_toplevel window are
// covered: wl_display, wl_registry, wl_compositor, wl_surface, xdg_wm_base,
// xdg_surface and xdg_toplevel. xdg-shell interface tables are built in Go.
//
// Events are delivered through function fields on each object:
//
//	registry.Global = func(name uint32, iface string, version uint32) { ... }
//	toplevel.Close = func() { ... }
//
// Handlers run on the goroutine that dispatches the object's event queue.
// Native pointers are exposed through Ptr so they can be handed to a GPU
// backend as surface handles.
package wl
