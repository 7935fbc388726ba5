package waysurface

// Interface identifies a compositor global this package cares about.
// Interface names are resolved once when the global is announced.
type Interface int

const (
	// InterfaceUnknown is any global that is not used.
	InterfaceUnknown Interface = iota
	// InterfaceCompositor is wl_compositor, the surface factory.
	InterfaceCompositor
	// InterfaceShell is xdg_wm_base, the window shell.
	InterfaceShell
)

// Highest interface versions this package speaks.
const (
	CompositorVersion uint32 = 4
	ShellVersion      uint32 = 1
)

// ParseInterface maps a protocol interface name to an Interface.
func ParseInterface(name string) Interface {
	switch name {
	case "wl_compositor":
		return InterfaceCompositor
	case "xdg_wm_base":
		return InterfaceShell
	default:
		return InterfaceUnknown
	}
}

// String returns the protocol interface name.
func (i Interface) String() string {
	switch i {
	case InterfaceCompositor:
		return "wl_compositor"
	case InterfaceShell:
		return "xdg_wm_base"
	default:
		return "unknown"
	}
}

// BindVersion returns the version to bind for an advertised global:
// the lower of the advertised and the supported version.
func (i Interface) BindVersion(advertised uint32) uint32 {
	var supported uint32
	switch i {
	case InterfaceCompositor:
		supported = CompositorVersion
	case InterfaceShell:
		supported = ShellVersion
	default:
		return 0
	}
	return min(advertised, supported)
}

// Binder binds registry globals.
type Binder interface {
	BindCompositor(name, version uint32) (Compositor, error)
	BindShell(name, version uint32) (Shell, error)
}

// Compositor creates drawable surfaces.
type Compositor interface {
	CreateSurface() (Surface, error)
}

// Surface is the base drawable surface.
type Surface interface {
	// Commit applies pending surface state.
	Commit() error
	// Handle returns the native wl_surface pointer for GPU surface creation.
	Handle() uintptr
}

// Shell is the window shell global.
type Shell interface {
	// GetSurfaceAdapter creates the xdg_surface for a surface.
	GetSurfaceAdapter(Surface) (RoleAdapter, error)
	// Pong answers a liveness ping.
	Pong(serial uint32) error
}

// RoleAdapter is the shell-side wrapper of a surface (xdg_surface).
type RoleAdapter interface {
	// GetWindowRole assigns the toplevel role.
	GetWindowRole() (WindowRole, error)
	// AckConfigure acknowledges a configure serial.
	AckConfigure(serial uint32) error
}

// WindowRole is the toplevel window role (xdg_toplevel).
type WindowRole interface {
	SetTitle(title string) error
	SetAppID(appID string) error
}

// EventSource delivers protocol events in order.
type EventSource interface {
	// Pump flushes outgoing requests, blocks until at least one batch of
	// events arrives and delivers each to h before returning.
	Pump(h EventHandler) error
	// Roundtrip blocks until the compositor has processed every request
	// sent so far, delivering events to h meanwhile.
	Roundtrip(h EventHandler) error
}

// Presenter owns the GPU side of the window.
type Presenter interface {
	// Configure (re)configures the presentation surface for size.
	Configure(size WindowSize) error
	// RenderFrame acquires, clears and presents one frame.
	RenderFrame() error
}

// PresenterFactory creates the presenter for a native wl_surface pointer.
type PresenterFactory func(window uintptr) (Presenter, error)
