package waysurface

import "strings"

// Event is a protocol event delivered by an EventSource.
// The set of events is closed; see the concrete types below.
type Event interface {
	isEvent()
}

// EventHandler consumes events. A non-nil error is fatal to the pump.
type EventHandler interface {
	Handle(ev Event) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(Event) error

// Handle calls f(ev).
func (f EventHandlerFunc) Handle(ev Event) error { return f(ev) }

// GlobalEvent announces a registry global.
type GlobalEvent struct {
	Name      uint32
	Interface string
	Version   uint32
}

// GlobalRemoveEvent withdraws a registry global.
type GlobalRemoveEvent struct {
	Name uint32
}

// PingEvent is the shell liveness check.
type PingEvent struct {
	Serial uint32
}

// SurfaceConfigureEvent ends a configure sequence and must be acknowledged.
type SurfaceConfigureEvent struct {
	Serial uint32
}

// ToplevelConfigureEvent proposes a window size. Zero means the client
// chooses.
type ToplevelConfigureEvent struct {
	Width  int32
	Height int32
	States []ToplevelState
}

// CloseEvent asks the window to close.
type CloseEvent struct{}

func (GlobalEvent) isEvent()            {}
func (GlobalRemoveEvent) isEvent()      {}
func (PingEvent) isEvent()              {}
func (SurfaceConfigureEvent) isEvent()  {}
func (ToplevelConfigureEvent) isEvent() {}
func (CloseEvent) isEvent()             {}

// ToplevelState is an xdg_toplevel state flag.
type ToplevelState uint32

// Values from the xdg_toplevel.state enum.
const (
	ToplevelMaximized   ToplevelState = 1
	ToplevelFullscreen  ToplevelState = 2
	ToplevelResizing    ToplevelState = 3
	ToplevelActivated   ToplevelState = 4
	ToplevelTiledLeft   ToplevelState = 5
	ToplevelTiledRight  ToplevelState = 6
	ToplevelTiledTop    ToplevelState = 7
	ToplevelTiledBottom ToplevelState = 8
	ToplevelSuspended   ToplevelState = 9
)

// String returns the protocol name of the state.
func (s ToplevelState) String() string {
	switch s {
	case ToplevelMaximized:
		return "maximized"
	case ToplevelFullscreen:
		return "fullscreen"
	case ToplevelResizing:
		return "resizing"
	case ToplevelActivated:
		return "activated"
	case ToplevelTiledLeft:
		return "tiled_left"
	case ToplevelTiledRight:
		return "tiled_right"
	case ToplevelTiledTop:
		return "tiled_top"
	case ToplevelTiledBottom:
		return "tiled_bottom"
	case ToplevelSuspended:
		return "suspended"
	default:
		return "unknown"
	}
}

// formatStates renders states for logging, e.g. "activated|resizing".
func formatStates(states []ToplevelState) string {
	if len(states) == 0 {
		return "none"
	}
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = s.String()
	}
	return strings.Join(names, "|")
}
