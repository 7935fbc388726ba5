package waysurface

import (
	"fmt"
	"slices"
)

// Session is the whole-process window state.
//
// A Session is created once with nothing bound. It is mutated only by
// Handle (called from EventSource.Pump) and by Run, both on the same
// goroutine. Session is not safe for concurrent use.
type Session struct {
	opts   sessionOptions
	binder Binder

	running bool
	state   State

	compositor     Compositor
	compositorName uint32
	shell          Shell
	shellName      uint32

	surface Surface
	adapter RoleAdapter
	role    WindowRole

	size       WindowSize
	pending    WindowSize
	hasPending bool
	states     []ToplevelState

	presenter  Presenter
	configured bool // presenter has received at least one size

	// awaitingPresenter is set while Run initializes: a configure that
	// arrives before the presenter exists is acked and applied on attach.
	awaitingPresenter bool
	deferred          bool
	deferredSerial    uint32
}

// NewSession creates a session that binds globals through binder.
func NewSession(binder Binder, opts ...SessionOption) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{
		opts:    o,
		binder:  binder,
		running: true,
		state:   StateUnassigned,
		size:    o.defaultSize,
	}
}

// Handle dispatches one protocol event. It implements EventHandler.
func (s *Session) Handle(ev Event) error {
	switch e := ev.(type) {
	case GlobalEvent:
		return s.handleGlobal(e)
	case GlobalRemoveEvent:
		s.handleGlobalRemove(e)
		return nil
	case PingEvent:
		return s.handlePing(e)
	case SurfaceConfigureEvent:
		return s.handleSurfaceConfigure(e)
	case ToplevelConfigureEvent:
		s.handleToplevelConfigure(e)
		return nil
	case CloseEvent:
		s.handleClose()
		return nil
	default:
		return fmt.Errorf("waysurface: unexpected event %T", ev)
	}
}

// AttachPresenter installs the GPU presenter. It may be called once. A
// configure acknowledged before the presenter existed is applied now.
func (s *Session) AttachPresenter(p Presenter) error {
	if p == nil {
		return precondition("attach presenter", "presenter is non-nil")
	}
	if s.presenter != nil {
		return ErrPresenterAttached
	}
	s.presenter = p
	s.awaitingPresenter = false
	if s.deferred {
		return s.applySize(s.deferredSerial)
	}
	return nil
}

// Running reports whether the run loop should continue.
func (s *Session) Running() bool { return s.running }

// Stop clears the running flag; the loop exits before the next frame.
func (s *Session) Stop() { s.running = false }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// CurrentSize returns the size last applied to the presentation surface,
// or the default size before the first configure.
func (s *Session) CurrentSize() WindowSize { return s.size }

// PendingSize returns the size proposed by the latest toplevel configure
// that has not been acknowledged yet.
func (s *Session) PendingSize() (WindowSize, bool) { return s.pending, s.hasPending }

// ToplevelStates returns the states from the latest toplevel configure.
func (s *Session) ToplevelStates() []ToplevelState { return slices.Clone(s.states) }

// Surface returns the base surface, or nil before wl_compositor is bound.
func (s *Session) Surface() Surface { return s.surface }

// Title returns the window title.
func (s *Session) Title() string { return s.opts.title }

// AppID returns the application id.
func (s *Session) AppID() string { return s.opts.appID }
