package waysurface

import (
	"errors"
	"fmt"
)

// AssignRole gives the base surface the toplevel role.
//
// The steps run in protocol order: create the xdg_surface, create the
// xdg_toplevel from it, set title and app id, then commit with no buffer
// attached so the compositor sends the first configure. A second call
// returns ErrRoleAssigned and sends nothing.
func (s *Session) AssignRole() error {
	if s.role != nil || s.state != StateUnassigned {
		return ErrRoleAssigned
	}
	if s.surface == nil {
		return precondition("assign role", "base surface exists")
	}
	if s.shell == nil {
		return precondition("assign role", "window shell is bound")
	}

	adapter, err := s.shell.GetSurfaceAdapter(s.surface)
	if err != nil {
		return fmt.Errorf("waysurface: get xdg_surface: %w", err)
	}
	role, err := adapter.GetWindowRole()
	if err != nil {
		return fmt.Errorf("waysurface: get xdg_toplevel: %w", err)
	}
	s.adapter, s.role = adapter, role
	s.state = StateRoleAssigned

	if err := role.SetTitle(s.opts.title); err != nil {
		return fmt.Errorf("waysurface: set title: %w", err)
	}
	if err := role.SetAppID(s.opts.appID); err != nil {
		return fmt.Errorf("waysurface: set app id: %w", err)
	}
	if err := s.surface.Commit(); err != nil {
		return fmt.Errorf("waysurface: initial commit: %w", err)
	}
	s.state = StateAwaitingConfigure

	Logger().Info("waysurface: role assigned", "title", s.opts.title, "app_id", s.opts.appID)
	return nil
}

// maybeAssignRole assigns the role once both the surface and the shell
// exist. Globals may arrive in any order.
func (s *Session) maybeAssignRole() error {
	if s.surface == nil || s.shell == nil || s.state != StateUnassigned {
		return nil
	}
	return s.AssignRole()
}

// ensureRole assigns the role if registry handling has not done so.
func (s *Session) ensureRole() error {
	err := s.AssignRole()
	if errors.Is(err, ErrRoleAssigned) {
		return nil
	}
	return err
}

func (s *Session) handlePing(ev PingEvent) error {
	if s.shell == nil {
		return precondition("ping", "window shell is bound")
	}
	if err := s.shell.Pong(ev.Serial); err != nil {
		return fmt.Errorf("waysurface: pong %d: %w", ev.Serial, err)
	}
	return nil
}

// handleSurfaceConfigure acknowledges the serial first, then applies the
// latest pending size to the presentation surface and promotes it. The
// first configure also sizes the presentation surface when no toplevel
// size was proposed, so a configured window always has a configured GPU
// surface. While Run is still creating the presenter the size is kept and
// applied by AttachPresenter.
func (s *Session) handleSurfaceConfigure(ev SurfaceConfigureEvent) error {
	if s.adapter == nil {
		return precondition("configure", "window role is assigned")
	}
	if err := s.adapter.AckConfigure(ev.Serial); err != nil {
		return fmt.Errorf("waysurface: ack configure %d: %w", ev.Serial, err)
	}

	if !s.hasPending && s.configured {
		Logger().Debug("waysurface: configure acknowledged", "serial", ev.Serial)
		s.markConfigured()
		return nil
	}
	if s.presenter == nil {
		if !s.awaitingPresenter {
			return precondition("configure", "presentation context exists")
		}
		s.deferred, s.deferredSerial = true, ev.Serial
		Logger().Debug("waysurface: configure deferred until presenter exists", "serial", ev.Serial)
		return nil
	}
	return s.applySize(ev.Serial)
}

// applySize configures the presenter with the pending size, or the current
// size when nothing is pending, and promotes it.
func (s *Session) applySize(serial uint32) error {
	next := s.size
	if s.hasPending {
		next = s.pending
	}
	if err := s.presenter.Configure(next); err != nil {
		return fmt.Errorf("waysurface: configure presentation surface %s: %w", next, err)
	}
	s.size = next
	s.hasPending = false
	s.configured = true
	s.deferred = false
	Logger().Info("waysurface: surface configured", "serial", serial, "size", next)
	s.markConfigured()
	return nil
}

func (s *Session) markConfigured() {
	if s.state != StateClosed {
		s.state = StateConfigured
	}
}

// handleToplevelConfigure records the proposed size. The last proposal
// before an acknowledgment wins.
func (s *Session) handleToplevelConfigure(ev ToplevelConfigureEvent) {
	s.pending = ResolveSize(ev.Width, ev.Height, s.opts.defaultSize)
	s.hasPending = true
	s.states = ev.States
	Logger().Debug("waysurface: toplevel configure",
		"width", ev.Width, "height", ev.Height,
		"resolved", s.pending, "states", formatStates(ev.States))
}

func (s *Session) handleClose() {
	s.running = false
	s.state = StateClosed
	Logger().Info("waysurface: close requested")
}
