package waysurface

import (
	"context"
	"fmt"
	"runtime"
)

// Run drives the session until the compositor closes the window, ctx is
// cancelled, or an error occurs.
//
// Run performs one roundtrip so every initial global is announced and
// bound, fails with ErrMissingCapability if wl_compositor or xdg_wm_base is
// absent, makes sure the role is assigned, and creates the presenter for
// the base surface. It then alternates src.Pump and, while the window is
// configured, one RenderFrame. The running flag is checked after every pump
// so no frame is rendered after a close event.
//
// Run returns nil on a compositor close and ctx.Err() on cancellation.
func Run(ctx context.Context, src EventSource, s *Session, newPresenter PresenterFactory) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	s.awaitingPresenter = s.presenter == nil
	if err := src.Roundtrip(s); err != nil {
		return fmt.Errorf("waysurface: initial roundtrip: %w", err)
	}
	if err := s.checkCapabilities(); err != nil {
		return err
	}
	if err := s.ensureRole(); err != nil {
		return err
	}

	if s.presenter == nil {
		p, err := newPresenter(s.surface.Handle())
		if err != nil {
			return fmt.Errorf("waysurface: create presenter: %w", err)
		}
		if err := s.AttachPresenter(p); err != nil {
			return err
		}
	}
	s.awaitingPresenter = false

	var frames uint64
	for {
		if err := ctx.Err(); err != nil {
			Logger().Info("waysurface: run cancelled", "frames", frames)
			return err
		}
		if !s.Running() {
			break
		}
		if err := src.Pump(s); err != nil {
			return fmt.Errorf("waysurface: pump: %w", err)
		}
		if !s.Running() {
			break
		}
		if !s.State().CanRender() {
			continue
		}
		if err := s.presenter.RenderFrame(); err != nil {
			return fmt.Errorf("waysurface: render frame: %w", err)
		}
		frames++
	}

	Logger().Info("waysurface: window closed", "frames", frames)
	return nil
}
