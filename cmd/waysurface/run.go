//go:build linux

package main

import (
	"context"
	"errors"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/waysurface"
	"github.com/gogpu/waysurface/internal/config"
	"github.com/gogpu/waysurface/internal/platform"
	"github.com/gogpu/waysurface/present"
	"github.com/gogpu/waysurface/render"
)

// run shows the window until the compositor closes it or ctx is done.
// Cancellation by signal is a clean exit.
func run(ctx context.Context, cfg *config.Config) error {
	clearColor, managerOpts, err := gpuOptions(cfg)
	if err != nil {
		return err
	}

	conn, err := platform.Connect("")
	if err != nil {
		return err
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, conn.Wake)
	defer stop()

	var gp *gpuPresenter
	defer func() {
		if gp != nil {
			gp.Release()
		}
	}()

	session := waysurface.NewSession(conn, sessionOptions(cfg)...)
	err = waysurface.Run(ctx, conn, session, func(window uintptr) (waysurface.Presenter, error) {
		p, err := newGPUPresenter(conn.DisplayHandle(), window, clearColor, managerOpts...)
		if err != nil {
			return nil, err
		}
		gp = p
		return p, nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func sessionOptions(cfg *config.Config) []waysurface.SessionOption {
	return []waysurface.SessionOption{
		waysurface.WithTitle(cfg.Window.Title),
		waysurface.WithAppID(cfg.Window.AppID),
		waysurface.WithDefaultSize(waysurface.WindowSize{
			Width:  uint32(cfg.Window.Width),
			Height: uint32(cfg.Window.Height),
		}),
	}
}

// gpuOptions converts validated settings for the presenter.
func gpuOptions(cfg *config.Config) (clearColor gputypes.Color, opts []present.ManagerOption, err error) {
	clearColor, err = render.ParseColor(cfg.Render.ClearColor)
	if err != nil {
		return clearColor, nil, err
	}
	mode, err := present.ParsePresentMode(cfg.Render.PresentMode)
	if err != nil {
		return clearColor, nil, err
	}
	power, err := present.ParsePowerPreference(cfg.GPU.PowerPreference)
	if err != nil {
		return clearColor, nil, err
	}
	opts = []present.ManagerOption{
		present.WithBackend(cfg.GPU.Backend),
		present.WithPresentMode(mode),
		present.WithPowerPreference(power),
		present.WithDebug(cfg.GPU.Debug),
	}
	return clearColor, opts, nil
}
