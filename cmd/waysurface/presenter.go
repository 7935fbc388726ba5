//go:build linux

package main

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/waysurface"
	"github.com/gogpu/waysurface/present"
	"github.com/gogpu/waysurface/render"
)

// gpuPresenter joins the surface manager and the clear step.
type gpuPresenter struct {
	manager *present.Manager
	step    *render.Step
}

var _ waysurface.Presenter = (*gpuPresenter)(nil)

func newGPUPresenter(display, window uintptr, clearColor gputypes.Color, opts ...present.ManagerOption) (*gpuPresenter, error) {
	m := present.NewManager(opts...)
	if err := m.Initialize(display, window); err != nil {
		return nil, err
	}
	step, err := render.NewStep(m, m.Surface(), clearColor)
	if err != nil {
		m.Release()
		return nil, fmt.Errorf("create render step: %w", err)
	}
	return &gpuPresenter{manager: m, step: step}, nil
}

func (p *gpuPresenter) Configure(size waysurface.WindowSize) error {
	return p.manager.Configure(size.Width, size.Height)
}

func (p *gpuPresenter) RenderFrame() error {
	return p.step.Render()
}

func (p *gpuPresenter) Release() {
	render.Logger().Info("render: stopped", "frames", p.step.Frames())
	p.manager.Release()
}
