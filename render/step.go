// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// Errors returned by Step.
var (
	// ErrNoDevice is returned when the handle carries no usable device.
	ErrNoDevice = errors.New("render: no GPU device")

	// ErrNoSurface is returned when NewStep receives a nil surface.
	ErrNoSurface = errors.New("render: no surface")

	// ErrAcquire wraps failures to acquire the next surface image.
	ErrAcquire = errors.New("render: cannot acquire surface texture")
)

// Step renders clear-only frames onto a configured surface.
type Step struct {
	device  *wgpu.Device
	surface *wgpu.Surface
	clear   gputypes.Color

	frames     uint64
	suboptimal uint64
}

// NewStep creates a step drawing on surface with the device from h.
func NewStep(h DeviceHandle, surface *wgpu.Surface, clearColor gputypes.Color) (*Step, error) {
	device, err := wgpuDevice(h)
	if err != nil {
		return nil, err
	}
	if surface == nil {
		return nil, ErrNoSurface
	}
	return &Step{device: device, surface: surface, clear: clearColor}, nil
}

// ClearColor returns the color each frame is cleared to.
func (s *Step) ClearColor() gputypes.Color { return s.clear }

// Frames returns the number of frames presented.
func (s *Step) Frames() uint64 { return s.frames }

// Render acquires the next image, clears it in one render pass, submits
// and presents. The surface must be configured.
func (s *Step) Render() error {
	tex, suboptimal, err := s.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquire, err)
	}
	if suboptimal {
		s.suboptimal++
		if s.suboptimal == 1 {
			Logger().Debug("render: surface texture is suboptimal")
		}
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		s.surface.DiscardTexture()
		return fmt.Errorf("render: create view: %w", err)
	}
	defer view.Release()

	if err := s.record(view); err != nil {
		s.surface.DiscardTexture()
		return err
	}
	if err := s.surface.Present(tex); err != nil {
		return fmt.Errorf("render: present: %w", err)
	}
	s.frames++
	return nil
}

// record encodes and submits the clear pass.
func (s *Step) record(view *wgpu.TextureView) error {
	encoder, err := s.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "frame"})
	if err != nil {
		return fmt.Errorf("render: create encoder: %w", err)
	}
	pass, err := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "clear",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: s.clear,
		}},
	})
	if err != nil {
		return fmt.Errorf("render: begin pass: %w", err)
	}
	if err := pass.End(); err != nil {
		return fmt.Errorf("render: end pass: %w", err)
	}
	cmds, err := encoder.Finish()
	if err != nil {
		return fmt.Errorf("render: finish encoder: %w", err)
	}
	if _, err := s.device.Queue().Submit(cmds); err != nil {
		cmds.Release()
		return fmt.Errorf("render: submit: %w", err)
	}
	return nil
}
