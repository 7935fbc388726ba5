// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws frames onto a configured window surface.
//
// The package RECEIVES its GPU device from the host through DeviceHandle
// (an alias for gpucontext.DeviceProvider); it never creates one. The host
// here is present.Manager, which owns the instance, adapter, device and
// surface configuration.
//
// A frame is one Step.Render call: acquire the next surface image, record a
// single render pass that clears it, submit, and present.
//
//	step, err := render.NewStep(manager, manager.Surface(), render.DefaultClearColor)
//	if err != nil {
//	    return err
//	}
//	if err := step.Render(); err != nil {
//	    return err // acquisition failures wrap ErrAcquire
//	}
//
// Clear colors can be parsed from SVG color names or hex notation with
// ParseColor.
package render
