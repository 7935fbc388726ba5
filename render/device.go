// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu"
)

// DeviceHandle provides GPU device access from the host.
//
// The host (present.Manager) implements DeviceHandle and passes it to
// NewStep, so frames are recorded on the host's device and queue.
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// wgpuDevice extracts the concrete device from a handle.
func wgpuDevice(h DeviceHandle) (*wgpu.Device, error) {
	if h == nil {
		return nil, ErrNoDevice
	}
	switch d := h.Device().(type) {
	case *wgpu.Device:
		if d == nil {
			return nil, ErrNoDevice
		}
		return d, nil
	case nil:
		return nil, ErrNoDevice
	default:
		return nil, fmt.Errorf("%w: unsupported device type %T", ErrNoDevice, d)
	}
}
