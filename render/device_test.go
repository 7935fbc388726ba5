// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// deviceHandle returns a fixed device value; the zero value has no device.
type deviceHandle struct {
	device gpucontext.Device
}

func (h deviceHandle) Device() gpucontext.Device { return h.device }
func (deviceHandle) Queue() gpucontext.Queue     { return nil }
func (deviceHandle) Adapter() gpucontext.Adapter { return nil }

func (deviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

func (deviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

func TestWGPUDevice(t *testing.T) {
	tests := []struct {
		name   string
		handle DeviceHandle
	}{
		{"nil handle", nil},
		{"no device", deviceHandle{}},
		{"typed nil device", deviceHandle{device: (*wgpu.Device)(nil)}},
		{"foreign device", deviceHandle{device: "not a device"}},
	}
	for _, tt := range tests {
		if _, err := wgpuDevice(tt.handle); !errors.Is(err, ErrNoDevice) {
			t.Errorf("%s: wgpuDevice() error = %v, want ErrNoDevice", tt.name, err)
		}
	}
}

func TestNewStepRequiresDevice(t *testing.T) {
	if _, err := NewStep(deviceHandle{}, nil, DefaultClearColor); !errors.Is(err, ErrNoDevice) {
		t.Errorf("NewStep(no device) error = %v, want ErrNoDevice", err)
	}
}
