package present

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// Manager owns the GPU side of one window: instance, platform surface,
// adapter, device and the current surface configuration.
//
// Initialize runs once. Configure may run any number of times afterwards,
// each call replacing the previous configuration. Manager is not safe for
// concurrent use.
type Manager struct {
	opts managerOptions

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device

	config *wgpu.SurfaceConfiguration
}

var _ gpucontext.DeviceProvider = (*Manager)(nil)

// NewManager creates an uninitialized manager.
func NewManager(opts ...ManagerOption) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager{opts: o}
}

// Initialize creates the GPU context for a native wl_display / wl_surface
// pair: a platform surface, an adapter able to present to it, and a device.
func (m *Manager) Initialize(display, window uintptr) error {
	if m.device != nil {
		return ErrAlreadyInitialized
	}

	mask, err := ResolveBackends(m.opts.backend)
	if err != nil {
		return err
	}
	flags := gputypes.InstanceFlagsNone
	if m.opts.debug {
		flags = gputypes.InstanceFlagsDebug | gputypes.InstanceFlagsValidation
	}

	instance, err := wgpu.CreateInstance(&wgpu.InstanceDescriptor{Backends: mask, Flags: flags})
	if err != nil {
		return fmt.Errorf("present: create instance: %w", err)
	}

	surface, err := instance.CreateSurface(display, window)
	if err != nil {
		instance.Release()
		return fmt.Errorf("present: create surface: %w", err)
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:   m.opts.powerPreference,
		CompatibleSurface: surface,
	})
	if err != nil {
		surface.Release()
		instance.Release()
		return fmt.Errorf("%w: %w", ErrNoCompatibleAdapter, err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "waysurface"})
	if err != nil {
		adapter.Release()
		surface.Release()
		instance.Release()
		return fmt.Errorf("%w: %w", ErrNoDevice, err)
	}

	m.instance, m.surface, m.adapter, m.device = instance, surface, adapter, device

	info := adapter.Info()
	Logger().Info("present: adapter selected",
		"name", info.Name,
		"type", info.DeviceType,
		"driver", info.Driver,
		"backend", m.opts.backend,
		"power_preference", m.opts.powerPreference)
	return nil
}

// Configure (re)configures the surface for width x height.
func (m *Manager) Configure(width, height uint32) error {
	if m.device == nil {
		return ErrNotInitialized
	}
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	caps := m.adapter.GetSurfaceCapabilities(m.surface)
	cfg, err := surfaceConfig(caps, width, height, m.opts.presentMode)
	if err != nil {
		return err
	}
	if err := m.surface.Configure(m.device, cfg); err != nil {
		return fmt.Errorf("present: configure surface %dx%d: %w", width, height, err)
	}
	m.config = cfg

	Logger().Debug("present: surface configured",
		"width", width, "height", height,
		"format", cfg.Format, "present_mode", cfg.PresentMode)
	return nil
}

// surfaceConfig builds the configuration for caps: first reported format,
// render attachment usage, automatic alpha, and the requested present mode
// when supported, otherwise FIFO.
func surfaceConfig(caps *wgpu.SurfaceCapabilities, width, height uint32, mode gputypes.PresentMode) (*wgpu.SurfaceConfiguration, error) {
	if caps == nil || len(caps.Formats) == 0 {
		return nil, ErrNoSurfaceFormat
	}
	return &wgpu.SurfaceConfiguration{
		Width:       width,
		Height:      height,
		Format:      caps.Formats[0],
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: choosePresentMode(caps.PresentModes, mode),
		AlphaMode:   gputypes.CompositeAlphaModeAuto,
	}, nil
}

// choosePresentMode returns want if supported, otherwise FIFO.
func choosePresentMode(supported []gputypes.PresentMode, want gputypes.PresentMode) gputypes.PresentMode {
	if slices.Contains(supported, want) {
		return want
	}
	if want != gputypes.PresentModeFifo {
		Logger().Warn("present: present mode unsupported, using Fifo", "requested", want)
	}
	return gputypes.PresentModeFifo
}

// Configured reports whether the surface holds a configuration.
func (m *Manager) Configured() bool { return m.config != nil }

// Size returns the configured surface size, or zero before Configure.
func (m *Manager) Size() (width, height uint32) {
	if m.config == nil {
		return 0, 0
	}
	return m.config.Width, m.config.Height
}

// Surface returns the platform surface, or nil before Initialize.
func (m *Manager) Surface() *wgpu.Surface { return m.surface }

// WGPUDevice returns the concrete device, or nil before Initialize.
func (m *Manager) WGPUDevice() *wgpu.Device { return m.device }

// Device implements gpucontext.DeviceProvider.
func (m *Manager) Device() gpucontext.Device {
	if m.device == nil {
		return nil
	}
	return m.device
}

// Queue implements gpucontext.DeviceProvider.
func (m *Manager) Queue() gpucontext.Queue {
	if m.device == nil {
		return nil
	}
	return m.device.Queue()
}

// Adapter implements gpucontext.DeviceProvider.
func (m *Manager) Adapter() gpucontext.Adapter {
	if m.adapter == nil {
		return nil
	}
	return m.adapter
}

// SurfaceFormat returns the configured format, or undefined before
// Configure.
func (m *Manager) SurfaceFormat() gputypes.TextureFormat {
	if m.config == nil {
		return gputypes.TextureFormatUndefined
	}
	return m.config.Format
}

// AdapterInfo implements gpucontext.DeviceProvider.
func (m *Manager) AdapterInfo() gpucontext.AdapterInfo {
	if m.adapter == nil {
		return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
	}
	return adapterInfo(m.adapter.Info())
}

func adapterInfo(info gputypes.AdapterInfo) gpucontext.AdapterInfo {
	t := gpucontext.AdapterTypeUnknown
	switch info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		t = gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		t = gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		t = gpucontext.AdapterTypeSoftware
	}
	return gpucontext.AdapterInfo{Name: info.Name, Type: t}
}

// Release unconfigures the surface and frees every GPU object. The manager
// can be initialized again afterwards.
func (m *Manager) Release() {
	if m.surface != nil && m.config != nil {
		m.surface.Unconfigure()
	}
	m.config = nil
	if m.device != nil {
		m.device.Release()
		m.device = nil
	}
	if m.adapter != nil {
		m.adapter.Release()
		m.adapter = nil
	}
	if m.surface != nil {
		m.surface.Release()
		m.surface = nil
	}
	if m.instance != nil {
		m.instance.Release()
		m.instance = nil
	}
}

// IsSetupError reports whether err came from GPU context creation.
func IsSetupError(err error) bool {
	return errors.Is(err, ErrNoCompatibleAdapter) || errors.Is(err, ErrNoDevice)
}
