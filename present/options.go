package present

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// ManagerOption configures a Manager.
type ManagerOption func(*managerOptions)

type managerOptions struct {
	backend         string
	presentMode     gputypes.PresentMode
	powerPreference gputypes.PowerPreference
	debug           bool
}

// defaultOptions prefers low latency: mailbox with FIFO fallback.
func defaultOptions() managerOptions {
	return managerOptions{
		backend:         BackendAuto,
		presentMode:     gputypes.PresentModeMailbox,
		powerPreference: gputypes.PowerPreferenceNone,
	}
}

// WithBackend selects a registered backend by name ("auto", "vulkan", "gl").
func WithBackend(name string) ManagerOption {
	return func(o *managerOptions) {
		o.backend = name
	}
}

// WithPresentMode sets the requested present mode. Unsupported modes fall
// back to FIFO.
func WithPresentMode(mode gputypes.PresentMode) ManagerOption {
	return func(o *managerOptions) {
		o.presentMode = mode
	}
}

// WithPowerPreference sets the adapter power preference.
func WithPowerPreference(p gputypes.PowerPreference) ManagerOption {
	return func(o *managerOptions) {
		o.powerPreference = p
	}
}

// WithDebug enables GPU debug and validation layers.
func WithDebug(enabled bool) ManagerOption {
	return func(o *managerOptions) {
		o.debug = enabled
	}
}

// ParsePresentMode parses "mailbox", "fifo", "fifo-relaxed" or "immediate".
func ParsePresentMode(s string) (gputypes.PresentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mailbox":
		return gputypes.PresentModeMailbox, nil
	case "fifo":
		return gputypes.PresentModeFifo, nil
	case "fifo-relaxed", "fifo_relaxed":
		return gputypes.PresentModeFifoRelaxed, nil
	case "immediate":
		return gputypes.PresentModeImmediate, nil
	default:
		return gputypes.PresentModeUndefined, fmt.Errorf("present: unknown present mode %q", s)
	}
}

// ParsePowerPreference parses "none", "low-power" or "high-performance".
func ParsePowerPreference(s string) (gputypes.PowerPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return gputypes.PowerPreferenceNone, nil
	case "low-power", "low_power", "low":
		return gputypes.PowerPreferenceLowPower, nil
	case "high-performance", "high_performance", "high":
		return gputypes.PowerPreferenceHighPerformance, nil
	default:
		return gputypes.PowerPreferenceNone, fmt.Errorf("present: unknown power preference %q", s)
	}
}
