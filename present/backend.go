package present

import (
	"slices"
	"strings"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Backend names understood by ResolveBackends.
const (
	BackendAuto   = "auto"
	BackendVulkan = "vulkan"
	BackendGL     = "gl"
)

// backends maps backend names to instance backend masks, preferred first.
//
// Additional backends can be registered without changes to the manager:
//
//	func init() {
//	    present.RegisterBackend("software", gputypes.BackendsNone)
//	}
var backends = gpucontext.NewRegistry[gputypes.Backends](
	gpucontext.WithPriority(BackendVulkan, BackendGL),
)

func init() {
	RegisterBackend(BackendVulkan, gputypes.BackendsVulkan)
	RegisterBackend(BackendGL, gputypes.BackendsGL)
}

// RegisterBackend adds or replaces a named backend.
func RegisterBackend(name string, mask gputypes.Backends) {
	backends.Register(name, func() gputypes.Backends { return mask })
}

// UnregisterBackend removes a named backend.
func UnregisterBackend(name string) {
	backends.Unregister(name)
}

// Backends returns the registered backend names, preferred first.
func Backends() []string {
	names := backends.Available()
	slices.SortFunc(names, func(a, b string) int {
		if pa, pb := backendRank(a), backendRank(b); pa != pb {
			return pa - pb
		}
		return strings.Compare(a, b)
	})
	return names
}

func backendRank(name string) int {
	switch name {
	case BackendVulkan:
		return 0
	case BackendGL:
		return 1
	default:
		return 2
	}
}

// ResolveBackends returns the instance backend mask for name. "auto" and
// the empty string enable every registered backend and let the GPU stack
// pick in its own priority order.
func ResolveBackends(name string) (gputypes.Backends, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == BackendAuto {
		var mask gputypes.Backends
		for _, n := range backends.Available() {
			mask |= backends.Get(n)
		}
		if mask == gputypes.BackendsNone {
			return gputypes.BackendsAll, nil
		}
		return mask, nil
	}
	if !backends.Has(name) {
		return gputypes.BackendsNone, &BackendNotFoundError{Name: name}
	}
	return backends.Get(name), nil
}
