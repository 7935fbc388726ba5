//go:build linux

package wl

import (
	"slices"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"golang.org/x/sys/unix"
)

// Listener tables handed to wl_proxy_add_listener. Each slot is a C
// function pointer produced by ffi.NewCallback. The tables are package
// variables so their addresses stay valid for the process lifetime.
var (
	listenersOnce sync.Once

	registryListener   [2]uintptr
	wmBaseListener     [1]uintptr
	xdgSurfaceListener [1]uintptr
	toplevelListener   [2]uintptr
)

// initListeners creates the C callbacks once. goffi callbacks are never
// freed, so every proxy shares the same trampolines and is told apart by
// its user data.
func initListeners() {
	listenersOnce.Do(func() {
		registryListener = [2]uintptr{
			ffi.NewCallback(registryGlobal),
			ffi.NewCallback(registryGlobalRemove),
		}
		wmBaseListener = [1]uintptr{
			ffi.NewCallback(wmBasePing),
		}
		xdgSurfaceListener = [1]uintptr{
			ffi.NewCallback(xdgSurfaceConfigure),
		}
		toplevelListener = [2]uintptr{
			ffi.NewCallback(toplevelConfigure),
			ffi.NewCallback(toplevelClose),
		}
	})
}

// objects maps listener user data to the Go object receiving the events.
// Proxies never carry Go pointers; C only sees the integer key.
var objects = struct {
	mu   sync.Mutex
	next uintptr
	m    map[uintptr]any
}{m: make(map[uintptr]any)}

func registerObject(obj any) uintptr {
	objects.mu.Lock()
	defer objects.mu.Unlock()
	objects.next++
	objects.m[objects.next] = obj
	return objects.next
}

func lookupObject(key uintptr) any {
	objects.mu.Lock()
	defer objects.mu.Unlock()
	return objects.m[key]
}

func unregisterObject(key uintptr) {
	if key == 0 {
		return
	}
	objects.mu.Lock()
	defer objects.mu.Unlock()
	delete(objects.m, key)
}

// wlArray matches struct wl_array.
type wlArray struct {
	size  uintptr
	alloc uintptr
	data  unsafe.Pointer
}

// uint32s copies the array contents as uint32 values.
func (a *wlArray) uint32s() []uint32 {
	if a == nil || a.data == nil || a.size < 4 {
		return nil
	}
	return slices.Clone(unsafe.Slice((*uint32)(a.data), a.size/4))
}

func registryGlobal(data, _ uintptr, name uint32, iface *byte, version uint32) {
	r, ok := lookupObject(data).(*Registry)
	if !ok || r.Global == nil {
		return
	}
	r.Global(name, unix.BytePtrToString(iface), version)
}

func registryGlobalRemove(data, _ uintptr, name uint32) {
	r, ok := lookupObject(data).(*Registry)
	if !ok || r.GlobalRemove == nil {
		return
	}
	r.GlobalRemove(name)
}

func wmBasePing(data, _ uintptr, serial uint32) {
	wm, ok := lookupObject(data).(*WmBase)
	if !ok || wm.Ping == nil {
		return
	}
	wm.Ping(serial)
}

func xdgSurfaceConfigure(data, _ uintptr, serial uint32) {
	xs, ok := lookupObject(data).(*XdgSurface)
	if !ok || xs.Configure == nil {
		return
	}
	xs.Configure(serial)
}

func toplevelConfigure(data, _ uintptr, width, height int32, states *wlArray) {
	tl, ok := lookupObject(data).(*Toplevel)
	if !ok || tl.Configure == nil {
		return
	}
	tl.Configure(width, height, states.uint32s())
}

func toplevelClose(data, _ uintptr) {
	tl, ok := lookupObject(data).(*Toplevel)
	if !ok || tl.Close == nil {
		return
	}
	tl.Close()
}
