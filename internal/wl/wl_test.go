//go:build linux

package wl

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"unsafe"

	"github.com/go-webgpu/goffi/types"
	"golang.org/x/sys/unix"
)

func TestCStructLayout(t *testing.T) {
	if got := unsafe.Sizeof(cInterface{}); got != 40 {
		t.Errorf("sizeof(wl_interface) = %d, want 40", got)
	}
	if got := unsafe.Sizeof(cMessage{}); got != 24 {
		t.Errorf("sizeof(wl_message) = %d, want 24", got)
	}
	if got := unsafe.Offsetof(cInterface{}.events); got != 32 {
		t.Errorf("offsetof(wl_interface.events) = %d, want 32", got)
	}
	if got := unsafe.Sizeof(wlArray{}); got != 24 {
		t.Errorf("sizeof(wl_array) = %d, want 24", got)
	}
	if got := unsafe.Sizeof(argument(0)); got != 8 {
		t.Errorf("sizeof(wl_argument) = %d, want 8", got)
	}
}

func TestBuildXDGInterfaces(t *testing.T) {
	var surface cInterface
	surface.name = cString("wl_surface")
	buildXDGInterfaces(&surface)

	tests := []struct {
		iface    *cInterface
		name     string
		requests int32
		events   int32
	}{
		{&wmBaseInterface, "xdg_wm_base", 4, 1},
		{&xdgSurfaceInterface, "xdg_surface", 5, 1},
		{&toplevelInterface, "xdg_toplevel", 14, 2},
	}
	for _, tt := range tests {
		if got := tt.iface.Name(); got != tt.name {
			t.Errorf("Name() = %q, want %q", got, tt.name)
		}
		if tt.iface.methodCount != tt.requests {
			t.Errorf("%s methodCount = %d, want %d", tt.name, tt.iface.methodCount, tt.requests)
		}
		if tt.iface.eventCount != tt.events {
			t.Errorf("%s eventCount = %d, want %d", tt.name, tt.iface.eventCount, tt.events)
		}
		if tt.iface.version != 1 {
			t.Errorf("%s version = %d, want 1", tt.name, tt.iface.version)
		}
	}

	msg := wmBaseRequests[opWmBaseGetXDGSurface]
	if got := unix.BytePtrToString(msg.signature); got != "no" {
		t.Errorf("get_xdg_surface signature = %q, want %q", got, "no")
	}
	argTypes := unsafe.Slice(msg.types, 2)
	if argTypes[0] != &xdgSurfaceInterface || argTypes[1] != &surface {
		t.Error("get_xdg_surface argument types not wired to xdg_surface and wl_surface")
	}

	opcodes := []struct {
		msgs []cMessage
		op   int
		name string
	}{
		{xdgSurfaceRequests[:], opXDGSurfaceGetToplevel, "get_toplevel"},
		{xdgSurfaceRequests[:], opXDGSurfaceAckConfigure, "ack_configure"},
		{toplevelRequests[:], opToplevelSetTitle, "set_title"},
		{toplevelRequests[:], opToplevelSetAppID, "set_app_id"},
		{wmBaseRequests[:], opWmBasePong, "pong"},
	}
	for _, tt := range opcodes {
		if got := unix.BytePtrToString(tt.msgs[tt.op].name); got != tt.name {
			t.Errorf("opcode %d = %q, want %q", tt.op, got, tt.name)
		}
	}
}

func TestObjectTable(t *testing.T) {
	r := &Registry{}
	key := registerObject(r)
	if key == 0 {
		t.Fatal("registerObject() returned 0")
	}
	if got := lookupObject(key); got != r {
		t.Errorf("lookupObject(%d) = %v, want registry", key, got)
	}
	unregisterObject(key)
	if got := lookupObject(key); got != nil {
		t.Errorf("lookupObject(%d) after unregister = %v, want nil", key, got)
	}
}

func TestRegistryCallbacks(t *testing.T) {
	var gotName, gotVersion uint32
	var gotIface string
	var removed uint32
	r := &Registry{
		Global: func(name uint32, iface string, version uint32) {
			gotName, gotIface, gotVersion = name, iface, version
		},
		GlobalRemove: func(name uint32) { removed = name },
	}
	key := registerObject(r)
	t.Cleanup(func() { unregisterObject(key) })

	registryGlobal(key, 0, 7, cString("wl_compositor"), 6)
	if gotName != 7 || gotIface != "wl_compositor" || gotVersion != 6 {
		t.Errorf("Global(%d, %q, %d), want (7, wl_compositor, 6)", gotName, gotIface, gotVersion)
	}
	registryGlobalRemove(key, 0, 7)
	if removed != 7 {
		t.Errorf("GlobalRemove(%d), want 7", removed)
	}

	// Unknown user data is ignored.
	registryGlobal(key+1000, 0, 1, cString("xdg_wm_base"), 1)
}

func TestToplevelCallbacks(t *testing.T) {
	var w, h int32
	var states []uint32
	closed := false
	tl := &Toplevel{
		Configure: func(width, height int32, s []uint32) { w, h, states = width, height, s },
		Close:     func() { closed = true },
	}
	key := registerObject(tl)
	t.Cleanup(func() { unregisterObject(key) })

	raw := []uint32{4, 3}
	arr := &wlArray{size: 8, alloc: 8, data: unsafe.Pointer(&raw[0])}
	toplevelConfigure(key, 0, 800, 600, arr)

	if w != 800 || h != 600 {
		t.Errorf("Configure(%d, %d), want (800, 600)", w, h)
	}
	if !slices.Equal(states, []uint32{4, 3}) {
		t.Errorf("states = %v, want [4 3]", states)
	}
	raw[0] = 1
	if states[0] != 4 {
		t.Error("states alias the wl_array buffer")
	}

	toplevelConfigure(key, 0, 0, 0, nil)
	if states != nil {
		t.Errorf("states for nil array = %v, want nil", states)
	}

	toplevelClose(key, 0)
	if !closed {
		t.Error("Close not delivered")
	}
}

func TestShellCallbacks(t *testing.T) {
	var ping, configure uint32
	wm := &WmBase{Ping: func(serial uint32) { ping = serial }}
	xs := &XdgSurface{Configure: func(serial uint32) { configure = serial }}
	wmKey, xsKey := registerObject(wm), registerObject(xs)
	t.Cleanup(func() {
		unregisterObject(wmKey)
		unregisterObject(xsKey)
	})

	wmBasePing(wmKey, 0, 42)
	xdgSurfaceConfigure(xsKey, 0, 43)
	if ping != 42 {
		t.Errorf("Ping(%d), want 42", ping)
	}
	if configure != 43 {
		t.Errorf("Configure(%d), want 43", configure)
	}

	// Events routed to the wrong object type are dropped.
	wmBasePing(xsKey, 0, 99)
	if ping != 42 {
		t.Error("Ping delivered to xdg_surface key")
	}
}

func TestDisplayName(t *testing.T) {
	t.Setenv("WAYLAND_DISPLAY", "wayland-7")
	if got := DisplayName(""); got != "wayland-7" {
		t.Errorf("DisplayName(\"\") = %q, want %q", got, "wayland-7")
	}
	if got := DisplayName("custom"); got != "custom" {
		t.Errorf("DisplayName(\"custom\") = %q, want %q", got, "custom")
	}
	t.Setenv("WAYLAND_DISPLAY", "")
	if got := DisplayName(""); got != "wayland-0" {
		t.Errorf("DisplayName(\"\") = %q, want %q", got, "wayland-0")
	}
}

func TestProxyDestroyedRequests(t *testing.T) {
	var s Surface
	if err := s.Commit(); err != ErrDestroyed {
		t.Errorf("Commit() on nil proxy = %v, want ErrDestroyed", err)
	}
	if v, err := s.Version(); v != 0 || err != nil {
		t.Errorf("Version() on nil proxy = %d, %v, want 0, nil", v, err)
	}
	s.Destroy()
}

func TestCallUnresolvedSymbol(t *testing.T) {
	f := &cfunc{name: "wl_missing", ret: voidT}
	err := f.call(nil)
	if err == nil {
		t.Fatal("call() on unresolved symbol = nil, want error")
	}
	if !strings.Contains(err.Error(), "wl_missing") {
		t.Errorf("call() error = %q, want it to name the symbol", err)
	}
}

func TestRequestsPropagateCallErrors(t *testing.T) {
	saved := fnProxyGetVersion
	fnProxyGetVersion = &cfunc{name: "wl_proxy_get_version", ret: u32T, args: []*types.TypeDescriptor{ptrT}}
	t.Cleanup(func() { fnProxyGetVersion = saved })

	s := Surface{proxy: proxy{ptr: 1}}
	if err := s.Commit(); err == nil || errors.Is(err, ErrDestroyed) {
		t.Errorf("Commit() = %v, want call error", err)
	}
	c := Compositor{proxy: proxy{ptr: 1}}
	if _, err := c.CreateSurface(); err == nil {
		t.Error("CreateSurface() error = nil, want call error")
	}
	xs := XdgSurface{proxy: proxy{ptr: 1}}
	if err := xs.AckConfigure(7); err == nil {
		t.Error("AckConfigure() error = nil, want call error")
	}
	if _, err := s.Version(); err == nil {
		t.Error("Version() error = nil, want call error")
	}
}
