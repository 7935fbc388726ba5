//go:build linux

package wl

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"

	"github.com/gogpu/waysurface"
)

// ErrUnavailable is returned when libwayland-client cannot be loaded.
var ErrUnavailable = errors.New("wl: libwayland-client unavailable")

// cfunc is one libwayland-client entry point with its call interface.
type cfunc struct {
	name string
	ret  *types.TypeDescriptor
	args []*types.TypeDescriptor

	sym unsafe.Pointer
	cif types.CallInterface
}

func (f *cfunc) prepare(lib unsafe.Pointer) error {
	sym, err := ffi.GetSymbol(lib, f.name)
	if err != nil {
		return fmt.Errorf("wl: symbol %s: %w", f.name, err)
	}
	if err := ffi.PrepareCallInterface(&f.cif, types.DefaultCall, f.ret, f.args); err != nil {
		return fmt.Errorf("wl: prepare %s: %w", f.name, err)
	}
	f.sym = sym
	return nil
}

// call invokes the function. ret may be nil for void functions; each arg
// points at the Go value holding the C argument.
func (f *cfunc) call(ret unsafe.Pointer, args ...unsafe.Pointer) error {
	if err := ffi.CallFunction(&f.cif, f.sym, ret, args); err != nil {
		return fmt.Errorf("wl: call %s: %w", f.name, err)
	}
	return nil
}

// logTeardown reports a failed destructor call. Destructors have no
// caller to return the error to.
func logTeardown(err error) {
	waysurface.Logger().Warn("wl: teardown call failed", "error", err)
}

var (
	ptrT  = types.PointerTypeDescriptor
	u32T  = types.UInt32TypeDescriptor
	i32T  = types.SInt32TypeDescriptor
	voidT = types.VoidTypeDescriptor
)

// libwayland-client entry points.
var (
	// struct wl_display *wl_display_connect(const char *name)
	fnDisplayConnect = &cfunc{name: "wl_display_connect", ret: ptrT, args: []*types.TypeDescriptor{ptrT}}
	// void wl_display_disconnect(struct wl_display *display)
	fnDisplayDisconnect = &cfunc{name: "wl_display_disconnect", ret: voidT, args: []*types.TypeDescriptor{ptrT}}
	// int wl_display_get_fd(struct wl_display *display)
	fnDisplayGetFD = &cfunc{name: "wl_display_get_fd", ret: i32T, args: []*types.TypeDescriptor{ptrT}}
	// int wl_display_get_error(struct wl_display *display)
	fnDisplayGetError = &cfunc{name: "wl_display_get_error", ret: i32T, args: []*types.TypeDescriptor{ptrT}}
	// int wl_display_flush(struct wl_display *display)
	fnDisplayFlush = &cfunc{name: "wl_display_flush", ret: i32T, args: []*types.TypeDescriptor{ptrT}}
	// int wl_display_roundtrip_queue(struct wl_display *display, struct wl_event_queue *queue)
	fnDisplayRoundtripQueue = &cfunc{name: "wl_display_roundtrip_queue", ret: i32T, args: []*types.TypeDescriptor{ptrT, ptrT}}
	// int wl_display_prepare_read_queue(struct wl_display *display, struct wl_event_queue *queue)
	fnDisplayPrepareReadQueue = &cfunc{name: "wl_display_prepare_read_queue", ret: i32T, args: []*types.TypeDescriptor{ptrT, ptrT}}
	// void wl_display_cancel_read(struct wl_display *display)
	fnDisplayCancelRead = &cfunc{name: "wl_display_cancel_read", ret: voidT, args: []*types.TypeDescriptor{ptrT}}
	// int wl_display_read_events(struct wl_display *display)
	fnDisplayReadEvents = &cfunc{name: "wl_display_read_events", ret: i32T, args: []*types.TypeDescriptor{ptrT}}
	// int wl_display_dispatch_queue_pending(struct wl_display *display, struct wl_event_queue *queue)
	fnDisplayDispatchQueuePending = &cfunc{name: "wl_display_dispatch_queue_pending", ret: i32T, args: []*types.TypeDescriptor{ptrT, ptrT}}
	// struct wl_event_queue *wl_display_create_queue(struct wl_display *display)
	fnDisplayCreateQueue = &cfunc{name: "wl_display_create_queue", ret: ptrT, args: []*types.TypeDescriptor{ptrT}}
	// void wl_event_queue_destroy(struct wl_event_queue *queue)
	fnEventQueueDestroy = &cfunc{name: "wl_event_queue_destroy", ret: voidT, args: []*types.TypeDescriptor{ptrT}}

	// struct wl_proxy *wl_proxy_marshal_array_flags(struct wl_proxy *proxy, uint32_t opcode,
	//     const struct wl_interface *interface, uint32_t version, uint32_t flags,
	//     union wl_argument *args)
	fnProxyMarshalArrayFlags = &cfunc{name: "wl_proxy_marshal_array_flags", ret: ptrT,
		args: []*types.TypeDescriptor{ptrT, u32T, ptrT, u32T, u32T, ptrT}}
	// int wl_proxy_add_listener(struct wl_proxy *proxy, void (**implementation)(void), void *data)
	fnProxyAddListener = &cfunc{name: "wl_proxy_add_listener", ret: i32T, args: []*types.TypeDescriptor{ptrT, ptrT, ptrT}}
	// uint32_t wl_proxy_get_version(struct wl_proxy *proxy)
	fnProxyGetVersion = &cfunc{name: "wl_proxy_get_version", ret: u32T, args: []*types.TypeDescriptor{ptrT}}
	// void wl_proxy_destroy(struct wl_proxy *proxy)
	fnProxyDestroy = &cfunc{name: "wl_proxy_destroy", ret: voidT, args: []*types.TypeDescriptor{ptrT}}
	// void *wl_proxy_create_wrapper(void *proxy)
	fnProxyCreateWrapper = &cfunc{name: "wl_proxy_create_wrapper", ret: ptrT, args: []*types.TypeDescriptor{ptrT}}
	// void wl_proxy_wrapper_destroy(void *proxy_wrapper)
	fnProxyWrapperDestroy = &cfunc{name: "wl_proxy_wrapper_destroy", ret: voidT, args: []*types.TypeDescriptor{ptrT}}
	// void wl_proxy_set_queue(struct wl_proxy *proxy, struct wl_event_queue *queue)
	fnProxySetQueue = &cfunc{name: "wl_proxy_set_queue", ret: voidT, args: []*types.TypeDescriptor{ptrT, ptrT}}
)

var allFuncs = []*cfunc{
	fnDisplayConnect, fnDisplayDisconnect, fnDisplayGetFD, fnDisplayGetError,
	fnDisplayFlush, fnDisplayRoundtripQueue, fnDisplayPrepareReadQueue,
	fnDisplayCancelRead, fnDisplayReadEvents, fnDisplayDispatchQueuePending,
	fnDisplayCreateQueue, fnEventQueueDestroy,
	fnProxyMarshalArrayFlags, fnProxyAddListener, fnProxyGetVersion,
	fnProxyDestroy, fnProxyCreateWrapper, fnProxyWrapperDestroy, fnProxySetQueue,
}

// Interface descriptors exported as data by libwayland-client.
var (
	registryInterface   *cInterface
	compositorInterface *cInterface
	surfaceInterface    *cInterface
)

var (
	loadOnce sync.Once
	loadErr  error

	// libPtr keeps the library handle for the process lifetime.
	libPtr unsafe.Pointer
)

// Load opens libwayland-client and resolves every symbol this package uses.
// It is called by Connect; calling it directly reports availability.
func Load() error {
	loadOnce.Do(func() {
		loadErr = load()
	})
	return loadErr
}

func load() error {
	lib, err := ffi.LoadLibrary("libwayland-client.so.0")
	if err != nil {
		lib, err = ffi.LoadLibrary("libwayland-client.so")
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}

	for _, f := range allFuncs {
		if err := f.prepare(lib); err != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}

	for _, d := range []struct {
		name string
		dst  **cInterface
	}{
		{"wl_registry_interface", &registryInterface},
		{"wl_compositor_interface", &compositorInterface},
		{"wl_surface_interface", &surfaceInterface},
	} {
		sym, err := ffi.GetSymbol(lib, d.name)
		if err != nil {
			return fmt.Errorf("%w: symbol %s: %w", ErrUnavailable, d.name, err)
		}
		*d.dst = (*cInterface)(sym)
	}

	buildXDGInterfaces(surfaceInterface)
	initListeners()
	libPtr = lib
	return nil
}
