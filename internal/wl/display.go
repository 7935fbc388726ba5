//go:build linux

package wl

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ErrConnect is returned when no compositor accepts the connection.
var ErrConnect = errors.New("wl: cannot connect to display")

// Display is a connection to the compositor (wl_display).
type Display struct {
	ptr uintptr
}

// Connect opens a connection to the named display. An empty name uses
// $WAYLAND_DISPLAY, falling back to "wayland-0".
func Connect(name string) (*Display, error) {
	if err := Load(); err != nil {
		return nil, err
	}

	var namePtr unsafe.Pointer
	var nameBuf *byte
	if name != "" {
		nameBuf = cString(name)
		namePtr = unsafe.Pointer(nameBuf)
	}
	var ptr uintptr
	err := fnDisplayConnect.call(unsafe.Pointer(&ptr), unsafe.Pointer(&namePtr))
	runtime.KeepAlive(nameBuf)
	if err != nil {
		return nil, err
	}
	if ptr == 0 {
		return nil, fmt.Errorf("%w %q", ErrConnect, DisplayName(name))
	}
	return &Display{ptr: ptr}, nil
}

// DisplayName resolves the socket name Connect would use.
func DisplayName(name string) string {
	if name != "" {
		return name
	}
	if env := os.Getenv("WAYLAND_DISPLAY"); env != "" {
		return env
	}
	return "wayland-0"
}

// Ptr returns the native wl_display pointer.
func (d *Display) Ptr() uintptr { return d.ptr }

// FD returns the connection file descriptor.
func (d *Display) FD() (int, error) {
	var fd int32
	if err := fnDisplayGetFD.call(unsafe.Pointer(&fd), unsafe.Pointer(&d.ptr)); err != nil {
		return -1, err
	}
	return int(fd), nil
}

// Err returns the fatal error recorded on the connection, if any.
func (d *Display) Err() error {
	var code int32
	if err := fnDisplayGetError.call(unsafe.Pointer(&code), unsafe.Pointer(&d.ptr)); err != nil {
		return err
	}
	if code == 0 {
		return nil
	}
	return unix.Errno(code)
}

// Flush sends buffered requests. A full socket buffer is not an error; the
// rest is sent on the next flush.
func (d *Display) Flush() error {
	var ret int32
	if err := fnDisplayFlush.call(unsafe.Pointer(&ret), unsafe.Pointer(&d.ptr)); err != nil {
		return err
	}
	if ret < 0 {
		return d.Err()
	}
	return nil
}

// CreateQueue creates a private event queue.
func (d *Display) CreateQueue() (*EventQueue, error) {
	var ptr uintptr
	if err := fnDisplayCreateQueue.call(unsafe.Pointer(&ptr), unsafe.Pointer(&d.ptr)); err != nil {
		return nil, err
	}
	if ptr == 0 {
		return nil, fmt.Errorf("wl: create event queue: %w", ErrNullProxy)
	}
	return &EventQueue{ptr: ptr}, nil
}

// GetRegistry creates the registry with its events routed to q. A proxy
// wrapper keeps the queue assignment race-free with other threads using
// the display.
func (d *Display) GetRegistry(q *EventQueue) (*Registry, error) {
	var wrapper uintptr
	if err := fnProxyCreateWrapper.call(unsafe.Pointer(&wrapper), unsafe.Pointer(&d.ptr)); err != nil {
		return nil, err
	}
	if wrapper == 0 {
		return nil, fmt.Errorf("wl: create display wrapper: %w", ErrNullProxy)
	}
	defer func() {
		if err := fnProxyWrapperDestroy.call(nil, unsafe.Pointer(&wrapper)); err != nil {
			logTeardown(err)
		}
	}()
	if err := fnProxySetQueue.call(nil, unsafe.Pointer(&wrapper), unsafe.Pointer(&q.ptr)); err != nil {
		return nil, err
	}

	version, err := proxyVersion(wrapper)
	if err != nil {
		return nil, err
	}
	ptr, err := marshal(wrapper, opDisplayGetRegistry, registryInterface, version, 0, newIDArg)
	if err != nil {
		return nil, err
	}
	if ptr == 0 {
		return nil, fmt.Errorf("%w: wl_registry", ErrNullProxy)
	}
	r := &Registry{proxy: proxy{ptr: ptr}}
	if err := r.listen(unsafe.Pointer(&registryListener), r); err != nil {
		destroyProxy(ptr)
		return nil, err
	}
	return r, nil
}

// RoundtripQueue blocks until the compositor has processed all requests
// sent so far, dispatching events on q meanwhile.
func (d *Display) RoundtripQueue(q *EventQueue) error {
	var ret int32
	if err := fnDisplayRoundtripQueue.call(unsafe.Pointer(&ret), unsafe.Pointer(&d.ptr), unsafe.Pointer(&q.ptr)); err != nil {
		return err
	}
	if ret < 0 {
		return d.errOr("roundtrip")
	}
	return nil
}

// PrepareRead announces the intent to read events for q. It returns false
// when events are already queued and must be dispatched first.
func (d *Display) PrepareRead(q *EventQueue) (bool, error) {
	var ret int32
	if err := fnDisplayPrepareReadQueue.call(unsafe.Pointer(&ret), unsafe.Pointer(&d.ptr), unsafe.Pointer(&q.ptr)); err != nil {
		return false, err
	}
	return ret == 0, nil
}

// CancelRead releases a successful PrepareRead without reading.
func (d *Display) CancelRead() error {
	return fnDisplayCancelRead.call(nil, unsafe.Pointer(&d.ptr))
}

// ReadEvents reads available events from the socket into their queues.
// It consumes a successful PrepareRead.
func (d *Display) ReadEvents() error {
	var ret int32
	if err := fnDisplayReadEvents.call(unsafe.Pointer(&ret), unsafe.Pointer(&d.ptr)); err != nil {
		return err
	}
	if ret < 0 {
		return d.errOr("read events")
	}
	return nil
}

// DispatchPending dispatches queued events on q without reading the
// socket and returns how many were dispatched.
func (d *Display) DispatchPending(q *EventQueue) (int, error) {
	var ret int32
	if err := fnDisplayDispatchQueuePending.call(unsafe.Pointer(&ret), unsafe.Pointer(&d.ptr), unsafe.Pointer(&q.ptr)); err != nil {
		return 0, err
	}
	if ret < 0 {
		return 0, d.errOr("dispatch")
	}
	return int(ret), nil
}

// Disconnect closes the connection. Proxies become invalid.
func (d *Display) Disconnect() {
	if d.ptr == 0 {
		return
	}
	if err := fnDisplayDisconnect.call(nil, unsafe.Pointer(&d.ptr)); err != nil {
		logTeardown(err)
	}
	d.ptr = 0
}

func (d *Display) errOr(op string) error {
	if err := d.Err(); err != nil {
		return fmt.Errorf("wl: %s: %w", op, err)
	}
	return fmt.Errorf("wl: %s failed", op)
}

// EventQueue is a private event queue (wl_event_queue).
type EventQueue struct {
	ptr uintptr
}

// Destroy frees the queue. Proxies still assigned to it must be destroyed
// first.
func (q *EventQueue) Destroy() {
	if q.ptr == 0 {
		return
	}
	if err := fnEventQueueDestroy.call(nil, unsafe.Pointer(&q.ptr)); err != nil {
		logTeardown(err)
	}
	q.ptr = 0
}
