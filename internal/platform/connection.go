//go:build linux

package platform

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/gogpu/waysurface"
	"github.com/gogpu/waysurface/internal/wl"
)

// ErrConnectionLost is returned by Pump and Roundtrip when the display
// connection fails. It wraps the errno reported by the display.
var ErrConnectionLost = errors.New("platform: display connection lost")

// Connection is a Wayland client connection with a private event queue.
//
// It implements waysurface.EventSource and waysurface.Binder. Events are
// delivered to the handler passed to Pump or Roundtrip, on the calling
// goroutine. Only Wake may be called from other goroutines.
type Connection struct {
	display  *wl.Display
	queue    *wl.EventQueue
	registry *wl.Registry

	fd   int // display socket
	wake int // eventfd used to interrupt a blocked Pump

	handler waysurface.EventHandler
	err     error // first handler error of the current dispatch

	// destroy runs in reverse order on Close.
	objects []func()
}

var (
	_ waysurface.EventSource = (*Connection)(nil)
	_ waysurface.Binder      = (*Connection)(nil)
)

// Connect opens the named display (empty: $WAYLAND_DISPLAY) and requests
// the registry. Globals are announced on the first Roundtrip or Pump.
func Connect(name string) (*Connection, error) {
	d, err := wl.Connect(name)
	if err != nil {
		return nil, err
	}
	c := &Connection{display: d, fd: -1, wake: -1}

	if c.fd, err = d.FD(); err != nil {
		c.Close()
		return nil, err
	}

	q, err := d.CreateQueue()
	if err != nil {
		c.Close()
		return nil, err
	}
	c.queue = q

	r, err := d.GetRegistry(q)
	if err != nil {
		c.Close()
		return nil, err
	}
	r.Global = func(name uint32, iface string, version uint32) {
		c.deliver(waysurface.GlobalEvent{Name: name, Interface: iface, Version: version})
	}
	r.GlobalRemove = func(name uint32) {
		c.deliver(waysurface.GlobalRemoveEvent{Name: name})
	}
	c.registry = r

	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("platform: eventfd: %w", err)
	}
	c.wake = fd

	waysurface.Logger().Info("platform: connected", "display", wl.DisplayName(name))
	return c, nil
}

// DisplayHandle returns the native wl_display pointer for GPU surface
// creation.
func (c *Connection) DisplayHandle() uintptr { return c.display.Ptr() }

// deliver forwards ev to the current handler. After the first handler
// error the remaining events of the batch are dropped.
func (c *Connection) deliver(ev waysurface.Event) {
	if c.handler == nil || c.err != nil {
		return
	}
	if err := c.handler.Handle(ev); err != nil {
		c.err = err
	}
}

// takeErr returns and clears the recorded handler error.
func (c *Connection) takeErr() error {
	err := c.err
	c.err = nil
	return err
}

// Roundtrip blocks until the compositor has processed every request sent
// so far, delivering events to h.
func (c *Connection) Roundtrip(h waysurface.EventHandler) error {
	c.handler = h
	defer func() { c.handler = nil }()

	if err := c.display.RoundtripQueue(c.queue); err != nil {
		c.err = nil
		return lost(err)
	}
	return c.takeErr()
}

// lost wraps a display-level failure. The connection is unusable after it.
func lost(err error) error {
	return fmt.Errorf("%w: %w", ErrConnectionLost, err)
}

// Pump flushes requests, waits for events or a Wake, and dispatches what
// arrived to h. Events already queued are dispatched without reading.
func (c *Connection) Pump(h waysurface.EventHandler) error {
	c.handler = h
	defer func() { c.handler = nil }()

	ready, err := c.display.PrepareRead(c.queue)
	if err != nil {
		return fmt.Errorf("platform: prepare read: %w", err)
	}
	if !ready {
		return c.dispatch()
	}
	if err := c.display.Flush(); err != nil {
		c.cancelRead()
		return lost(err)
	}

	fds := []unix.PollFd{
		{Fd: int32(c.fd), Events: unix.POLLIN},
		{Fd: int32(c.wake), Events: unix.POLLIN},
	}
	for {
		_, err := unix.Poll(fds, -1)
		if err == nil {
			break
		}
		if !errors.Is(err, unix.EINTR) {
			c.cancelRead()
			return fmt.Errorf("platform: poll: %w", err)
		}
	}

	if fds[1].Revents&unix.POLLIN != 0 {
		c.drainWake()
	}

	// A hangup usually arrives together with POLLIN; the read then fails
	// with the errno the display recorded.
	switch {
	case fds[0].Revents&unix.POLLIN != 0:
		if err := c.display.ReadEvents(); err != nil {
			return lost(err)
		}
	case fds[0].Revents&(unix.POLLERR|unix.POLLHUP) != 0:
		c.cancelRead()
		if err := c.display.Err(); err != nil {
			return lost(err)
		}
		return lost(unix.EPIPE)
	default:
		c.cancelRead()
	}
	return c.dispatch()
}

func (c *Connection) cancelRead() {
	if err := c.display.CancelRead(); err != nil {
		waysurface.Logger().Warn("platform: cancel read failed", "error", err)
	}
}

func (c *Connection) dispatch() error {
	n, err := c.display.DispatchPending(c.queue)
	if err != nil {
		c.err = nil
		return lost(err)
	}
	if n > 0 {
		waysurface.Logger().Debug("platform: dispatched events", "count", n)
	}
	return c.takeErr()
}

// Wake interrupts a Pump blocked in poll. It is safe to call from any
// goroutine and is typically registered with context.AfterFunc.
func (c *Connection) Wake() {
	if c.wake < 0 {
		return
	}
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], 1)
	_, _ = unix.Write(c.wake, buf[:])
}

func (c *Connection) drainWake() {
	var buf [8]byte
	_, _ = unix.Read(c.wake, buf[:])
}

// Close destroys every object created through the connection and
// disconnects. Close is idempotent.
func (c *Connection) Close() {
	for i := len(c.objects) - 1; i >= 0; i-- {
		c.objects[i]()
	}
	c.objects = nil
	if c.registry != nil {
		c.registry.Destroy()
		c.registry = nil
	}
	if c.display != nil && c.display.Ptr() != 0 {
		_ = c.display.Flush()
	}
	if c.queue != nil {
		c.queue.Destroy()
		c.queue = nil
	}
	if c.display != nil {
		c.display.Disconnect()
	}
	if c.wake >= 0 {
		_ = unix.Close(c.wake)
		c.wake = -1
	}
}

// track registers a destructor to run on Close.
func (c *Connection) track(destroy func()) {
	c.objects = append(c.objects, destroy)
}
