//go:build linux

package wl

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"
)

var (
	// ErrNullProxy is returned when libwayland fails to create an object.
	ErrNullProxy = errors.New("wl: request returned a null proxy")

	// ErrDestroyed is returned when a request is sent on a destroyed object.
	ErrDestroyed = errors.New("wl: object destroyed")
)

// argument matches union wl_argument: eight bytes per slot.
type argument uint64

func uintArg(v uint32) argument { return argument(v) }

func ptrArg(p unsafe.Pointer) argument { return argument(uintptr(p)) }

func proxyArg(p uintptr) argument { return argument(p) }

// newIDArg is the placeholder slot for a new_id argument; libwayland fills
// it with the created proxy.
const newIDArg argument = 0

// marshal sends a request and returns the new proxy for constructor
// requests. Pointers stored in args must be kept alive by the caller.
func marshal(p uintptr, opcode uint32, iface *cInterface, version, flags uint32, args ...argument) (uintptr, error) {
	var argsPtr unsafe.Pointer
	if len(args) > 0 {
		argsPtr = unsafe.Pointer(&args[0])
	}
	ifacePtr := unsafe.Pointer(iface)
	var ret uintptr
	err := fnProxyMarshalArrayFlags.call(unsafe.Pointer(&ret),
		unsafe.Pointer(&p),
		unsafe.Pointer(&opcode),
		unsafe.Pointer(&ifacePtr),
		unsafe.Pointer(&version),
		unsafe.Pointer(&flags),
		unsafe.Pointer(&argsPtr),
	)
	runtime.KeepAlive(args)
	return ret, err
}

func proxyVersion(p uintptr) (uint32, error) {
	var v uint32
	err := fnProxyGetVersion.call(unsafe.Pointer(&v), unsafe.Pointer(&p))
	return v, err
}

func addListener(p uintptr, listener unsafe.Pointer, key uintptr) error {
	var ret int32
	err := fnProxyAddListener.call(unsafe.Pointer(&ret),
		unsafe.Pointer(&p),
		unsafe.Pointer(&listener),
		unsafe.Pointer(&key),
	)
	if err != nil {
		return err
	}
	if ret != 0 {
		return fmt.Errorf("wl: proxy %#x already has a listener", p)
	}
	return nil
}

// destroyProxy frees p locally.
func destroyProxy(p uintptr) {
	if err := fnProxyDestroy.call(nil, unsafe.Pointer(&p)); err != nil {
		logTeardown(err)
	}
}

// proxy is the common part of every protocol object.
type proxy struct {
	ptr uintptr
	key uintptr // listener user data, 0 if none
}

// Ptr returns the native proxy pointer.
func (p *proxy) Ptr() uintptr { return p.ptr }

// Version returns the bound protocol version, or 0 for a destroyed object.
func (p *proxy) Version() (uint32, error) {
	if p.ptr == 0 {
		return 0, nil
	}
	return proxyVersion(p.ptr)
}

// send marshals a request that creates no object.
func (p *proxy) send(opcode uint32, args ...argument) error {
	if p.ptr == 0 {
		return ErrDestroyed
	}
	version, err := proxyVersion(p.ptr)
	if err != nil {
		return err
	}
	_, err = marshal(p.ptr, opcode, nil, version, 0, args...)
	return err
}

// create marshals a constructor request and returns the new proxy.
func (p *proxy) create(opcode uint32, iface *cInterface, args ...argument) (uintptr, error) {
	if p.ptr == 0 {
		return 0, ErrDestroyed
	}
	version, err := proxyVersion(p.ptr)
	if err != nil {
		return 0, err
	}
	ptr, err := marshal(p.ptr, opcode, iface, version, 0, args...)
	if err != nil {
		return 0, err
	}
	if ptr == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNullProxy, iface.Name())
	}
	return ptr, nil
}

// listen registers obj as the receiver of this proxy's events.
func (p *proxy) listen(listener unsafe.Pointer, obj any) error {
	p.key = registerObject(obj)
	if err := addListener(p.ptr, listener, p.key); err != nil {
		unregisterObject(p.key)
		p.key = 0
		return err
	}
	return nil
}

// destroy sends a destructor request, or frees the proxy locally when the
// interface has none (opcode < 0).
func (p *proxy) destroy(opcode int) {
	if p.ptr == 0 {
		return
	}
	if opcode < 0 {
		destroyProxy(p.ptr)
	} else if err := p.sendDestructor(uint32(opcode)); err != nil {
		logTeardown(err)
	}
	unregisterObject(p.key)
	p.ptr, p.key = 0, 0
}

func (p *proxy) sendDestructor(opcode uint32) error {
	version, err := proxyVersion(p.ptr)
	if err != nil {
		return err
	}
	_, err = marshal(p.ptr, opcode, nil, version, marshalFlagDestroy)
	return err
}
