//go:build linux

package wl

import (
	"runtime"
	"unsafe"
)

// Registry announces compositor globals (wl_registry).
//
// Set the event fields before the first dispatch.
type Registry struct {
	proxy

	Global       func(name uint32, iface string, version uint32)
	GlobalRemove func(name uint32)
}

// bind binds global name to iface at version.
func (r *Registry) bind(name uint32, iface *cInterface, version uint32) (uintptr, error) {
	if r.ptr == 0 {
		return 0, ErrDestroyed
	}
	ptr, err := marshal(r.ptr, opRegistryBind, iface, version, 0,
		uintArg(name),
		ptrArg(unsafe.Pointer(iface.name)),
		uintArg(version),
		newIDArg,
	)
	if err != nil {
		return 0, err
	}
	if ptr == 0 {
		return 0, ErrNullProxy
	}
	return ptr, nil
}

// BindCompositor binds a wl_compositor global.
func (r *Registry) BindCompositor(name, version uint32) (*Compositor, error) {
	ptr, err := r.bind(name, compositorInterface, version)
	if err != nil {
		return nil, err
	}
	return &Compositor{proxy: proxy{ptr: ptr}}, nil
}

// BindWmBase binds an xdg_wm_base global.
func (r *Registry) BindWmBase(name, version uint32) (*WmBase, error) {
	ptr, err := r.bind(name, &wmBaseInterface, version)
	if err != nil {
		return nil, err
	}
	wm := &WmBase{proxy: proxy{ptr: ptr}}
	if err := wm.listen(unsafe.Pointer(&wmBaseListener), wm); err != nil {
		destroyProxy(ptr)
		return nil, err
	}
	return wm, nil
}

// Destroy frees the registry proxy. wl_registry has no destructor request.
func (r *Registry) Destroy() { r.destroy(-1) }

// Compositor is the surface factory (wl_compositor).
type Compositor struct {
	proxy
}

// CreateSurface creates a wl_surface.
func (c *Compositor) CreateSurface() (*Surface, error) {
	ptr, err := c.create(opCompositorCreateSurface, surfaceInterface, newIDArg)
	if err != nil {
		return nil, err
	}
	return &Surface{proxy: proxy{ptr: ptr}}, nil
}

// Destroy frees the compositor proxy. wl_compositor has no destructor
// request.
func (c *Compositor) Destroy() { c.destroy(-1) }

// Surface is a drawable surface (wl_surface).
type Surface struct {
	proxy
}

// Commit applies the pending surface state.
func (s *Surface) Commit() error {
	return s.send(opSurfaceCommit)
}

// Destroy destroys the surface.
func (s *Surface) Destroy() { s.destroy(opSurfaceDestroy) }

// WmBase is the xdg-shell global (xdg_wm_base).
type WmBase struct {
	proxy

	Ping func(serial uint32)
}

// GetXdgSurface creates the xdg_surface for s.
func (wm *WmBase) GetXdgSurface(s *Surface) (*XdgSurface, error) {
	ptr, err := wm.create(opWmBaseGetXDGSurface, &xdgSurfaceInterface, newIDArg, proxyArg(s.ptr))
	if err != nil {
		return nil, err
	}
	xs := &XdgSurface{proxy: proxy{ptr: ptr}}
	if err := xs.listen(unsafe.Pointer(&xdgSurfaceListener), xs); err != nil {
		destroyProxy(ptr)
		return nil, err
	}
	return xs, nil
}

// Pong answers a ping.
func (wm *WmBase) Pong(serial uint32) error {
	return wm.send(opWmBasePong, uintArg(serial))
}

// Destroy destroys the shell binding.
func (wm *WmBase) Destroy() { wm.destroy(opWmBaseDestroy) }

// XdgSurface is the shell wrapper of a surface (xdg_surface).
type XdgSurface struct {
	proxy

	Configure func(serial uint32)
}

// GetToplevel assigns the toplevel role.
func (xs *XdgSurface) GetToplevel() (*Toplevel, error) {
	ptr, err := xs.create(opXDGSurfaceGetToplevel, &toplevelInterface, newIDArg)
	if err != nil {
		return nil, err
	}
	tl := &Toplevel{proxy: proxy{ptr: ptr}}
	if err := tl.listen(unsafe.Pointer(&toplevelListener), tl); err != nil {
		destroyProxy(ptr)
		return nil, err
	}
	return tl, nil
}

// AckConfigure acknowledges a configure event.
func (xs *XdgSurface) AckConfigure(serial uint32) error {
	return xs.send(opXDGSurfaceAckConfigure, uintArg(serial))
}

// Destroy destroys the xdg_surface.
func (xs *XdgSurface) Destroy() { xs.destroy(opXDGSurfaceDestroy) }

// Toplevel is the toplevel window role (xdg_toplevel).
type Toplevel struct {
	proxy

	Configure func(width, height int32, states []uint32)
	Close     func()
}

// SetTitle sets the window title.
func (tl *Toplevel) SetTitle(title string) error {
	return tl.sendString(opToplevelSetTitle, title)
}

// SetAppID sets the application id.
func (tl *Toplevel) SetAppID(appID string) error {
	return tl.sendString(opToplevelSetAppID, appID)
}

func (tl *Toplevel) sendString(opcode uint32, s string) error {
	buf := cString(s)
	err := tl.send(opcode, ptrArg(unsafe.Pointer(buf)))
	runtime.KeepAlive(buf)
	return err
}

// Destroy destroys the toplevel role.
func (tl *Toplevel) Destroy() { tl.destroy(opToplevelDestroy) }
