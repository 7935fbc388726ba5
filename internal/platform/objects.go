//go:build linux

package platform

import (
	"fmt"

	"github.com/gogpu/waysurface"
	"github.com/gogpu/waysurface/internal/wl"
)

// BindCompositor binds the wl_compositor global.
func (c *Connection) BindCompositor(name, version uint32) (waysurface.Compositor, error) {
	comp, err := c.registry.BindCompositor(name, version)
	if err != nil {
		return nil, err
	}
	c.track(comp.Destroy)
	return &compositor{conn: c, comp: comp}, nil
}

// BindShell binds the xdg_wm_base global. Pings are delivered as
// waysurface.PingEvent.
func (c *Connection) BindShell(name, version uint32) (waysurface.Shell, error) {
	wm, err := c.registry.BindWmBase(name, version)
	if err != nil {
		return nil, err
	}
	wm.Ping = func(serial uint32) {
		c.deliver(waysurface.PingEvent{Serial: serial})
	}
	c.track(wm.Destroy)
	return &shell{conn: c, wm: wm}, nil
}

type compositor struct {
	conn *Connection
	comp *wl.Compositor
}

func (p *compositor) CreateSurface() (waysurface.Surface, error) {
	s, err := p.comp.CreateSurface()
	if err != nil {
		return nil, err
	}
	p.conn.track(s.Destroy)
	return &surface{s: s}, nil
}

type surface struct {
	s *wl.Surface
}

func (p *surface) Commit() error   { return p.s.Commit() }
func (p *surface) Handle() uintptr { return p.s.Ptr() }

type shell struct {
	conn *Connection
	wm   *wl.WmBase
}

func (p *shell) GetSurfaceAdapter(s waysurface.Surface) (waysurface.RoleAdapter, error) {
	native, ok := s.(*surface)
	if !ok {
		return nil, fmt.Errorf("platform: surface %T was not created by this connection", s)
	}
	xs, err := p.wm.GetXdgSurface(native.s)
	if err != nil {
		return nil, err
	}
	xs.Configure = func(serial uint32) {
		p.conn.deliver(waysurface.SurfaceConfigureEvent{Serial: serial})
	}
	p.conn.track(xs.Destroy)
	return &roleAdapter{conn: p.conn, xs: xs}, nil
}

func (p *shell) Pong(serial uint32) error { return p.wm.Pong(serial) }

type roleAdapter struct {
	conn *Connection
	xs   *wl.XdgSurface
}

func (p *roleAdapter) GetWindowRole() (waysurface.WindowRole, error) {
	tl, err := p.xs.GetToplevel()
	if err != nil {
		return nil, err
	}
	tl.Configure = func(width, height int32, states []uint32) {
		p.conn.deliver(waysurface.ToplevelConfigureEvent{
			Width:  width,
			Height: height,
			States: toplevelStates(states),
		})
	}
	tl.Close = func() {
		p.conn.deliver(waysurface.CloseEvent{})
	}
	p.conn.track(tl.Destroy)
	return tl, nil
}

func (p *roleAdapter) AckConfigure(serial uint32) error { return p.xs.AckConfigure(serial) }

// toplevelStates converts the raw xdg_toplevel state array.
func toplevelStates(raw []uint32) []waysurface.ToplevelState {
	if len(raw) == 0 {
		return nil
	}
	out := make([]waysurface.ToplevelState, len(raw))
	for i, v := range raw {
		out[i] = waysurface.ToplevelState(v)
	}
	return out
}
