package waysurface

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// recorder collects protocol and GPU calls in order.
type recorder struct {
	calls []string
}

func (r *recorder) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (r *recorder) index(call string) int {
	return slices.Index(r.calls, call)
}

type fakeBinder struct {
	rec           *recorder
	compositorErr error
	shellErr      error
}

func (b *fakeBinder) BindCompositor(name, version uint32) (Compositor, error) {
	b.rec.record("bind wl_compositor name=%d v=%d", name, version)
	if b.compositorErr != nil {
		return nil, b.compositorErr
	}
	return &fakeCompositor{rec: b.rec}, nil
}

func (b *fakeBinder) BindShell(name, version uint32) (Shell, error) {
	b.rec.record("bind xdg_wm_base name=%d v=%d", name, version)
	if b.shellErr != nil {
		return nil, b.shellErr
	}
	return &fakeShell{rec: b.rec}, nil
}

type fakeCompositor struct{ rec *recorder }

func (c *fakeCompositor) CreateSurface() (Surface, error) {
	c.rec.record("create_surface")
	return &fakeSurface{rec: c.rec}, nil
}

type fakeSurface struct{ rec *recorder }

func (s *fakeSurface) Commit() error {
	s.rec.record("commit")
	return nil
}

func (s *fakeSurface) Handle() uintptr { return 0x1000 }

type fakeShell struct{ rec *recorder }

func (s *fakeShell) GetSurfaceAdapter(Surface) (RoleAdapter, error) {
	s.rec.record("get_xdg_surface")
	return &fakeAdapter{rec: s.rec}, nil
}

func (s *fakeShell) Pong(serial uint32) error {
	s.rec.record("pong %d", serial)
	return nil
}

type fakeAdapter struct{ rec *recorder }

func (a *fakeAdapter) GetWindowRole() (WindowRole, error) {
	a.rec.record("get_toplevel")
	return &fakeRole{rec: a.rec}, nil
}

func (a *fakeAdapter) AckConfigure(serial uint32) error {
	a.rec.record("ack %d", serial)
	return nil
}

type fakeRole struct{ rec *recorder }

func (r *fakeRole) SetTitle(title string) error {
	r.rec.record("set_title %s", title)
	return nil
}

func (r *fakeRole) SetAppID(appID string) error {
	r.rec.record("set_app_id %s", appID)
	return nil
}

type fakePresenter struct {
	rec       *recorder
	renderErr error
}

func (p *fakePresenter) Configure(size WindowSize) error {
	p.rec.record("configure %s", size)
	return nil
}

func (p *fakePresenter) RenderFrame() error {
	p.rec.record("render")
	return p.renderErr
}

var errSourceDrained = errors.New("fake source drained")

// fakeSource replays scripted batches. Roundtrip delivers initial; each
// Pump delivers the next batch.
type fakeSource struct {
	rec     *recorder
	initial []Event
	batches [][]Event
}

func (s *fakeSource) Roundtrip(h EventHandler) error {
	s.rec.record("roundtrip")
	return deliver(h, s.initial)
}

func (s *fakeSource) Pump(h EventHandler) error {
	if len(s.batches) == 0 {
		return errSourceDrained
	}
	s.rec.record("pump")
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return deliver(h, batch)
}

func deliver(h EventHandler, events []Event) error {
	for _, ev := range events {
		if err := h.Handle(ev); err != nil {
			return err
		}
	}
	return nil
}

func compositorGlobal(name uint32) GlobalEvent {
	return GlobalEvent{Name: name, Interface: "wl_compositor", Version: 6}
}

func shellGlobal(name uint32) GlobalEvent {
	return GlobalEvent{Name: name, Interface: "xdg_wm_base", Version: 5}
}

// newTestSession returns a session wired to fakes with the role assigned
// and a presenter attached.
func newTestSession(opts ...SessionOption) (*Session, *recorder) {
	rec := &recorder{}
	s := NewSession(&fakeBinder{rec: rec}, opts...)
	_ = s.Handle(compositorGlobal(1))
	_ = s.Handle(shellGlobal(2))
	_ = s.AttachPresenter(&fakePresenter{rec: rec})
	rec.calls = nil
	return s, rec
}
