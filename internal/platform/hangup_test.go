//go:build linux

package platform

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gogpu/waysurface"
	"github.com/gogpu/waysurface/internal/wl"
)

// fakeServer is a scripted wire-level server: it announces wl_compositor
// and xdg_wm_base, answers wl_display.sync, and hangs up once the base
// surface is committed.
type fakeServer struct {
	ln   *net.UnixListener
	done chan []string // requests seen, sent when the connection closes
}

func newFakeServer(t *testing.T) (*fakeServer, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	const name = "wayland-test"

	ln, err := net.ListenUnix("unix", &net.UnixAddr{Name: filepath.Join(dir, name), Net: "unix"})
	if err != nil {
		t.Fatalf("ListenUnix() error = %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	c := &fakeServer{ln: ln, done: make(chan []string, 1)}
	go c.serve()
	return c, name
}

func (c *fakeServer) serve() {
	var seen []string
	defer func() { c.done <- seen }()

	conn, err := c.ln.AcceptUnix()
	if err != nil {
		return
	}
	defer conn.Close()

	var registry, compositorID, surface uint32
	announced := false
	for {
		sender, opcode, body, err := readMessage(conn)
		if err != nil {
			return
		}
		switch {
		case sender == 1 && opcode == 1: // wl_display.get_registry
			registry = word(body, 0)
			seen = append(seen, "get_registry")
		case sender == 1 && opcode == 0: // wl_display.sync
			callback := word(body, 0)
			seen = append(seen, "sync")
			if !announced {
				writeMessage(conn, registry, 0, u32(10), str("wl_compositor"), u32(4))
				writeMessage(conn, registry, 0, u32(11), str("xdg_wm_base"), u32(1))
				announced = true
			}
			writeMessage(conn, callback, 0, u32(1))
			writeMessage(conn, 1, 1, u32(callback))
		case sender == registry && opcode == 0: // wl_registry.bind
			iface, rest := readString(body[4:])
			id := word(rest, 4)
			if iface == "wl_compositor" {
				compositorID = id
			}
			seen = append(seen, "bind "+iface)
		case sender == compositorID && opcode == 0: // wl_compositor.create_surface
			surface = word(body, 0)
			seen = append(seen, "create_surface")
		case sender == surface && opcode == 6: // wl_surface.commit
			seen = append(seen, "commit")
			return
		}
	}
}

func readMessage(r io.Reader) (sender, opcode uint32, body []byte, err error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, 0, nil, err
	}
	sender = binary.NativeEndian.Uint32(hdr[0:])
	sizeOp := binary.NativeEndian.Uint32(hdr[4:])
	body = make([]byte, int(sizeOp>>16)-len(hdr))
	if _, err := io.ReadFull(r, body); err != nil {
		return 0, 0, nil, err
	}
	return sender, sizeOp & 0xffff, body, nil
}

func writeMessage(w io.Writer, sender, opcode uint32, args ...[]byte) {
	body := slices.Concat(args...)
	msg := make([]byte, 8, 8+len(body))
	binary.NativeEndian.PutUint32(msg[0:], sender)
	binary.NativeEndian.PutUint32(msg[4:], uint32(8+len(body))<<16|opcode)
	_, _ = w.Write(append(msg, body...))
}

func word(b []byte, off int) uint32 { return binary.NativeEndian.Uint32(b[off:]) }

func u32(v uint32) []byte { return binary.NativeEndian.AppendUint32(nil, v) }

// str encodes a wire string: length with NUL, bytes, padding to 4.
func str(s string) []byte {
	n := len(s) + 1
	b := u32(uint32(n))
	b = append(b, s...)
	b = append(b, 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

func readString(b []byte) (string, []byte) {
	n := int(word(b, 0))
	padded := (n + 3) &^ 3
	return string(b[4 : 4+n-1]), b[4+padded:]
}

type idlePresenter struct{}

func (idlePresenter) Configure(waysurface.WindowSize) error { return nil }
func (idlePresenter) RenderFrame() error                    { return nil }

func TestRunConnectionLostAfterCommit(t *testing.T) {
	if err := wl.Load(); err != nil {
		t.Skipf("libwayland-client not available: %v", err)
	}
	if os.Getenv("WAYLAND_SOCKET") != "" {
		t.Skip("WAYLAND_SOCKET overrides the display name")
	}
	srv, name := newFakeServer(t)

	conn, err := Connect(name)
	if err != nil {
		t.Fatalf("Connect(%q) error = %v", name, err)
	}
	defer conn.Close()

	s := waysurface.NewSession(conn, waysurface.WithTitle("hangup"))
	err = waysurface.Run(context.Background(), conn, s, func(uintptr) (waysurface.Presenter, error) {
		return idlePresenter{}, nil
	})
	if !errors.Is(err, ErrConnectionLost) {
		t.Fatalf("Run() = %v, want ErrConnectionLost", err)
	}

	seen := <-srv.done
	want := []string{"get_registry", "sync", "bind wl_compositor", "create_surface", "bind xdg_wm_base", "commit"}
	if !slices.Equal(seen, want) {
		t.Errorf("requests = %v, want %v", seen, want)
	}
}

func TestLostWrapsCause(t *testing.T) {
	cause := errors.New("broken pipe")
	err := lost(cause)
	if !errors.Is(err, ErrConnectionLost) {
		t.Errorf("lost() = %v, want ErrConnectionLost", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("lost() = %v, want it to wrap %v", err, cause)
	}
}
