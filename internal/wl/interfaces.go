//go:build linux

package wl

import "golang.org/x/sys/unix"

// cMessage matches struct wl_message on LP64.
type cMessage struct {
	name      *byte
	signature *byte
	types     **cInterface
}

// cInterface matches struct wl_interface on LP64.
type cInterface struct {
	name        *byte
	version     int32
	methodCount int32
	methods     *cMessage
	eventCount  int32
	_           int32
	events      *cMessage
}

// Name returns the protocol name of the interface.
func (i *cInterface) Name() string {
	return unix.BytePtrToString(i.name)
}

// xdg-shell is not part of libwayland-client, so its interface tables are
// built here, the way wayland-scanner would emit them for version 1.
var (
	wmBaseInterface     cInterface
	xdgSurfaceInterface cInterface
	toplevelInterface   cInterface

	wmBaseRequests     [4]cMessage
	wmBaseEvents       [1]cMessage
	xdgSurfaceRequests [5]cMessage
	xdgSurfaceEvents   [1]cMessage
	toplevelRequests   [14]cMessage
	toplevelEvents     [2]cMessage

	// Argument type tables. Entries are nil for arguments that carry no
	// object or for interfaces this package never creates.
	nullTypes          [4]*cInterface
	getXDGSurfaceTypes [2]*cInterface
	getToplevelTypes   [1]*cInterface
	getPopupTypes      [3]*cInterface
	setParentTypes     [1]*cInterface
)

// Request opcodes.
const (
	opDisplayGetRegistry = 1

	opRegistryBind = 0

	opCompositorCreateSurface = 0

	opSurfaceDestroy = 0
	opSurfaceCommit  = 6

	opWmBaseDestroy       = 0
	opWmBaseGetXDGSurface = 2
	opWmBasePong          = 3

	opXDGSurfaceDestroy      = 0
	opXDGSurfaceGetToplevel  = 1
	opXDGSurfaceAckConfigure = 4

	opToplevelDestroy  = 0
	opToplevelSetTitle = 2
	opToplevelSetAppID = 3
)

// marshalFlagDestroy is WL_MARSHAL_FLAG_DESTROY.
const marshalFlagDestroy = 1 << 0

type msgSpec struct {
	name, signature string
	types           **cInterface
}

func fillMessages(dst []cMessage, specs []msgSpec) {
	for i, s := range specs {
		types := s.types
		if types == nil {
			types = &nullTypes[0]
		}
		dst[i] = cMessage{
			name:      cString(s.name),
			signature: cString(s.signature),
			types:     types,
		}
	}
}

func fillInterface(dst *cInterface, name string, version int32, methods, events []cMessage) {
	*dst = cInterface{
		name:        cString(name),
		version:     version,
		methodCount: int32(len(methods)),
		methods:     &methods[0],
		eventCount:  int32(len(events)),
		events:      &events[0],
	}
}

// buildXDGInterfaces fills the xdg-shell interface tables. surface is
// libwayland's wl_surface_interface, referenced by get_xdg_surface.
func buildXDGInterfaces(surface *cInterface) {
	getXDGSurfaceTypes = [2]*cInterface{&xdgSurfaceInterface, surface}
	getToplevelTypes = [1]*cInterface{&toplevelInterface}
	getPopupTypes = [3]*cInterface{nil, &xdgSurfaceInterface, nil}
	setParentTypes = [1]*cInterface{&toplevelInterface}

	fillMessages(wmBaseRequests[:], []msgSpec{
		{name: "destroy", signature: ""},
		{name: "create_positioner", signature: "n"},
		{name: "get_xdg_surface", signature: "no", types: &getXDGSurfaceTypes[0]},
		{name: "pong", signature: "u"},
	})
	fillMessages(wmBaseEvents[:], []msgSpec{
		{name: "ping", signature: "u"},
	})

	fillMessages(xdgSurfaceRequests[:], []msgSpec{
		{name: "destroy", signature: ""},
		{name: "get_toplevel", signature: "n", types: &getToplevelTypes[0]},
		{name: "get_popup", signature: "n?oo", types: &getPopupTypes[0]},
		{name: "set_window_geometry", signature: "iiii"},
		{name: "ack_configure", signature: "u"},
	})
	fillMessages(xdgSurfaceEvents[:], []msgSpec{
		{name: "configure", signature: "u"},
	})

	fillMessages(toplevelRequests[:], []msgSpec{
		{name: "destroy", signature: ""},
		{name: "set_parent", signature: "?o", types: &setParentTypes[0]},
		{name: "set_title", signature: "s"},
		{name: "set_app_id", signature: "s"},
		{name: "show_window_menu", signature: "ouii"},
		{name: "move", signature: "ou"},
		{name: "resize", signature: "ouu"},
		{name: "set_max_size", signature: "ii"},
		{name: "set_min_size", signature: "ii"},
		{name: "set_maximized", signature: ""},
		{name: "unset_maximized", signature: ""},
		{name: "set_fullscreen", signature: "?o"},
		{name: "unset_fullscreen", signature: ""},
		{name: "set_minimized", signature: ""},
	})
	fillMessages(toplevelEvents[:], []msgSpec{
		{name: "configure", signature: "iia"},
		{name: "close", signature: ""},
	})

	fillInterface(&wmBaseInterface, "xdg_wm_base", 1, wmBaseRequests[:], wmBaseEvents[:])
	fillInterface(&xdgSurfaceInterface, "xdg_surface", 1, xdgSurfaceRequests[:], xdgSurfaceEvents[:])
	fillInterface(&toplevelInterface, "xdg_toplevel", 1, toplevelRequests[:], toplevelEvents[:])
}

// cString returns a NUL-terminated copy of s. The bytes live on the Go
// heap; callers keep them reachable while C may read them.
func cString(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}
