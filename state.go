package waysurface

// State is the window lifecycle state.
type State int

const (
	// StateUnassigned means the surface has no role yet.
	StateUnassigned State = iota
	// StateRoleAssigned means the xdg_toplevel role exists but the initial
	// commit has not been queued.
	StateRoleAssigned
	// StateAwaitingConfigure means the initial commit is queued and no
	// configure has been acknowledged.
	StateAwaitingConfigure
	// StateConfigured means at least one configure has been acknowledged and
	// frames may be presented.
	StateConfigured
	// StateClosed is terminal.
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnassigned:
		return "Unassigned"
	case StateRoleAssigned:
		return "RoleAssigned"
	case StateAwaitingConfigure:
		return "AwaitingConfigure"
	case StateConfigured:
		return "Configured"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// CanRender reports whether frames may be presented in this state.
func (s State) CanRender() bool {
	return s == StateConfigured
}
