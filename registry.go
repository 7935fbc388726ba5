package waysurface

import "fmt"

// handleGlobal binds the globals the window needs. The compositor binding
// creates the base surface; either binding may complete the preconditions
// for role assignment. Repeated announcements are ignored.
func (s *Session) handleGlobal(ev GlobalEvent) error {
	iface := ParseInterface(ev.Interface)
	log := Logger()

	switch iface {
	case InterfaceCompositor:
		if s.compositor != nil {
			log.Debug("waysurface: ignoring duplicate global", "interface", ev.Interface, "name", ev.Name)
			return nil
		}
		version := iface.BindVersion(ev.Version)
		c, err := s.binder.BindCompositor(ev.Name, version)
		if err != nil {
			return fmt.Errorf("waysurface: bind %s: %w", iface, err)
		}
		s.compositor, s.compositorName = c, ev.Name

		surface, err := c.CreateSurface()
		if err != nil {
			return fmt.Errorf("waysurface: create surface: %w", err)
		}
		s.surface = surface
		log.Debug("waysurface: bound global", "interface", iface, "name", ev.Name, "version", version)
		return s.maybeAssignRole()

	case InterfaceShell:
		if s.shell != nil {
			log.Debug("waysurface: ignoring duplicate global", "interface", ev.Interface, "name", ev.Name)
			return nil
		}
		version := iface.BindVersion(ev.Version)
		sh, err := s.binder.BindShell(ev.Name, version)
		if err != nil {
			return fmt.Errorf("waysurface: bind %s: %w", iface, err)
		}
		s.shell, s.shellName = sh, ev.Name
		log.Debug("waysurface: bound global", "interface", iface, "name", ev.Name, "version", version)
		return s.maybeAssignRole()

	default:
		return nil
	}
}

// handleGlobalRemove logs removal of a bound global. Bound objects stay
// valid; the compositor simply stops advertising them.
func (s *Session) handleGlobalRemove(ev GlobalRemoveEvent) {
	switch {
	case s.compositor != nil && ev.Name == s.compositorName:
		Logger().Warn("waysurface: bound global removed", "interface", InterfaceCompositor, "name", ev.Name)
	case s.shell != nil && ev.Name == s.shellName:
		Logger().Warn("waysurface: bound global removed", "interface", InterfaceShell, "name", ev.Name)
	}
}

// checkCapabilities reports the first required global that is not bound.
func (s *Session) checkCapabilities() error {
	if s.compositor == nil {
		return missingCapability(InterfaceCompositor)
	}
	if s.shell == nil {
		return missingCapability(InterfaceShell)
	}
	return nil
}
