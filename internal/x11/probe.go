package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// CompositorStatus represents the detected compositor state.
type CompositorStatus int

const (
	// CompositorUnknown means we couldn't determine compositor status.
	CompositorUnknown CompositorStatus = iota
	// CompositorActive means a compositor owns the screen's CM selection.
	CompositorActive
	// CompositorInactive means no compositor; alpha will render as black.
	CompositorInactive
)

func (cs CompositorStatus) String() string {
	switch cs {
	case CompositorActive:
		return "active"
	case CompositorInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// DetectCompositor checks the _NET_WM_CM_S<n> selection, which EWMH
// compositors own for the screen they manage.
func DetectCompositor(s Server, screen Screen) CompositorStatus {
	atom, err := s.InternAtom(fmt.Sprintf("_NET_WM_CM_S%d", screen.Number))
	if err != nil {
		return CompositorUnknown
	}
	owner, err := s.SelectionOwner(atom)
	if err != nil {
		return CompositorUnknown
	}
	if owner != xproto.WindowNone {
		return CompositorActive
	}
	return CompositorInactive
}

// ProbeReport describes what the display offers the overlay.
type ProbeReport struct {
	Extensions    Extensions
	ExtensionsErr error
	Screen        Screen
	ARGBVisual    xproto.Visualid
	HasARGB       bool
	Compositor    CompositorStatus
	WindowManager string
}

// Probe gathers a ProbeReport without creating any window.
func Probe(c *Connection) ProbeReport {
	rep := ProbeReport{Screen: c.Screen}
	rep.Extensions, rep.ExtensionsErr = InitializeExtensions(c)
	rep.ARGBVisual, rep.HasARGB = c.Screen.ARGBVisual()
	rep.Compositor = DetectCompositor(c, c.Screen)
	rep.WindowManager = c.WindowManagerName()
	return rep
}

// WindowManagerName returns the EWMH window manager name, or "" when the
// window manager does not advertise one.
func (c *Connection) WindowManagerName() string {
	name, err := ewmh.GetEwmhWM(c.XUtil)
	if err != nil {
		return ""
	}
	return name
}
