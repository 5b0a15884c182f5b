//go:build linux

// Package xlib opens the Xlib display connection that GPU drivers need to
// create a presentation surface for an X11 window.
package xlib

/*
#cgo pkg-config: x11
#include <stdlib.h>
#include <X11/Xlib.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// Display is an open Xlib connection.
type Display struct {
	dpy *C.Display
}

// Open connects to name, or $DISPLAY when name is empty.
func Open(name string) (*Display, error) {
	var cname *C.char
	if name != "" {
		cname = C.CString(name)
		defer C.free(unsafe.Pointer(cname))
	}
	dpy := C.XOpenDisplay(cname)
	if dpy == nil {
		return nil, fmt.Errorf("XOpenDisplay(%q) failed", name)
	}
	return &Display{dpy: dpy}, nil
}

// Pointer returns the Display* for surface descriptors.
func (d *Display) Pointer() unsafe.Pointer {
	if d == nil {
		return nil
	}
	return unsafe.Pointer(d.dpy)
}

// Close disconnects. It is safe to call more than once.
func (d *Display) Close() error {
	if d == nil || d.dpy == nil {
		return nil
	}
	C.XCloseDisplay(d.dpy)
	d.dpy = nil
	return nil
}
