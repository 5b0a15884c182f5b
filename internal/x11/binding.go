package x11

import (
	"errors"
	"unsafe"
)

// NativeDisplay is a native client-library display connection. GPU surface
// creation needs one; the pure-Go protocol connection cannot provide it.
type NativeDisplay interface {
	Pointer() unsafe.Pointer
	Close() error
}

// Binding holds only what a GPU surface needs to attach to the overlay.
// It must not outlive the overlay window.
type Binding struct {
	Display NativeDisplay
	Window  uint32
	Visual  uint32
	Screen  int
	Width   uint32
	Height  uint32
}

// NewBinding ties a native display to an overlay window.
func NewBinding(display NativeDisplay, screen Screen, ov *Overlay) (*Binding, error) {
	if display == nil || display.Pointer() == nil {
		return nil, errors.New("native display is not open")
	}
	if ov == nil || ov.Window == 0 {
		return nil, errors.New("overlay window is not created")
	}
	return &Binding{
		Display: display,
		Window:  uint32(ov.Window),
		Visual:  uint32(ov.Visual),
		Screen:  screen.Number,
		Width:   uint32(ov.Geometry.Width),
		Height:  uint32(ov.Geometry.Height),
	}, nil
}

// Close releases the native display.
func (b *Binding) Close() error {
	if b == nil || b.Display == nil {
		return nil
	}
	err := b.Display.Close()
	b.Display = nil
	return err
}
