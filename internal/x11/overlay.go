package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// ErrNoARGBVisual means the screen advertises no 32-bit depth visual, so the
// window background cannot be transparent.
var ErrNoARGBVisual = errors.New("screen has no 32-bit depth visual")

// allEventsMask subscribes to every core event category (bits 0-24).
const allEventsMask = 0x01FFFFFF

// Geometry is a window rectangle in root coordinates.
type Geometry struct {
	X, Y          int16
	Width, Height uint16
}

// OverlayGeometry centres the overlay on the screen with margin pixels
// removed from each axis.
func OverlayGeometry(screen Screen, margin int) (Geometry, error) {
	if margin < 0 {
		return Geometry{}, fmt.Errorf("margin must be >= 0, got %d", margin)
	}
	if margin >= int(screen.Width) || margin >= int(screen.Height) {
		return Geometry{}, fmt.Errorf("margin %d leaves no room on a %dx%d screen", margin, screen.Width, screen.Height)
	}
	return Geometry{
		X:      int16(margin / 2),
		Y:      int16(margin / 2),
		Width:  screen.Width - uint16(margin),
		Height: screen.Height - uint16(margin),
	}, nil
}

// Overlay is the created overlay window. The process owns it for its
// lifetime; Destroy is an optional explicit teardown.
type Overlay struct {
	Window   xproto.Window
	Visual   xproto.Visualid
	Colormap xproto.Colormap
	Root     xproto.Window
	Geometry Geometry
}

// CreateOverlayWindow creates a transparent, override-redirect, click-through
// window requesting the always-on-top state. The window is not mapped.
func CreateOverlayWindow(s Server, screen Screen, geom Geometry) (ov *Overlay, err error) {
	visual, ok := screen.ARGBVisual()
	if !ok {
		return nil, ErrNoARGBVisual
	}

	cmap, err := s.CreateColormap(screen.Root, visual)
	if err != nil {
		return nil, fmt.Errorf("failed to create colormap: %w", err)
	}
	defer func() {
		if err != nil {
			s.FreeColormap(cmap)
		}
	}()

	wid, err := s.NewWindowID()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}

	// Value list order follows the bit positions of the mask (low -> high).
	// A depth differing from the root's needs an explicit border pixel and
	// colormap or the server replies BadMatch.
	err = s.CreateWindow(WindowRequest{
		ID:          wid,
		Parent:      screen.Root,
		Depth:       32,
		Visual:      visual,
		X:           geom.X,
		Y:           geom.Y,
		Width:       geom.Width,
		Height:      geom.Height,
		BorderWidth: 0,
		ValueMask: xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwOverrideRedirect |
			xproto.CwEventMask | xproto.CwColormap,
		Values: []uint32{
			0x00000000, // back_pixel: fully transparent
			1,          // border_pixel
			1,          // override_redirect
			allEventsMask,
			uint32(cmap),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay window: %w", err)
	}
	defer func() {
		if err != nil {
			s.DestroyWindow(wid)
		}
	}()

	if err := MakeInputTransparent(s, wid); err != nil {
		return nil, err
	}
	if err := RequestAlwaysOnTop(s, screen.Root, wid); err != nil {
		return nil, err
	}

	return &Overlay{
		Window:   wid,
		Visual:   visual,
		Colormap: cmap,
		Root:     screen.Root,
		Geometry: geom,
	}, nil
}

// Map makes the overlay visible.
func (o *Overlay) Map(s Server) error {
	if err := s.MapWindow(o.Window); err != nil {
		return fmt.Errorf("failed to map overlay window: %w", err)
	}
	return nil
}

// Destroy releases the window and its colormap.
func (o *Overlay) Destroy(s Server) error {
	if o == nil || o.Window == 0 {
		return nil
	}
	werr := s.DestroyWindow(o.Window)
	cerr := s.FreeColormap(o.Colormap)
	o.Window = 0
	o.Colormap = 0
	return errors.Join(werr, cerr)
}
