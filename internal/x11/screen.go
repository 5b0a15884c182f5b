package x11

import "github.com/BurntSushi/xgb/xproto"

// Visual is one visual advertised for a depth.
type Visual struct {
	ID    xproto.Visualid
	Class byte
}

// Depth lists the visuals the screen supports at one pixel depth.
type Depth struct {
	Depth   byte
	Visuals []Visual
}

// Screen is the read-only descriptor of the target display, queried once
// after connecting.
type Screen struct {
	Number          int
	Root            xproto.Window
	Width           uint16
	Height          uint16
	RootDepth       byte
	RootVisual      xproto.Visualid
	DefaultColormap xproto.Colormap
	Depths          []Depth
}

// ScreenFromInfo copies the setup data for one screen.
func ScreenFromInfo(number int, info *xproto.ScreenInfo) Screen {
	s := Screen{
		Number:          number,
		Root:            info.Root,
		Width:           info.WidthInPixels,
		Height:          info.HeightInPixels,
		RootDepth:       info.RootDepth,
		RootVisual:      info.RootVisual,
		DefaultColormap: info.DefaultColormap,
	}
	for _, d := range info.AllowedDepths {
		depth := Depth{Depth: d.Depth}
		for _, v := range d.Visuals {
			depth.Visuals = append(depth.Visuals, Visual{ID: v.VisualId, Class: v.Class})
		}
		s.Depths = append(s.Depths, depth)
	}
	return s
}

// ARGBVisual returns a visual with a 32-bit (alpha-capable) depth. TrueColor
// visuals are preferred; otherwise the first depth-32 visual is used.
func (s Screen) ARGBVisual() (xproto.Visualid, bool) {
	var first xproto.Visualid
	found := false
	for _, d := range s.Depths {
		if d.Depth != 32 {
			continue
		}
		for _, v := range d.Visuals {
			if v.Class == xproto.VisualClassTrueColor {
				return v.ID, true
			}
			if !found {
				first = v.ID
				found = true
			}
		}
	}
	return first, found
}
