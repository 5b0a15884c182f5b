package x11

import (
	"errors"
	"fmt"
)

// ErrNoShapeSupport means the server cannot give the overlay an empty input
// shape, so the window could never be click-through.
var ErrNoShapeSupport = errors.New("overlay cannot be made click-through")

// Minimum XFIXES version with regions and SetWindowShapeRegion.
const (
	xfixesMinMajor = 2

	xfixesClientMajor = 5
	xfixesClientMinor = 0
)

// Extensions records the negotiated protocol extension versions.
type Extensions struct {
	ShapeMajor, ShapeMinor   uint16
	XFixesMajor, XFixesMinor uint32
}

func (e Extensions) String() string {
	return fmt.Sprintf("SHAPE %d.%d, XFIXES %d.%d", e.ShapeMajor, e.ShapeMinor, e.XFixesMajor, e.XFixesMinor)
}

// InitializeExtensions negotiates SHAPE and XFIXES once at startup. Input
// shapes need SHAPE 1.1 and XFIXES 2.0.
func InitializeExtensions(s Server) (Extensions, error) {
	var ext Extensions
	var err error

	ext.ShapeMajor, ext.ShapeMinor, err = s.QueryShapeVersion()
	if err != nil {
		return ext, fmt.Errorf("%w: SHAPE extension unavailable: %v", ErrNoShapeSupport, err)
	}
	if ext.ShapeMajor < 1 || (ext.ShapeMajor == 1 && ext.ShapeMinor < 1) {
		return ext, fmt.Errorf("%w: SHAPE %d.%d has no input shapes", ErrNoShapeSupport, ext.ShapeMajor, ext.ShapeMinor)
	}

	ext.XFixesMajor, ext.XFixesMinor, err = s.QueryXFixesVersion(xfixesClientMajor, xfixesClientMinor)
	if err != nil {
		return ext, fmt.Errorf("%w: XFIXES extension unavailable: %v", ErrNoShapeSupport, err)
	}
	if ext.XFixesMajor < xfixesMinMajor {
		return ext, fmt.Errorf("%w: XFIXES %d.%d has no regions", ErrNoShapeSupport, ext.XFixesMajor, ext.XFixesMinor)
	}
	return ext, nil
}
