package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xproto"
)

// withRegion creates a server-side region from rects, hands it to fn and
// destroys it afterwards, whether or not fn succeeded.
func withRegion(s Server, rects []xproto.Rectangle, fn func(xfixes.Region) error) (err error) {
	region, err := s.CreateRegion(rects)
	if err != nil {
		return fmt.Errorf("failed to create region: %w", err)
	}
	defer func() {
		if derr := s.DestroyRegion(region); derr != nil {
			err = errors.Join(err, fmt.Errorf("failed to destroy region: %w", derr))
		}
	}()
	return fn(region)
}

// MakeInputTransparent keeps the bounding shape at the full window rectangle
// and sets the input shape to an empty region, so pointer and keyboard events
// fall through to whatever is beneath the window.
func MakeInputTransparent(s Server, win xproto.Window) error {
	if err := s.SetWindowShapeRegion(win, shape.SkBounding, regionNone); err != nil {
		return fmt.Errorf("failed to reset bounding shape: %w", err)
	}
	return withRegion(s, nil, func(empty xfixes.Region) error {
		if err := s.SetWindowShapeRegion(win, shape.SkInput, empty); err != nil {
			return fmt.Errorf("failed to set input shape: %w", err)
		}
		return nil
	})
}
