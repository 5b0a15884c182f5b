package x11

import (
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"
)

// regionNone resets a window shape to its default when passed as the region.
const regionNone = xfixes.Region(0)

// WindowRequest carries the CreateWindow parameters the overlay needs.
type WindowRequest struct {
	ID          xproto.Window
	Parent      xproto.Window
	Depth       byte
	Visual      xproto.Visualid
	X, Y        int16
	Width       uint16
	Height      uint16
	BorderWidth uint16
	ValueMask   uint32
	Values      []uint32
}

// Server is the set of protocol requests issued against the display
// connection. *Connection implements it; tests substitute a recorder.
type Server interface {
	QueryShapeVersion() (major, minor uint16, err error)
	QueryXFixesVersion(major, minor uint32) (uint32, uint32, error)

	NewWindowID() (xproto.Window, error)
	CreateColormap(root xproto.Window, visual xproto.Visualid) (xproto.Colormap, error)
	FreeColormap(cmap xproto.Colormap) error
	CreateWindow(req WindowRequest) error
	MapWindow(win xproto.Window) error
	DestroyWindow(win xproto.Window) error

	CreateRegion(rects []xproto.Rectangle) (xfixes.Region, error)
	DestroyRegion(region xfixes.Region) error
	SetWindowShapeRegion(win xproto.Window, kind shape.Kind, region xfixes.Region) error
	ShapeRectangles(win xproto.Window, kind shape.Kind) ([]xproto.Rectangle, error)

	InternAtom(name string) (xproto.Atom, error)
	SendClientMessage(dest xproto.Window, mask uint32, ev xproto.ClientMessageEvent) error
	SelectionOwner(selection xproto.Atom) (xproto.Window, error)

	QueryTree(win xproto.Window) ([]xproto.Window, error)
	ConfigureStackMode(win xproto.Window, mode byte) error
}

var _ Server = (*Connection)(nil)

func (c *Connection) QueryShapeVersion() (uint16, uint16, error) {
	if err := shape.Init(c.Conn()); err != nil {
		return 0, 0, err
	}
	reply, err := shape.QueryVersion(c.Conn()).Reply()
	if err != nil {
		return 0, 0, err
	}
	return reply.MajorVersion, reply.MinorVersion, nil
}

func (c *Connection) QueryXFixesVersion(major, minor uint32) (uint32, uint32, error) {
	if err := xfixes.Init(c.Conn()); err != nil {
		return 0, 0, err
	}
	reply, err := xfixes.QueryVersion(c.Conn(), major, minor).Reply()
	if err != nil {
		return 0, 0, err
	}
	return reply.MajorVersion, reply.MinorVersion, nil
}

func (c *Connection) NewWindowID() (xproto.Window, error) {
	return xproto.NewWindowId(c.Conn())
}

func (c *Connection) CreateColormap(root xproto.Window, visual xproto.Visualid) (xproto.Colormap, error) {
	cmap, err := xproto.NewColormapId(c.Conn())
	if err != nil {
		return 0, err
	}
	err = xproto.CreateColormapChecked(c.Conn(), xproto.ColormapAllocNone, cmap, root, visual).Check()
	if err != nil {
		return 0, err
	}
	return cmap, nil
}

func (c *Connection) FreeColormap(cmap xproto.Colormap) error {
	return xproto.FreeColormapChecked(c.Conn(), cmap).Check()
}

func (c *Connection) CreateWindow(req WindowRequest) error {
	return xproto.CreateWindowChecked(
		c.Conn(),
		req.Depth,
		req.ID,
		req.Parent,
		req.X, req.Y,
		req.Width, req.Height,
		req.BorderWidth,
		xproto.WindowClassInputOutput,
		req.Visual,
		req.ValueMask,
		req.Values,
	).Check()
}

func (c *Connection) MapWindow(win xproto.Window) error {
	return xproto.MapWindowChecked(c.Conn(), win).Check()
}

func (c *Connection) DestroyWindow(win xproto.Window) error {
	return xproto.DestroyWindowChecked(c.Conn(), win).Check()
}

func (c *Connection) CreateRegion(rects []xproto.Rectangle) (xfixes.Region, error) {
	region, err := xfixes.NewRegionId(c.Conn())
	if err != nil {
		return 0, err
	}
	if err := xfixes.CreateRegionChecked(c.Conn(), region, rects).Check(); err != nil {
		return 0, err
	}
	return region, nil
}

func (c *Connection) DestroyRegion(region xfixes.Region) error {
	return xfixes.DestroyRegionChecked(c.Conn(), region).Check()
}

func (c *Connection) SetWindowShapeRegion(win xproto.Window, kind shape.Kind, region xfixes.Region) error {
	return xfixes.SetWindowShapeRegionChecked(c.Conn(), win, kind, 0, 0, region).Check()
}

func (c *Connection) ShapeRectangles(win xproto.Window, kind shape.Kind) ([]xproto.Rectangle, error) {
	reply, err := shape.GetRectangles(c.Conn(), win, kind).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Rectangles, nil
}

// InternAtom goes through xgbutil's atom cache.
func (c *Connection) InternAtom(name string) (xproto.Atom, error) {
	return xprop.Atm(c.XUtil, name)
}

func (c *Connection) SendClientMessage(dest xproto.Window, mask uint32, ev xproto.ClientMessageEvent) error {
	return xproto.SendEventChecked(c.Conn(), false, dest, mask, string(ev.Bytes())).Check()
}

func (c *Connection) SelectionOwner(selection xproto.Atom) (xproto.Window, error) {
	reply, err := xproto.GetSelectionOwner(c.Conn(), selection).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Owner, nil
}

func (c *Connection) QueryTree(win xproto.Window) ([]xproto.Window, error) {
	reply, err := xproto.QueryTree(c.Conn(), win).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Children, nil
}

func (c *Connection) ConfigureStackMode(win xproto.Window, mode byte) error {
	return xproto.ConfigureWindowChecked(
		c.Conn(),
		win,
		xproto.ConfigWindowStackMode,
		[]uint32{uint32(mode)},
	).Check()
}
