package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xproto"
)

// fakeServer records requests and keeps just enough server state (windows,
// shapes, regions, stacking) to answer queries the way an X server would.
type fakeServer struct {
	calls []string
	fail  map[string]error

	shapeMajor, shapeMinor   uint16
	xfixesMajor, xfixesMinor uint32

	nextID    uint32
	windows   map[xproto.Window]WindowRequest
	colormaps map[xproto.Colormap]bool
	regions   map[xfixes.Region][]xproto.Rectangle
	shapes    map[xproto.Window]map[shape.Kind][]xproto.Rectangle
	atoms     map[string]xproto.Atom
	owners    map[xproto.Atom]xproto.Window
	tree      []xproto.Window
	messages  []xproto.ClientMessageEvent
	restacks  []xproto.Window
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		fail:        map[string]error{},
		shapeMajor:  1,
		shapeMinor:  1,
		xfixesMajor: 5,
		nextID:      0x400000,
		windows:     map[xproto.Window]WindowRequest{},
		colormaps:   map[xproto.Colormap]bool{},
		regions:     map[xfixes.Region][]xproto.Rectangle{},
		shapes:      map[xproto.Window]map[shape.Kind][]xproto.Rectangle{},
		atoms:       map[string]xproto.Atom{},
		owners:      map[xproto.Atom]xproto.Window{},
	}
}

func (f *fakeServer) record(name string) error {
	f.calls = append(f.calls, name)
	return f.fail[name]
}

func (f *fakeServer) count(name string) int {
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeServer) id() uint32 {
	f.nextID++
	return f.nextID
}

func (f *fakeServer) QueryShapeVersion() (uint16, uint16, error) {
	if err := f.record("QueryShapeVersion"); err != nil {
		return 0, 0, err
	}
	return f.shapeMajor, f.shapeMinor, nil
}

func (f *fakeServer) QueryXFixesVersion(major, minor uint32) (uint32, uint32, error) {
	if err := f.record("QueryXFixesVersion"); err != nil {
		return 0, 0, err
	}
	return f.xfixesMajor, f.xfixesMinor, nil
}

func (f *fakeServer) NewWindowID() (xproto.Window, error) {
	if err := f.record("NewWindowID"); err != nil {
		return 0, err
	}
	return xproto.Window(f.id()), nil
}

func (f *fakeServer) CreateColormap(root xproto.Window, visual xproto.Visualid) (xproto.Colormap, error) {
	if err := f.record("CreateColormap"); err != nil {
		return 0, err
	}
	cmap := xproto.Colormap(f.id())
	f.colormaps[cmap] = true
	return cmap, nil
}

func (f *fakeServer) FreeColormap(cmap xproto.Colormap) error {
	if err := f.record("FreeColormap"); err != nil {
		return err
	}
	delete(f.colormaps, cmap)
	return nil
}

func (f *fakeServer) CreateWindow(req WindowRequest) error {
	if err := f.record("CreateWindow"); err != nil {
		return err
	}
	f.windows[req.ID] = req
	f.tree = append(f.tree, req.ID)
	return nil
}

func (f *fakeServer) MapWindow(win xproto.Window) error {
	return f.record("MapWindow")
}

func (f *fakeServer) DestroyWindow(win xproto.Window) error {
	if err := f.record("DestroyWindow"); err != nil {
		return err
	}
	delete(f.windows, win)
	delete(f.shapes, win)
	for i, w := range f.tree {
		if w == win {
			f.tree = append(f.tree[:i], f.tree[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeServer) CreateRegion(rects []xproto.Rectangle) (xfixes.Region, error) {
	if err := f.record("CreateRegion"); err != nil {
		return 0, err
	}
	region := xfixes.Region(f.id())
	f.regions[region] = append([]xproto.Rectangle(nil), rects...)
	return region, nil
}

func (f *fakeServer) DestroyRegion(region xfixes.Region) error {
	if err := f.record("DestroyRegion"); err != nil {
		return err
	}
	delete(f.regions, region)
	return nil
}

func (f *fakeServer) SetWindowShapeRegion(win xproto.Window, kind shape.Kind, region xfixes.Region) error {
	if err := f.record(fmt.Sprintf("SetWindowShapeRegion/%d", kind)); err != nil {
		return err
	}
	if f.shapes[win] == nil {
		f.shapes[win] = map[shape.Kind][]xproto.Rectangle{}
	}
	if region == regionNone {
		delete(f.shapes[win], kind)
		return nil
	}
	rects, ok := f.regions[region]
	if !ok {
		return fmt.Errorf("BadRegion 0x%x", uint32(region))
	}
	// Shape state is copied into the window; the region can go away.
	f.shapes[win][kind] = append([]xproto.Rectangle{}, rects...)
	return nil
}

func (f *fakeServer) ShapeRectangles(win xproto.Window, kind shape.Kind) ([]xproto.Rectangle, error) {
	if err := f.record("ShapeRectangles"); err != nil {
		return nil, err
	}
	req, ok := f.windows[win]
	if !ok {
		return nil, fmt.Errorf("BadWindow 0x%x", uint32(win))
	}
	if rects, ok := f.shapes[win][kind]; ok {
		return rects, nil
	}
	return []xproto.Rectangle{{X: 0, Y: 0, Width: req.Width, Height: req.Height}}, nil
}

func (f *fakeServer) InternAtom(name string) (xproto.Atom, error) {
	if err := f.record("InternAtom/" + name); err != nil {
		return 0, err
	}
	if atom, ok := f.atoms[name]; ok {
		return atom, nil
	}
	atom := xproto.Atom(len(f.atoms) + 300)
	f.atoms[name] = atom
	return atom, nil
}

func (f *fakeServer) SendClientMessage(dest xproto.Window, mask uint32, ev xproto.ClientMessageEvent) error {
	if err := f.record("SendClientMessage"); err != nil {
		return err
	}
	f.messages = append(f.messages, ev)
	return nil
}

func (f *fakeServer) SelectionOwner(selection xproto.Atom) (xproto.Window, error) {
	if err := f.record("SelectionOwner"); err != nil {
		return 0, err
	}
	return f.owners[selection], nil
}

func (f *fakeServer) QueryTree(win xproto.Window) ([]xproto.Window, error) {
	if err := f.record("QueryTree"); err != nil {
		return nil, err
	}
	return append([]xproto.Window(nil), f.tree...), nil
}

func (f *fakeServer) ConfigureStackMode(win xproto.Window, mode byte) error {
	if err := f.record("ConfigureStackMode"); err != nil {
		return err
	}
	if mode != xproto.StackModeAbove {
		return fmt.Errorf("unexpected stack mode %d", mode)
	}
	f.restacks = append(f.restacks, win)
	for i, w := range f.tree {
		if w == win {
			f.tree = append(f.tree[:i], f.tree[i+1:]...)
			break
		}
	}
	f.tree = append(f.tree, win)
	return nil
}

func testScreen() Screen {
	return Screen{
		Number:     0,
		Root:       0x100,
		Width:      1920,
		Height:     1080,
		RootDepth:  24,
		RootVisual: 0x21,
		Depths: []Depth{
			{Depth: 24, Visuals: []Visual{{ID: 0x21, Class: xproto.VisualClassTrueColor}}},
			{Depth: 32, Visuals: []Visual{
				{ID: 0x60, Class: xproto.VisualClassDirectColor},
				{ID: 0x61, Class: xproto.VisualClassTrueColor},
			}},
		},
	}
}
