package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Connection manages the X11 connection and core X resources. It is created
// once at startup and borrowed by every request the overlay issues.
type Connection struct {
	XUtil  *xgbutil.XUtil
	Root   xproto.Window
	Screen Screen
}

// NewConnection connects to the named display ("" means $DISPLAY) and reads
// the default screen descriptor.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X display %q: %w", display, err)
	}

	conn := xu.Conn()
	return &Connection{
		XUtil:  xu,
		Root:   xu.RootWin(),
		Screen: ScreenFromInfo(conn.DefaultScreen, xu.Screen()),
	}, nil
}

// Conn returns the underlying protocol connection.
func (c *Connection) Conn() *xgb.Conn {
	return c.XUtil.Conn()
}

// Sync blocks until the server has processed every request sent so far.
func (c *Connection) Sync() {
	c.Conn().Sync()
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
