package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Event is one polled protocol event or error.
type Event struct {
	Name    string
	Detail  string
	IsError bool

	// Set for ConfigureNotify on the watched window.
	Configure     bool
	Width, Height uint16
}

// PollEvent returns at most one pending event without blocking. ok is false
// when the queue is empty.
func (c *Connection) PollEvent(watch xproto.Window) (Event, bool) {
	ev, xerr := c.Conn().PollForEvent()
	return translateEvent(ev, xerr, watch)
}

func translateEvent(ev xgb.Event, xerr xgb.Error, watch xproto.Window) (Event, bool) {
	if xerr != nil {
		return Event{Name: "Error", Detail: xerr.Error(), IsError: true}, true
	}
	if ev == nil {
		return Event{}, false
	}
	out := Event{Name: eventName(ev), Detail: ev.String()}
	if cn, ok := ev.(xproto.ConfigureNotifyEvent); ok && cn.Window == watch {
		out.Configure = true
		out.Width = cn.Width
		out.Height = cn.Height
	}
	return out, true
}

func eventName(ev xgb.Event) string {
	switch ev.(type) {
	case xproto.ConfigureNotifyEvent:
		return "ConfigureNotify"
	case xproto.ExposeEvent:
		return "Expose"
	case xproto.MapNotifyEvent:
		return "MapNotify"
	case xproto.UnmapNotifyEvent:
		return "UnmapNotify"
	case xproto.VisibilityNotifyEvent:
		return "VisibilityNotify"
	case xproto.PropertyNotifyEvent:
		return "PropertyNotify"
	case xproto.ClientMessageEvent:
		return "ClientMessage"
	default:
		return "Event"
	}
}
