package main

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/topglass/internal/present"
	"github.com/1broseidon/topglass/internal/x11"
)

// eventPoller is the part of x11.Connection the loop polls.
type eventPoller interface {
	PollEvent(watch xproto.Window) (x11.Event, bool)
}

// overlayEvents adapts the display's event queue to present.EventSource.
type overlayEvents struct {
	conn   eventPoller
	window xproto.Window
}

func (e overlayEvents) Poll() (present.Event, bool) {
	ev, ok := e.conn.PollEvent(e.window)
	if !ok {
		return present.Event{}, false
	}
	return toPresentEvent(ev), true
}

func toPresentEvent(ev x11.Event) present.Event {
	return present.Event{
		Name:    ev.Name,
		Detail:  ev.Detail,
		IsError: ev.IsError,
		Resize:  ev.Configure,
		Width:   uint32(ev.Width),
		Height:  uint32(ev.Height),
	}
}

// presentColor converts the configured background to the loop's clear colour.
func presentColor(r, g, b, a uint8) present.Color {
	return present.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}
