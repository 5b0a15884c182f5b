package main

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/topglass/internal/x11"
)

type stubPoller struct {
	events []x11.Event
	watch  []xproto.Window
}

func (s *stubPoller) PollEvent(watch xproto.Window) (x11.Event, bool) {
	s.watch = append(s.watch, watch)
	if len(s.events) == 0 {
		return x11.Event{}, false
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, true
}

func TestOverlayEvents_TranslatesConfigure(t *testing.T) {
	p := &stubPoller{events: []x11.Event{
		{Name: "ConfigureNotify", Configure: true, Width: 1024, Height: 768},
	}}
	src := overlayEvents{conn: p, window: 0x400001}

	ev, ok := src.Poll()
	require.True(t, ok)
	assert.True(t, ev.Resize)
	assert.Equal(t, uint32(1024), ev.Width)
	assert.Equal(t, uint32(768), ev.Height)

	_, ok = src.Poll()
	assert.False(t, ok, "expected empty queue")
	assert.Equal(t, []xproto.Window{0x400001, 0x400001}, p.watch)
}

func TestOverlayEvents_ErrorPassesThrough(t *testing.T) {
	p := &stubPoller{events: []x11.Event{{Name: "Error", Detail: "BadWindow", IsError: true}}}
	ev, ok := overlayEvents{conn: p}.Poll()
	require.True(t, ok)
	assert.True(t, ev.IsError)
	assert.False(t, ev.Resize)
}

func TestPresentColor(t *testing.T) {
	c := presentColor(255, 0, 51, 51)
	assert.Equal(t, 1.0, c.R)
	assert.Equal(t, 0.0, c.G)
	assert.InDelta(t, 0.2, c.B, 1e-9)
	assert.InDelta(t, 0.2, c.A, 1e-9)
}
