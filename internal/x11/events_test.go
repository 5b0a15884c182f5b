package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
)

func TestTranslateEvent_Empty(t *testing.T) {
	_, ok := translateEvent(nil, nil, 0x400)
	assert.False(t, ok)
}

func TestTranslateEvent_ConfigureOnWatchedWindow(t *testing.T) {
	ev, ok := translateEvent(xproto.ConfigureNotifyEvent{Window: 0x400, Width: 640, Height: 480}, nil, 0x400)
	assert.True(t, ok)
	assert.True(t, ev.Configure)
	assert.Equal(t, uint16(640), ev.Width)
	assert.Equal(t, uint16(480), ev.Height)
	assert.Equal(t, "ConfigureNotify", ev.Name)
}

func TestTranslateEvent_ConfigureOnOtherWindow(t *testing.T) {
	ev, ok := translateEvent(xproto.ConfigureNotifyEvent{Window: 0x401, Width: 1, Height: 1}, nil, 0x400)
	assert.True(t, ok)
	assert.False(t, ev.Configure)
}

func TestTranslateEvent_Error(t *testing.T) {
	ev, ok := translateEvent(nil, xproto.WindowError{BadValue: 0x400}, 0x400)
	assert.True(t, ok)
	assert.True(t, ev.IsError)
}
