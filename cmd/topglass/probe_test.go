package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1broseidon/topglass/internal/x11"
)

func TestNewProbeOutput_Ready(t *testing.T) {
	rep := x11.ProbeReport{
		Extensions: x11.Extensions{ShapeMajor: 1, ShapeMinor: 1, XFixesMajor: 5},
		Screen:     x11.Screen{Number: 0, Width: 1920, Height: 1080, RootDepth: 24},
		ARGBVisual: 0x21,
		HasARGB:    true,
		Compositor: x11.CompositorActive,
	}
	out := newProbeOutput(":0", rep)
	assert.True(t, out.Ready)
	assert.Equal(t, uint32(0x21), out.ARGBVisual)
	assert.NotEmpty(t, out.Extensions)

	var buf bytes.Buffer
	out.print(&buf)
	assert.Contains(t, buf.String(), "Overlay:        supported")
	assert.Contains(t, buf.String(), "(not advertised)")
}

func TestNewProbeOutput_NotReady(t *testing.T) {
	rep := x11.ProbeReport{
		ExtensionsErr: errors.New("no SHAPE"),
		Compositor:    x11.CompositorInactive,
	}
	out := newProbeOutput(":1", rep)
	assert.False(t, out.Ready)
	assert.Equal(t, "no SHAPE", out.ExtensionsErr)
	assert.Empty(t, out.Extensions)
}
