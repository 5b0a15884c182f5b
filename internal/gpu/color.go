package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/1broseidon/topglass/internal/present"
)

var presentModes = map[present.PresentMode]wgpu.PresentMode{
	present.PresentModeFifo:      wgpu.PresentModeFifo,
	present.PresentModeMailbox:   wgpu.PresentModeMailbox,
	present.PresentModeImmediate: wgpu.PresentModeImmediate,
}

// pickPresentMode falls back to FIFO, the only mode every surface supports.
func pickPresentMode(want present.PresentMode, supported []wgpu.PresentMode) wgpu.PresentMode {
	mode, ok := presentModes[want]
	if !ok {
		return wgpu.PresentModeFifo
	}
	for _, m := range supported {
		if m == mode {
			return mode
		}
	}
	return wgpu.PresentModeFifo
}

// pickAlphaMode prefers a compositing mode that honours per-pixel alpha.
func pickAlphaMode(supported []wgpu.CompositeAlphaMode) wgpu.CompositeAlphaMode {
	for _, want := range []wgpu.CompositeAlphaMode{
		wgpu.CompositeAlphaModePremultiplied,
		wgpu.CompositeAlphaModeUnpremultiplied,
	} {
		for _, m := range supported {
			if m == want {
				return m
			}
		}
	}
	if len(supported) > 0 {
		return supported[0]
	}
	return wgpu.CompositeAlphaModeAuto
}

// clearValue converts c for the surface's alpha mode.
func clearValue(c present.Color, mode wgpu.CompositeAlphaMode) wgpu.Color {
	if mode == wgpu.CompositeAlphaModePremultiplied {
		return wgpu.Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
	}
	return wgpu.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
