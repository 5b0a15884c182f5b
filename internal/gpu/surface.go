// Package gpu implements the presentation backend on WebGPU (wgpu-native),
// attached to the overlay through an Xlib surface descriptor.
package gpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/1broseidon/topglass/internal/present"
	"github.com/1broseidon/topglass/internal/x11"
)

// Surface owns the instance, adapter, device and queue for one overlay
// window. It implements present.Backend.
type Surface struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	caps      wgpu.SurfaceCapabilities
	alphaMode wgpu.CompositeAlphaMode
	logger    *slog.Logger
}

// NewSurface creates a GPU surface for the bound window and requests an
// adapter able to present to it. The surface is not configured yet.
func NewSurface(b *x11.Binding, logger *slog.Logger) (*Surface, error) {
	if b == nil || b.Display == nil || b.Display.Pointer() == nil {
		return nil, errors.New("gpu: window binding has no native display")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Surface{logger: logger}
	s.instance = wgpu.CreateInstance(nil)
	s.surface = s.instance.CreateSurface(&wgpu.SurfaceDescriptor{
		Label: "topglass overlay",
		XlibWindow: &wgpu.SurfaceDescriptorFromXlibWindow{
			Display: b.Display.Pointer(),
			Window:  b.Window,
		},
	})
	if s.surface == nil {
		s.Release()
		return nil, errors.New("gpu: failed to create surface for overlay window")
	}

	adapter, err := s.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: s.surface,
	})
	if err != nil {
		s.Release()
		return nil, fmt.Errorf("gpu: request adapter: %w", err)
	}
	s.adapter = adapter

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		s.Release()
		return nil, fmt.Errorf("gpu: request device: %w", err)
	}
	s.device = device
	s.queue = device.GetQueue()

	s.caps = s.surface.GetCapabilities(adapter)
	s.alphaMode = pickAlphaMode(s.caps.AlphaModes)
	logger.Debug("gpu surface created",
		"formats", len(s.caps.Formats),
		"present_modes", len(s.caps.PresentModes),
		"alpha_mode", s.alphaMode)
	return s, nil
}

// Formats lists the surface's formats, preferred first.
func (s *Surface) Formats() []present.Format {
	out := make([]present.Format, 0, len(s.caps.Formats))
	for _, f := range s.caps.Formats {
		out = append(out, present.Format(f))
	}
	return out
}

// Configure (re)configures the surface for render-attachment use.
func (s *Surface) Configure(cfg present.SurfaceConfig) error {
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("gpu: invalid surface size %dx%d", cfg.Width, cfg.Height)
	}
	mode := pickPresentMode(cfg.PresentMode, s.caps.PresentModes)
	if mode != presentModes[cfg.PresentMode] {
		s.logger.Warn("present mode unsupported, using fifo", "requested", cfg.PresentMode.String())
	}
	s.surface.Configure(s.adapter, s.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      wgpu.TextureFormat(cfg.Format),
		Width:       cfg.Width,
		Height:      cfg.Height,
		PresentMode: mode,
		AlphaMode:   s.alphaMode,
	})
	return nil
}

// Acquire fetches the surface's current texture.
func (s *Surface) Acquire() (present.Frame, error) {
	tex, err := s.surface.GetCurrentTexture()
	if err != nil {
		return nil, acquireError(err)
	}
	if err := checkSurfaceTexture(tex); err != nil {
		return nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("gpu: create texture view: %w", err)
	}
	return &frame{surface: s, view: view}, nil
}

// Release frees GPU objects in reverse creation order.
func (s *Surface) Release() {
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.device != nil {
		s.device.Release()
		s.device = nil
	}
	if s.adapter != nil {
		s.adapter.Release()
		s.adapter = nil
	}
	if s.surface != nil {
		s.surface.Release()
		s.surface = nil
	}
	if s.instance != nil {
		s.instance.Release()
		s.instance = nil
	}
}

// frame holds only the view. The surface texture is owned by the surface:
// it is handed out without a device reference, so releasing it would drop
// one the device still needs.
type frame struct {
	surface *Surface
	view    *wgpu.TextureView
}

// Clear records a single clear pass on the frame's view and submits it.
func (f *frame) Clear(c present.Color) error {
	s := f.surface
	encoder, err := s.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "overlay frame"})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       f.view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: clearValue(c, s.alphaMode),
		}},
	})
	err = pass.End()
	pass.Release() // must happen before Finish
	if err != nil {
		return fmt.Errorf("gpu: end render pass: %w", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("gpu: finish command buffer: %w", err)
	}
	defer cmd.Release()
	s.queue.Submit(cmd)
	return nil
}

func (f *frame) Present() {
	f.surface.surface.Present()
}

func (f *frame) Release() {
	if f.view != nil {
		f.view.Release()
		f.view = nil
	}
}
