package present

import "fmt"

// Format is a backend texture format identifier, discovered at runtime.
type Format uint32

// PresentMode selects how presented frames are queued.
type PresentMode int

const (
	PresentModeFifo PresentMode = iota
	PresentModeMailbox
	PresentModeImmediate
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeFifo:
		return "fifo"
	case PresentModeMailbox:
		return "mailbox"
	case PresentModeImmediate:
		return "immediate"
	default:
		return fmt.Sprintf("PresentMode(%d)", int(m))
	}
}

// ParsePresentMode accepts the config names fifo, mailbox and immediate.
func ParsePresentMode(s string) (PresentMode, error) {
	switch s {
	case "fifo", "":
		return PresentModeFifo, nil
	case "mailbox":
		return PresentModeMailbox, nil
	case "immediate":
		return PresentModeImmediate, nil
	default:
		return PresentModeFifo, fmt.Errorf("unknown present mode %q", s)
	}
}

// Color is a non-premultiplied RGBA colour with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// SurfaceConfig is everything needed to (re)configure a surface. Usage is
// always render-attachment.
type SurfaceConfig struct {
	Width       uint32
	Height      uint32
	Format      Format
	PresentMode PresentMode
}

// Backend owns the GPU device, queue and the window's presentable surface.
type Backend interface {
	// Formats lists supported surface formats, preferred first.
	Formats() []Format
	Configure(cfg SurfaceConfig) error
	// Acquire returns the next frame. Errors wrap ErrSurfaceLost,
	// ErrSurfaceOutdated, ErrSurfaceTimeout or ErrOutOfMemory when the
	// failure is one of those.
	Acquire() (Frame, error)
}

// Frame is one acquired target texture. It must be released before the next
// Acquire or the surface stalls.
type Frame interface {
	// Clear records and submits a pass clearing the target to c.
	Clear(c Color) error
	Present()
	Release()
}

// Event is a display event surfaced to the loop.
type Event struct {
	Name    string
	Detail  string
	IsError bool

	// Resize carries new window dimensions.
	Resize        bool
	Width, Height uint32
}

// EventSource polls at most one pending display event without blocking.
type EventSource interface {
	Poll() (Event, bool)
}

// StackReconciler is told once per frame whether an event was pending.
type StackReconciler interface {
	Observe(eventPending bool)
}
