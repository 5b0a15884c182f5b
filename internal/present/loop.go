package present

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
)

// State is the loop lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateConfigured
	StateRendering
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConfigured:
		return "configured"
	case StateRendering:
		return "rendering"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SurfaceState is the most recently applied surface configuration. Width and
// Height are non-zero whenever the loop is configured.
type SurfaceState struct {
	Width       uint32
	Height      uint32
	Format      Format
	PresentMode PresentMode
}

// Options tunes a Loop. Zero values pick defaults.
type Options struct {
	Width, Height uint32
	PresentMode   PresentMode
	Background    Color
	FrameInterval time.Duration
	Logger        *slog.Logger

	// Sleep waits between iterations; it returns early when ctx is done.
	Sleep func(ctx context.Context, d time.Duration)
}

// Stats counts what the loop has done so far.
type Stats struct {
	Frames       uint64
	Skipped      uint64
	Reconfigures uint64
	Events       uint64
}

// Loop renders one frame, drains one event and feeds the stacking reconciler
// on every iteration. It is not safe for concurrent use.
type Loop struct {
	backend    Backend
	events     EventSource
	reconciler StackReconciler

	background Color
	interval   time.Duration
	sleep      func(context.Context, time.Duration)
	logger     *slog.Logger

	state   State
	surface SurfaceState
	stats   Stats
}

// New builds a loop in the Uninitialized state. events and reconciler may be nil.
func New(backend Backend, events EventSource, reconciler StackReconciler, opts Options) *Loop {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 60
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}
	return &Loop{
		backend:    backend,
		events:     events,
		reconciler: reconciler,
		background: opts.Background,
		interval:   opts.FrameInterval,
		sleep:      opts.Sleep,
		logger:     opts.Logger,
		surface: SurfaceState{
			Width:       opts.Width,
			Height:      opts.Height,
			PresentMode: opts.PresentMode,
		},
	}
}

func (l *Loop) State() State          { return l.state }
func (l *Loop) Surface() SurfaceState { return l.surface }
func (l *Loop) Stats() Stats          { return l.stats }

// Initialize picks the backend's preferred format and configures the surface.
func (l *Loop) Initialize() error {
	if l.state != StateUninitialized {
		return fmt.Errorf("initialize: loop is %s", l.state)
	}
	if l.surface.Width == 0 || l.surface.Height == 0 {
		return fmt.Errorf("initialize: invalid surface size %dx%d", l.surface.Width, l.surface.Height)
	}
	formats := l.backend.Formats()
	if len(formats) == 0 {
		return errors.New("initialize: surface reports no supported formats")
	}
	l.surface.Format = formats[0]
	if err := l.configure(); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	l.state = StateConfigured
	l.logger.Debug("surface configured",
		"width", l.surface.Width,
		"height", l.surface.Height,
		"format", uint32(l.surface.Format),
		"present_mode", l.surface.PresentMode.String())
	return nil
}

// Resize reconfigures the surface at w x h. A zero dimension is ignored, as
// happens transiently while a window is minimised.
func (l *Loop) Resize(w, h uint32) error {
	if w == 0 || h == 0 {
		return nil
	}
	switch l.state {
	case StateUninitialized:
		l.surface.Width, l.surface.Height = w, h
		return nil
	case StateTerminated:
		return ErrTerminated
	}
	prevW, prevH := l.surface.Width, l.surface.Height
	l.surface.Width, l.surface.Height = w, h
	if err := l.configure(); err != nil {
		l.surface.Width, l.surface.Height = prevW, prevH
		return fmt.Errorf("resize to %dx%d: %w", w, h, err)
	}
	l.state = StateConfigured
	return nil
}

func (l *Loop) configure() error {
	return l.backend.Configure(SurfaceConfig{
		Width:       l.surface.Width,
		Height:      l.surface.Height,
		Format:      l.surface.Format,
		PresentMode: l.surface.PresentMode,
	})
}

// RenderFrame acquires, clears, presents and releases one frame. Only an
// out-of-memory acquisition is fatal; every other failure is recovered from
// and reported as nil.
func (l *Loop) RenderFrame() error {
	switch l.state {
	case StateUninitialized:
		return ErrNotConfigured
	case StateTerminated:
		return ErrTerminated
	}

	frame, err := l.backend.Acquire()
	if err != nil {
		return l.recoverAcquire(err)
	}
	defer frame.Release()

	l.state = StateRendering
	if err := frame.Clear(l.background); err != nil {
		l.stats.Skipped++
		l.logger.Warn("frame encode failed", "error", err)
		return nil
	}
	frame.Present()
	l.stats.Frames++
	return nil
}

func (l *Loop) recoverAcquire(err error) error {
	l.stats.Skipped++
	switch Classify(err) {
	case OutcomeReconfigure:
		l.logger.Debug("surface needs reconfigure", "error", err)
		l.stats.Reconfigures++
		if cerr := l.configure(); cerr != nil {
			l.logger.Warn("surface reconfigure failed", "error", cerr)
			return nil
		}
		l.state = StateConfigured
	case OutcomeSkip:
		l.logger.Warn("surface acquire timed out", "error", err)
	case OutcomeTerminate:
		l.state = StateTerminated
		l.logger.Error("out of memory acquiring surface texture", "error", err)
		return terminated(err)
	default:
		l.logger.Warn("surface acquire failed", "error", err)
	}
	return nil
}

// Step runs one iteration: render, then poll at most one event.
func (l *Loop) Step() error {
	if err := l.RenderFrame(); err != nil {
		return err
	}

	var ev Event
	pending := false
	if l.events != nil {
		ev, pending = l.events.Poll()
	}
	if pending {
		l.stats.Events++
		l.handleEvent(ev)
	}
	if l.reconciler != nil {
		l.reconciler.Observe(pending)
	}
	return nil
}

func (l *Loop) handleEvent(ev Event) {
	if ev.IsError {
		l.logger.Warn("x11 error", "name", ev.Name, "detail", ev.Detail)
		return
	}
	l.logger.Debug("event", "name", ev.Name, "detail", ev.Detail)
	if !ev.Resize {
		return
	}
	if ev.Width == l.surface.Width && ev.Height == l.surface.Height {
		return
	}
	if err := l.Resize(ev.Width, ev.Height); err != nil {
		l.logger.Warn("resize failed", "error", err)
	}
}

// Run steps until ctx is done or the loop terminates. Cancellation is a clean
// shutdown and returns nil.
func (l *Loop) Run(ctx context.Context) error {
	if l.state == StateUninitialized {
		if err := l.Initialize(); err != nil {
			return err
		}
	}
	start := time.Now()
	defer func() {
		l.logger.Info("presentation loop stopped",
			"frames", humanize.Comma(int64(l.stats.Frames)),
			"skipped", humanize.Comma(int64(l.stats.Skipped)),
			"reconfigures", l.stats.Reconfigures,
			"uptime", time.Since(start).Round(time.Second).String())
	}()

	for {
		if ctx.Err() != nil {
			l.state = StateTerminated
			return nil
		}
		if err := l.Step(); err != nil {
			l.state = StateTerminated
			return err
		}
		l.sleep(ctx, l.interval)
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
