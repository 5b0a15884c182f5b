package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/topglass/internal/config"
	"github.com/1broseidon/topglass/internal/daemon"
	"github.com/1broseidon/topglass/internal/gpu"
	"github.com/1broseidon/topglass/internal/present"
	"github.com/1broseidon/topglass/internal/runtimepath"
	"github.com/1broseidon/topglass/internal/x11"
	"github.com/1broseidon/topglass/internal/x11/xlib"
)

func runOverlay(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/topglass/config.yaml)")
	display := fs.String("display", "", "X display to use (overrides config and $DISPLAY)")
	margin := fs.Int("margin", -1, "Pixels removed from each screen axis (overrides config)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := res.Config
	if *display != "" {
		cfg.Display = *display
	}
	if *margin >= 0 {
		cfg.Margin = *margin
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	logger := newLogger(os.Stderr, level)
	slog.SetDefault(logger)
	if res.File != "" {
		logger.Info("configuration loaded", "path", res.File)
	}

	lockPath, err := runtimepath.LockPath(cfg.Display)
	if err != nil {
		log.Fatalf("Failed to resolve runtime dir: %v", err)
	}
	lock, err := runtimepath.Lock(lockPath)
	if err != nil {
		if errors.Is(err, runtimepath.ErrAlreadyRunning) {
			fmt.Fprintf(os.Stderr, "topglass is already running on this display (%s)\n", lockPath)
			return 1
		}
		log.Fatalf("Failed to take instance lock: %v", err)
	}
	defer lock.Release()

	if err := runSession(cfg, logger); err != nil {
		logger.Error("overlay stopped", "error", err)
		return 1
	}
	return 0
}

// runSession owns every display and GPU resource for one overlay lifetime.
func runSession(cfg *config.Config, logger *slog.Logger) error {
	conn, err := x11.NewConnection(cfg.Display)
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	ext, err := x11.InitializeExtensions(conn)
	if err != nil {
		log.Fatalf("Failed to initialize X extensions: %v", err)
	}
	logger.Debug("extensions negotiated", "versions", ext.String())

	if cfg.WarnNoCompositor {
		if status := x11.DetectCompositor(conn, conn.Screen); status != x11.CompositorActive {
			logger.Warn("no compositing manager detected; the overlay background will not be transparent",
				"compositor", status.String())
		}
	}

	geom, err := x11.OverlayGeometry(conn.Screen, cfg.Margin)
	if err != nil {
		log.Fatalf("Invalid overlay geometry: %v", err)
	}
	ov, err := x11.CreateOverlayWindow(conn, conn.Screen, geom)
	if err != nil {
		log.Fatalf("Failed to create overlay window: %v", err)
	}
	defer func() {
		if err := ov.Destroy(conn); err != nil {
			logger.Warn("overlay teardown failed", "error", err)
		}
		conn.Sync()
	}()
	if err := ov.Map(conn); err != nil {
		log.Fatalf("Failed to map overlay window: %v", err)
	}
	// The GPU surface is created on a second client connection, so the
	// window must exist server-side first.
	conn.Sync()
	logger.Info("overlay mapped",
		"window", fmt.Sprintf("0x%x", uint32(ov.Window)),
		"x", geom.X, "y", geom.Y,
		"width", geom.Width, "height", geom.Height)

	native, err := xlib.Open(cfg.Display)
	if err != nil {
		log.Fatalf("Failed to open native display: %v", err)
	}
	binding, err := x11.NewBinding(native, conn.Screen, ov)
	if err != nil {
		native.Close()
		log.Fatalf("Failed to bind overlay window: %v", err)
	}
	defer binding.Close()

	surface, err := gpu.NewSurface(binding, logger)
	if err != nil {
		log.Fatalf("Failed to create GPU surface: %v", err)
	}
	defer surface.Release()

	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
		Every: cfg.StackCheckInterval,
		Check: func() (bool, error) {
			return x11.RaiseIfNotTop(conn, ov.Root, ov.Window)
		},
		Reassert: reassertFunc(cfg, conn, ov),
		Logger:   logger,
	})

	mode, err := present.ParsePresentMode(string(cfg.PresentMode))
	if err != nil {
		return err
	}
	bg := cfg.BackgroundColor()
	loop := present.New(surface, overlayEvents{conn: conn, window: ov.Window}, reconciler, present.Options{
		Width:         binding.Width,
		Height:        binding.Height,
		PresentMode:   mode,
		Background:    presentColor(bg.R, bg.G, bg.B, bg.A),
		FrameInterval: cfg.FrameInterval(),
		Logger:        logger,
	})
	if err := loop.Initialize(); err != nil {
		log.Fatalf("Failed to configure GPU surface: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	// One immediate pass so the overlay starts on top.
	reconciler.ReconcileNow()
	return loop.Run(ctx)
}

func reassertFunc(cfg *config.Config, conn *x11.Connection, ov *x11.Overlay) func() error {
	if !cfg.ReassertAbove {
		return nil
	}
	return func() error {
		return x11.RequestAlwaysOnTop(conn, ov.Root, ov.Window)
	}
}
