package config

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// PresentMode selects how frames are queued for display.
type PresentMode string

const (
	PresentModeFifo      PresentMode = "fifo"      // Vsync, never tears.
	PresentModeMailbox   PresentMode = "mailbox"   // Vsync, latest frame wins.
	PresentModeImmediate PresentMode = "immediate" // No vsync, may tear.
)

// Config is the effective overlay configuration.
type Config struct {
	// Display overrides $DISPLAY when non-empty.
	Display string `yaml:"display"`

	// Margin is subtracted from each screen axis; the overlay is centred in
	// what remains.
	Margin int `yaml:"margin"`

	FrameRate          int         `yaml:"frame_rate"`
	StackCheckInterval int         `yaml:"stack_check_interval"` // idle frames between restack checks
	ReassertAbove      bool        `yaml:"reassert_above"`
	PresentMode        PresentMode `yaml:"present_mode"`

	Background      string  `yaml:"background"`       // "#rrggbb"
	BackgroundAlpha float64 `yaml:"background_alpha"` // 0-1

	WarnNoCompositor bool   `yaml:"warn_no_compositor"`
	LogLevel         string `yaml:"log_level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Display:            "",
		Margin:             200,
		FrameRate:          60,
		StackCheckInterval: 30,
		ReassertAbove:      false,
		PresentMode:        PresentModeFifo,
		Background:         "#331a4d",
		BackgroundAlpha:    0.2,
		WarnNoCompositor:   true,
		LogLevel:           "info",
	}
}

// Validate checks value ranges. The returned error is a *ValidationError.
func (c *Config) Validate() error {
	if c.Margin < 0 {
		return &ValidationError{Path: "margin", Err: fmt.Errorf("margin must be >= 0")}
	}
	if c.FrameRate < 1 || c.FrameRate > 1000 {
		return &ValidationError{Path: "frame_rate", Err: fmt.Errorf("frame_rate must be between 1 and 1000")}
	}
	if c.StackCheckInterval < 1 {
		return &ValidationError{Path: "stack_check_interval", Err: fmt.Errorf("stack_check_interval must be >= 1")}
	}
	switch c.PresentMode {
	case PresentModeFifo, PresentModeMailbox, PresentModeImmediate:
	default:
		return &ValidationError{Path: "present_mode", Err: fmt.Errorf("present_mode must be one of: fifo, mailbox, immediate")}
	}
	if _, err := colorful.Hex(c.Background); err != nil {
		return &ValidationError{Path: "background", Err: fmt.Errorf("background must be a #rrggbb color: %w", err)}
	}
	if c.BackgroundAlpha < 0 || c.BackgroundAlpha > 1 {
		return &ValidationError{Path: "background_alpha", Err: fmt.Errorf("background_alpha must be between 0 and 1")}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return &ValidationError{Path: "log_level", Err: err}
	}
	return nil
}

// FrameInterval is the fixed sleep between loop iterations.
func (c *Config) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FrameRate)
}

// BackgroundColor returns the clear colour as non-premultiplied RGBA.
func (c *Config) BackgroundColor() color.NRGBA {
	col, err := colorful.Hex(c.Background)
	if err != nil {
		col = colorful.Color{}
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(c.BackgroundAlpha*255 + 0.5)}
}

// ParseLogLevel maps config level names onto slog levels.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level must be one of: debug, info, warning, error")
	}
}

// Marshal renders the config as YAML, as printed by `topglass config print`.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
