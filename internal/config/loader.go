package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

type Source struct {
	Kind   SourceKind
	File   string
	Line   int
	Column int
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // YAML key -> file position
	File    string            // empty when no file was found
}

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RawConfig mirrors Config with optional fields so that only keys present in
// the file override defaults.
type RawConfig struct {
	Display            *string      `yaml:"display"`
	Margin             *int         `yaml:"margin"`
	FrameRate          *int         `yaml:"frame_rate"`
	StackCheckInterval *int         `yaml:"stack_check_interval"`
	ReassertAbove      *bool        `yaml:"reassert_above"`
	PresentMode        *PresentMode `yaml:"present_mode"`
	Background         *string      `yaml:"background"`
	BackgroundAlpha    *float64     `yaml:"background_alpha"`
	WarnNoCompositor   *bool        `yaml:"warn_no_compositor"`
	LogLevel           *string      `yaml:"log_level"`
}

// Apply overlays set fields onto cfg.
func (r RawConfig) Apply(cfg *Config) {
	if r.Display != nil {
		cfg.Display = *r.Display
	}
	if r.Margin != nil {
		cfg.Margin = *r.Margin
	}
	if r.FrameRate != nil {
		cfg.FrameRate = *r.FrameRate
	}
	if r.StackCheckInterval != nil {
		cfg.StackCheckInterval = *r.StackCheckInterval
	}
	if r.ReassertAbove != nil {
		cfg.ReassertAbove = *r.ReassertAbove
	}
	if r.PresentMode != nil {
		cfg.PresentMode = *r.PresentMode
	}
	if r.Background != nil {
		cfg.Background = *r.Background
	}
	if r.BackgroundAlpha != nil {
		cfg.BackgroundAlpha = *r.BackgroundAlpha
	}
	if r.WarnNoCompositor != nil {
		cfg.WarnNoCompositor = *r.WarnNoCompositor
	}
	if r.LogLevel != nil {
		cfg.LogLevel = *r.LogLevel
	}
}

func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "topglass", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "topglass", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	res, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadFromPath loads path over the defaults. A missing file is not an error.
func LoadFromPath(path string) (*LoadResult, error) {
	cfg := DefaultConfig()
	res := &LoadResult{Config: cfg, Sources: map[string]Source{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return res, nil
		}
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}
	res.File = path

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: failed to parse yaml: %w", path, err)
	}
	res.Sources = collectSources(&doc, path)

	var raw RawConfig
	if err := decodeStrictYAML(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	raw.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, attachSourceContext(err, res.Sources)
	}
	return res, nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

func collectSources(doc *yaml.Node, file string) map[string]Source {
	out := make(map[string]Source)
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return out
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		val := node.Content[i+1]
		out[node.Content[i].Value] = Source{
			Kind:   SourceFile,
			File:   file,
			Line:   val.Line,
			Column: val.Column,
		}
	}
	return out
}

func attachSourceContext(err error, sources map[string]Source) error {
	verr, ok := err.(*ValidationError)
	if !ok || verr == nil || verr.Path == "" {
		return err
	}
	if src, ok := sources[verr.Path]; ok {
		verr.Source = src
	}
	return verr
}
