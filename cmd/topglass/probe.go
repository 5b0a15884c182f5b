package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/topglass/internal/x11"
)

type probeOutput struct {
	Display       string `json:"display"`
	Screen        int    `json:"screen"`
	Width         uint16 `json:"width"`
	Height        uint16 `json:"height"`
	RootDepth     byte   `json:"root_depth"`
	Extensions    string `json:"extensions,omitempty"`
	ExtensionsErr string `json:"extensions_error,omitempty"`
	ARGBVisual    uint32 `json:"argb_visual,omitempty"`
	HasARGB       bool   `json:"has_argb"`
	Compositor    string `json:"compositor"`
	WindowManager string `json:"window_manager,omitempty"`
	Ready         bool   `json:"ready"`
}

func newProbeOutput(display string, rep x11.ProbeReport) probeOutput {
	out := probeOutput{
		Display:       display,
		Screen:        rep.Screen.Number,
		Width:         rep.Screen.Width,
		Height:        rep.Screen.Height,
		RootDepth:     rep.Screen.RootDepth,
		HasARGB:       rep.HasARGB,
		Compositor:    rep.Compositor.String(),
		WindowManager: rep.WindowManager,
	}
	if rep.ExtensionsErr != nil {
		out.ExtensionsErr = rep.ExtensionsErr.Error()
	} else {
		out.Extensions = rep.Extensions.String()
	}
	if rep.HasARGB {
		out.ARGBVisual = uint32(rep.ARGBVisual)
	}
	out.Ready = rep.ExtensionsErr == nil && rep.HasARGB
	return out
}

func (p probeOutput) print(w io.Writer) {
	fmt.Fprintf(w, "Display:        %s\n", p.Display)
	fmt.Fprintf(w, "Screen:         %d (%dx%d, depth %d)\n", p.Screen, p.Width, p.Height, p.RootDepth)
	if p.ExtensionsErr != "" {
		fmt.Fprintf(w, "Extensions:     unavailable (%s)\n", p.ExtensionsErr)
	} else {
		fmt.Fprintf(w, "Extensions:     %s\n", p.Extensions)
	}
	if p.HasARGB {
		fmt.Fprintf(w, "ARGB visual:    0x%x\n", p.ARGBVisual)
	} else {
		fmt.Fprintln(w, "ARGB visual:    none")
	}
	fmt.Fprintf(w, "Compositor:     %s\n", p.Compositor)
	wm := p.WindowManager
	if wm == "" {
		wm = "(not advertised)"
	}
	fmt.Fprintf(w, "Window manager: %s\n", wm)
	if p.Ready {
		fmt.Fprintln(w, "Overlay:        supported")
	} else {
		fmt.Fprintln(w, "Overlay:        NOT supported")
	}
}

func runProbe(args []string) int {
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/topglass/config.yaml)")
	display := fs.String("display", "", "X display to probe (overrides config and $DISPLAY)")
	jsonOut := fs.Bool("json", false, "Output JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	name := *display
	if name == "" {
		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		name = res.Config.Display
	}

	conn, err := x11.NewConnection(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer conn.Close()

	if name == "" {
		name = os.Getenv("DISPLAY")
	}
	out := newProbeOutput(name, x11.Probe(conn))
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	} else {
		out.print(os.Stdout)
	}
	if !out.Ready {
		return 1
	}
	return 0
}
