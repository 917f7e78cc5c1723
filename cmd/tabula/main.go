// Command tabula renders a scene file (.hcl or .js) to a PNG image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"

	"tabula/pkg/render"
	"tabula/pkg/resource"
	"tabula/pkg/text"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

type options struct {
	width, height int
	output        string
	format        string
	dump          bool
	grid          bool
	verbose       bool
	fonts         string
	fontSize      float64
	background    string
}

func parseFlags(args []string) (*options, string, error) {
	fs := flag.NewFlagSet("tabula", flag.ContinueOnError)
	opts := &options{}
	fs.IntVar(&opts.width, "w", 0, "canvas width in pixels (0 = scene width)")
	fs.IntVar(&opts.height, "h", 0, "canvas height in pixels (0 = scene height)")
	fs.StringVar(&opts.output, "o", "output.png", "output PNG file path")
	fs.StringVar(&opts.format, "format", "", "scene format: hcl or js (default: from extension)")
	fs.BoolVar(&opts.dump, "dump", false, "print slot allocations and child cells")
	fs.BoolVar(&opts.grid, "grid", false, "outline table cells")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	fs.StringVar(&opts.fonts, "fonts", "", "TTF file for text (default: builtin face)")
	fs.Float64Var(&opts.fontSize, "size", text.DefaultSize, "font size in points")
	fs.StringVar(&opts.background, "bg", "", "background colour, overriding the scene's")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: tabula [flags] <scene>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, "", errUsage
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return nil, "", errUsage
	}
	return opts, fs.Arg(0), nil
}

func run(args []string, stdout io.Writer) error {
	opts, input, err := parseFlags(args)
	if err != nil {
		return err
	}
	setupLogging(opts.verbose)

	src, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading scene: %w", err)
	}
	var fonts text.FontConfig
	if opts.fonts != "" {
		fonts = text.FontConfigFromPath(opts.fonts, opts.fontSize)
	}
	r := resource.NewSceneRenderer(fonts)
	r.SetFormat(resource.Format(opts.format))
	r.DebugOverlay = opts.grid

	s, err := r.Load(input, src)
	if err != nil {
		return err
	}
	if opts.width > 0 {
		s.Width = opts.width
	}
	if opts.height > 0 {
		s.Height = opts.height
	}
	if opts.background != "" {
		if _, ok := render.ParseColor(opts.background); !ok {
			slog.Warn("ignoring unknown background colour", "bg", opts.background)
		} else {
			s.Background = opts.background
		}
	}
	w, h, err := r.CanvasSize(s)
	if err != nil {
		return err
	}
	slog.Debug("rendering scene", "scene", input, "width", w, "height", h)

	target := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := r.Paint(s, target); err != nil {
		return err
	}
	if opts.dump {
		if err := dump(stdout, s); err != nil {
			return fmt.Errorf("dumping slots: %w", err)
		}
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, target); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	slog.Info("saved", "output", opts.output, "width", w, "height", h)
	return nil
}

// setupLogging routes slog and the library tracers to stderr.
func setupLogging(verbose bool) {
	level, traceLevel := slog.LevelInfo, "Error"
	if verbose {
		level, traceLevel = slog.LevelDebug, "Debug"
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{"tracing.adapter": "go"}
	for _, key := range []string{"tabula.layout", "tabula.render", "tabula.scene", "tabula.js"} {
		conf["trace."+key] = traceLevel
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		slog.Warn("tracing not configured", "error", err)
		return
	}
	tracing.SetTraceSelector(trace2go.Selector())
}
