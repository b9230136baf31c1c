package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nebbyJammin/inkramp/internal/config"
	"github.com/nebbyJammin/inkramp/internal/logger"
	"github.com/nebbyJammin/inkramp/pkg/asciiart"
	"github.com/nebbyJammin/inkramp/pkg/palette"
)

const fallbackWidth = 100

// app carries the state shared by every subcommand once the configuration is resolved.
type app struct {
	configPath string
	flags      flagValues

	cfg       *config.Config
	log       *slog.Logger
	logCloser io.Closer
}

// setup loads the config files, applies the flags, validates the result and starts logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	applyFlags(cmd, &a.flags, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	closer, err := logger.Init(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = slog.Default()
	a.logCloser = closer

	a.log.Debug("configuration loaded", "sources", cfg.Sources)

	return nil
}

func (a *app) teardown() {
	if a.logCloser != nil {
		a.logCloser.Close() // nolint: errcheck
		a.logCloser = nil
	}
}

// buildPalette measures the configured font, or takes the explicit ramp as is.
func (a *app) buildPalette() (*palette.Palette, error) {
	if a.cfg.Palette.Ramp != "" {
		return palette.FromRamp(a.cfg.Palette.Ramp)
	}

	spec, err := a.cfg.FontSpec()
	if err != nil {
		return nil, err
	}

	opts, err := a.cfg.PaletteOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, palette.WithLogger(a.log))

	p, err := palette.BuildFont(spec, a.cfg.Candidates(), a.cfg.Palette.Stride, opts...)
	if err != nil {
		return nil, fmt.Errorf("build palette: %w", err)
	}

	a.log.Debug("using palette", "ramp", p.String(), "font", spec.Path)

	return p, nil
}

// converter builds the palette and the converter. Any failure here aborts before a single image is read.
func (a *app) converter() (*asciiart.AsciiConverter, error) {
	p, err := a.buildPalette()
	if err != nil {
		return nil, err
	}

	opts, err := a.cfg.ConverterOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, asciiart.WithPalette(p), asciiart.WithLogger(a.log))

	return asciiart.New(opts...), nil
}

// targetSize resolves a width of 0 to the terminal width.
func (a *app) targetSize() (int, int) {
	width, height := a.cfg.Output.Width, a.cfg.Output.Height
	if width > 0 {
		return width, height
	}

	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w, height
	}

	a.log.Debug("stdout is not a terminal, using fallback width", "width", fallbackWidth)
	return fallbackWidth, height
}
