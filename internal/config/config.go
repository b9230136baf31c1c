package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/gobwas/glob"
	koanftoml "github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/nebbyJammin/inkramp/internal/logger"
	"github.com/nebbyJammin/inkramp/pkg/asciiart"
	"github.com/nebbyJammin/inkramp/pkg/glyph"
	"github.com/nebbyJammin/inkramp/pkg/palette"
)

const (
	appName        = "inkramp"
	configFileName = "config.toml"
	localFileName  = appName + ".toml"
)

type Config struct {
	LogLevel string `koanf:"log_level" toml:"log_level"` // debug, info, warn, error
	LogFile  string `koanf:"log_file" toml:"log_file"`   // empty means stderr

	Font    FontConfig    `koanf:"font" toml:"font"`
	Palette PaletteConfig `koanf:"palette" toml:"palette"`
	Output  OutputConfig  `koanf:"output" toml:"output"`
	Filters FiltersConfig `koanf:"filters" toml:"filters"`
	Batch   BatchConfig   `koanf:"batch" toml:"batch"`

	// Sources lists the config files that were loaded, in load order.
	Sources []string `koanf:"-" toml:"-"`
}

// FontConfig selects the font the palette is measured with.
type FontConfig struct {
	Path      string  `koanf:"path" toml:"path"`           // file path or bundled name (gomono, goregular, basic); empty means gomono
	Size      float64 `koanf:"size" toml:"size"`           // points
	DPI       float64 `koanf:"dpi" toml:"dpi"`
	Index     int     `koanf:"index" toml:"index"`         // font index inside a .ttc collection
	Engine    string  `koanf:"engine" toml:"engine"`       // "opentype" or "freetype"
	Threshold int     `koanf:"threshold" toml:"threshold"` // alpha (1-255) from which a pixel counts as ink
}

// PaletteConfig holds the palette builder settings.
type PaletteConfig struct {
	Charset    string  `koanf:"charset" toml:"charset"`       // candidate characters, empty means letters, punctuation, digits and space
	Ramp       string  `koanf:"ramp" toml:"ramp"`             // explicit darkest-first ramp, skips measuring
	Stride     int     `koanf:"stride" toml:"stride"`         // keep every stride-th character
	MinDelta   float64 `koanf:"min_delta" toml:"min_delta"`   // drop characters closer than this to the previous one
	Degenerate string  `koanf:"degenerate" toml:"degenerate"` // "skip", "zero" or "fail"
}

// OutputConfig holds the conversion settings.
type OutputConfig struct {
	Width         int     `koanf:"width" toml:"width"` // 0 means terminal width
	Height        int     `koanf:"height" toml:"height"`
	AspectRatio   float64 `koanf:"aspect_ratio" toml:"aspect_ratio"`
	DownscaleMode string  `koanf:"downscale_mode" toml:"downscale_mode"`
	Resampler     string  `koanf:"resampler" toml:"resampler"`
	Grayscale     string  `koanf:"grayscale" toml:"grayscale"`
	Invert        bool    `koanf:"invert" toml:"invert"`
	Timing        bool    `koanf:"timing" toml:"timing"` // print conversion time after each image
}

// FiltersConfig holds the colour adjustments applied before downscaling.
type FiltersConfig struct {
	Sepia      float64 `koanf:"sepia" toml:"sepia"`
	Contrast   float64 `koanf:"contrast" toml:"contrast"`
	Brightness float64 `koanf:"brightness" toml:"brightness"`
	Gamma      float64 `koanf:"gamma" toml:"gamma"`
}

// BatchConfig holds the directory conversion settings.
type BatchConfig struct {
	Include []string `koanf:"include" toml:"include"` // glob patterns matched against file names
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Font: FontConfig{
			Size:      glyph.DefaultSize,
			DPI:       glyph.DefaultDPI,
			Engine:    string(glyph.EngineOpenType),
			Threshold: glyph.DefaultThreshold,
		},
		Palette: PaletteConfig{
			Stride:     palette.DefaultStride,
			Degenerate: palette.DegenerateSkip.String(),
		},
		Output: OutputConfig{
			Width:         100,
			Height:        100,
			AspectRatio:   2,
			DownscaleMode: asciiart.DownscalingModes.WithRespectToAspectRatio().String(),
			Resampler:     string(asciiart.ResampleNearest),
			Grayscale:     asciiart.GrayscaleMean.String(),
		},
		Batch: BatchConfig{
			Include: []string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.bmp", "*.webp"},
		},
	}
}

/*
Load reads the config files in order of priority (last wins):

 1. $XDG_CONFIG_HOME/inkramp/config.toml
 2. ./inkramp.toml
 3. explicit, when not empty

Missing files in the search path are skipped; a missing explicit file is an error. Keys that no file sets keep their Default value.
*/
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")
	var sources []string

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), koanftoml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
			sources = append(sources, path)
		}
	}

	if explicit != "" {
		explicit = expandPath(explicit)
		if err := k.Load(file.Provider(explicit), koanftoml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", explicit, err)
		}
		sources = append(sources, explicit)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Sources = sources
	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.Font.Path = expandPath(cfg.Font.Path)

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. ~/.config/inkramp/config.toml
		filepath.Join(xdg.ConfigHome, appName, configFileName),
		// 2. ./inkramp.toml (pwd)
		localFileName,
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if _, ok := logger.LevelFromString(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}

	_, err := glyph.ParseEngine(c.Font.Engine)
	check(err)
	if c.Font.Size <= 0 {
		errs = append(errs, fmt.Errorf("font size must be positive, got %v", c.Font.Size))
	}
	if c.Font.DPI <= 0 {
		errs = append(errs, fmt.Errorf("font dpi must be positive, got %v", c.Font.DPI))
	}
	if c.Font.Index < 0 {
		errs = append(errs, fmt.Errorf("font index must be >= 0, got %d", c.Font.Index))
	}
	if c.Font.Threshold < 1 || c.Font.Threshold > 255 {
		errs = append(errs, fmt.Errorf("font threshold must be in [1, 255], got %d", c.Font.Threshold))
	}

	if c.Palette.Stride < 1 {
		errs = append(errs, fmt.Errorf("palette stride must be positive, got %d", c.Palette.Stride))
	}
	if c.Palette.MinDelta < 0 {
		errs = append(errs, fmt.Errorf("palette min_delta must be >= 0, got %v", c.Palette.MinDelta))
	}
	if c.Palette.Charset != "" && c.Palette.Ramp != "" {
		errs = append(errs, errors.New("palette charset and ramp are mutually exclusive"))
	}
	_, err = palette.ParseDegeneratePolicy(c.Palette.Degenerate)
	check(err)

	if c.Output.Width < 0 || c.Output.Height < 0 {
		errs = append(errs, fmt.Errorf("output size must be >= 0, got %dx%d", c.Output.Width, c.Output.Height))
	}
	if c.Output.AspectRatio <= 0 {
		errs = append(errs, fmt.Errorf("output aspect_ratio must be positive, got %v", c.Output.AspectRatio))
	}
	_, err = asciiart.ParseDownscalingMode(c.Output.DownscaleMode)
	check(err)
	_, err = asciiart.ParseResampler(c.Output.Resampler)
	check(err)
	_, err = asciiart.ParseGrayscaleMode(c.Output.Grayscale)
	check(err)

	check(c.AsciiFilters().Validate())

	for _, pattern := range c.Batch.Include {
		if _, err := glob.Compile(pattern); err != nil {
			errs = append(errs, fmt.Errorf("batch include %q: %w", pattern, err))
		}
	}

	return errors.Join(errs...)
}

// FontSpec converts the font section into a glyph.FontSpec.
func (c *Config) FontSpec() (glyph.FontSpec, error) {
	engine, err := glyph.ParseEngine(c.Font.Engine)
	if err != nil {
		return glyph.FontSpec{}, err
	}

	return glyph.FontSpec{
		Path:      c.Font.Path,
		Size:      c.Font.Size,
		DPI:       c.Font.DPI,
		Index:     c.Font.Index,
		Engine:    engine,
		Threshold: uint8(c.Font.Threshold),
	}, nil
}

// AsciiFilters converts the filters section.
func (c *Config) AsciiFilters() asciiart.Filters {
	return asciiart.Filters{
		Sepia:      float32(c.Filters.Sepia),
		Contrast:   float32(c.Filters.Contrast),
		Brightness: float32(c.Filters.Brightness),
		Gamma:      float32(c.Filters.Gamma),
	}
}

// ConverterOptions converts the output and filters sections into converter options. The palette is not included.
func (c *Config) ConverterOptions() ([]asciiart.AsciiOption, error) {
	mode, err := asciiart.ParseDownscalingMode(c.Output.DownscaleMode)
	if err != nil {
		return nil, err
	}
	resampler, err := asciiart.ParseResampler(c.Output.Resampler)
	if err != nil {
		return nil, err
	}
	gray, err := asciiart.ParseGrayscaleMode(c.Output.Grayscale)
	if err != nil {
		return nil, err
	}

	return []asciiart.AsciiOption{
		asciiart.WithOutputAspectRatio(c.Output.AspectRatio),
		asciiart.WithDownscalingMode(mode),
		asciiart.WithResampler(resampler),
		asciiart.WithGrayscaleMode(gray),
		asciiart.WithInvert(c.Output.Invert),
		asciiart.WithFilters(c.AsciiFilters()),
	}, nil
}

// PaletteOptions converts the palette section into builder options.
func (c *Config) PaletteOptions() ([]palette.Option, error) {
	policy, err := palette.ParseDegeneratePolicy(c.Palette.Degenerate)
	if err != nil {
		return nil, err
	}

	return []palette.Option{
		palette.WithDegeneratePolicy(policy),
		palette.WithMinDelta(c.Palette.MinDelta),
	}, nil
}

// Candidates returns the configured candidate characters.
func (c *Config) Candidates() []rune {
	if c.Palette.Charset == "" {
		return palette.DefaultCandidates()
	}
	return []rune(c.Palette.Charset)
}

// WriteTOML writes the configuration as TOML.
func (c *Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
