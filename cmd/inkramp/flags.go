package main

import (
	"github.com/spf13/cobra"

	"github.com/nebbyJammin/inkramp/internal/config"
)

const (
	downscalingUsage = "Specifies which downscaling mode to use:\n" +
		`    - "respect-aspect-ratio"` + "\n" +
		`    - "ignore-aspect-ratio"` + "\n" +
		`    - "none"`
	aspectUsage    = "Specifies the output aspect ratio to use. Use the inverse of the aspect ratio of the terminal character you are targetting (usually the output aspect ratio will approximately be 2:1 = 2)."
	resamplerUsage = "Interpolation used when downscaling: nearest, box, linear, catmullrom, lanczos, bicubic, mitchell"
	grayscaleUsage = "How colours become luminosity: mean, rec709, rec601, lab"
	widthUsage     = "Specifies the target width. 0 uses the terminal width. May be ignored depending on the downscaling mode."
	heightUsage    = "Specifies the target height. May be ignored depending on the downscaling mode."
	fontUsage      = "Font file used to measure the palette, or a bundled font: gomono, goregular, basic"
	strideUsage    = "Keep every n-th character of the darkness-sorted candidates"
	charsetUsage   = "Candidate characters (default: letters, punctuation, digits and space)"
	rampUsage      = "Explicit darkest-first ramp; skips measuring the font"
)

// flagValues holds the command line overrides. Only flags the user actually set are applied.
type flagValues struct {
	logLevel string
	logFile  string

	width, height int
	aspectRatio   float64
	downscaleMode string
	resampler     string
	grayscale     string
	invert        bool
	timing        bool

	font      string
	fontSize  float64
	fontIndex int
	engine    string

	stride     int
	charset    string
	ramp       string
	minDelta   float64
	degenerate string

	sepia, contrast, brightness, gamma float64
}

func registerFlags(cmd *cobra.Command, configPath *string, v *flagValues) {
	d := config.Default()
	f := cmd.PersistentFlags()

	f.StringVar(configPath, "config", "", "Path to an extra config file, loaded last")
	f.StringVar(&v.logLevel, "log-level", d.LogLevel, "Log level: debug, info, warn, error")
	f.StringVar(&v.logFile, "log-file", d.LogFile, "Write logs to this file instead of stderr")

	f.IntVarP(&v.width, "width", "w", d.Output.Width, widthUsage)
	f.IntVarP(&v.height, "height", "H", d.Output.Height, heightUsage)
	f.Float64VarP(&v.aspectRatio, "aspect-ratio", "a", d.Output.AspectRatio, aspectUsage)
	f.StringVar(&v.downscaleMode, "downscale-mode", d.Output.DownscaleMode, downscalingUsage)
	f.StringVar(&v.resampler, "resampler", d.Output.Resampler, resamplerUsage)
	f.StringVar(&v.grayscale, "grayscale", d.Output.Grayscale, grayscaleUsage)
	f.BoolVarP(&v.invert, "invert", "i", d.Output.Invert, "Swap dark and light, for light terminal backgrounds")
	f.BoolVar(&v.timing, "timing", d.Output.Timing, "Print how long each conversion took")

	f.StringVar(&v.font, "font", d.Font.Path, fontUsage)
	f.Float64Var(&v.fontSize, "font-size", d.Font.Size, "Font size in points")
	f.IntVar(&v.fontIndex, "font-index", d.Font.Index, "Font index inside a .ttc collection")
	f.StringVar(&v.engine, "engine", d.Font.Engine, "Font engine: opentype, freetype")

	f.IntVarP(&v.stride, "stride", "s", d.Palette.Stride, strideUsage)
	f.StringVar(&v.charset, "charset", d.Palette.Charset, charsetUsage)
	f.StringVar(&v.ramp, "ramp", d.Palette.Ramp, rampUsage)
	f.Float64Var(&v.minDelta, "min-delta", d.Palette.MinDelta, "Drop characters whose darkness is closer than this to the previous one")
	f.StringVar(&v.degenerate, "degenerate", d.Palette.Degenerate, "Zero-area glyphs: skip, zero, fail")

	f.Float64Var(&v.sepia, "sepia", d.Filters.Sepia, "Sepia tone strength in percent")
	f.Float64Var(&v.contrast, "contrast", d.Filters.Contrast, "Contrast change in percent")
	f.Float64Var(&v.brightness, "brightness", d.Filters.Brightness, "Brightness change in percent")
	f.Float64Var(&v.gamma, "gamma", d.Filters.Gamma, "Gamma correction (0 or 1 leaves the image unchanged)")
}

// applyFlags copies every flag the user set onto cfg.
func applyFlags(cmd *cobra.Command, v *flagValues, cfg *config.Config) {
	f := cmd.Flags()
	set := func(name string, apply func()) {
		if f.Changed(name) {
			apply()
		}
	}

	set("log-level", func() { cfg.LogLevel = v.logLevel })
	set("log-file", func() { cfg.LogFile = v.logFile })

	set("width", func() { cfg.Output.Width = v.width })
	set("height", func() { cfg.Output.Height = v.height })
	set("aspect-ratio", func() { cfg.Output.AspectRatio = v.aspectRatio })
	set("downscale-mode", func() { cfg.Output.DownscaleMode = v.downscaleMode })
	set("resampler", func() { cfg.Output.Resampler = v.resampler })
	set("grayscale", func() { cfg.Output.Grayscale = v.grayscale })
	set("invert", func() { cfg.Output.Invert = v.invert })
	set("timing", func() { cfg.Output.Timing = v.timing })

	set("font", func() { cfg.Font.Path = v.font })
	set("font-size", func() { cfg.Font.Size = v.fontSize })
	set("font-index", func() { cfg.Font.Index = v.fontIndex })
	set("engine", func() { cfg.Font.Engine = v.engine })

	set("stride", func() { cfg.Palette.Stride = v.stride })
	set("charset", func() { cfg.Palette.Charset = v.charset })
	set("ramp", func() { cfg.Palette.Ramp = v.ramp })
	set("min-delta", func() { cfg.Palette.MinDelta = v.minDelta })
	set("degenerate", func() { cfg.Palette.Degenerate = v.degenerate })

	set("sepia", func() { cfg.Filters.Sepia = v.sepia })
	set("contrast", func() { cfg.Filters.Contrast = v.contrast })
	set("brightness", func() { cfg.Filters.Brightness = v.brightness })
	set("gamma", func() { cfg.Filters.Gamma = v.gamma })
}
