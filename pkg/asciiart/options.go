package asciiart

import (
	"log/slog"

	"github.com/nebbyJammin/inkramp/pkg/palette"
)

// WithOutputAspectRatio specifies desired aspect_ratio of the image. This field is only used if DownscalingMode is set to DownscalingModes.WithRespectToAspectRatio()
func WithOutputAspectRatio(ratio float64) AsciiOption {
	return func(a *AsciiConverter) {
		a.OutputAspectRatio = ratio
	}
}

/*
WithDownscalingMode specifies how the ascii converter should downscale the image. It is recommended to use the default DownscalingModes.WithRespectToAspectRatio(). See TargetSize for what each mode computes.
*/
func WithDownscalingMode(mode DownscalingMode) AsciiOption {
	return func(a *AsciiConverter) {
		a.DownscalingMode = mode
	}
}

/*
WithResampler picks the interpolation used when downscaling. ResampleNearest is the fastest and keeps hard edges; ResampleLanczos and ResampleMitchell give smoother gradients on photographs.
*/
func WithResampler(r Resampler) AsciiOption {
	return func(a *AsciiConverter) {
		a.Resampler = r
	}
}

// WithGrayscaleMode picks how colours are reduced to a luminosity.
func WithGrayscaleMode(m GrayscaleMode) AsciiOption {
	return func(a *AsciiConverter) {
		a.GrayscaleMode = m
	}
}

// WithInvert swaps dark and light characters.
func WithInvert(invert bool) AsciiOption {
	return func(a *AsciiConverter) {
		a.Invert = invert
	}
}

// WithFilters sets the colour adjustments applied before downscaling.
func WithFilters(f Filters) AsciiOption {
	return func(a *AsciiConverter) {
		a.Filters = f
	}
}

/*
WithPalette makes the converter quantize onto p. It also resets any luminosity mapper set before it, so the last of WithPalette and WithLuminosityMapper wins.
*/
func WithPalette(p *palette.Palette) AsciiOption {
	return func(a *AsciiConverter) {
		a.Palette = p
		a.LuminosityMapper = nil
	}
}

/*
WithLuminosityMapper specifies a luminosity mapper to use. A luminosity mapper maps a luminosity value (0-255) onto some character, replacing the palette quantizer.
*/
func WithLuminosityMapper(
	lumMapper func(lumProv LuminosityProvider, x, y int) rune,
) AsciiOption {
	return func(a *AsciiConverter) {
		a.LuminosityMapper = lumMapper
	}
}

func WithByteReserve(bytesPerCharToReserve float64) AsciiOption {
	if bytesPerCharToReserve <= 0 {
		bytesPerCharToReserve = bytesPerCharReserve
	}

	return func(a *AsciiConverter) {
		a.BytesPerCharToReserve = bytesPerCharToReserve
	}
}

// WithLogger logs the downscaling steps at debug level.
func WithLogger(l *slog.Logger) AsciiOption {
	return func(a *AsciiConverter) {
		a.Logger = l
	}
}
