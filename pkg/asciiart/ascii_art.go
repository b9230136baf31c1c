package asciiart

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nebbyJammin/inkramp/pkg/palette"
)

const (
	bytesPerCharReserve = 1 // palettes built from ascii candidates are one byte per character
	defaultAspectRatio  = 2
)

type AsciiConverter struct {
	// OutputAspectRatio is the aspect ratio of the resulting image (char_x / char_y).
	// In most cases, a terminal character's height is twice its width.
	// So the resulting image must be 2:1 ratio to compensate for the taller height
	OutputAspectRatio float64

	// DownscalingMode flags to the converter how to downscale the image before any conversion happens. By default, it will ALWAYS downscale with respect to the aspect ratio (DownscalingModes.WithRespectToAspectRatio() [0])
	DownscalingMode DownscalingMode

	// Resampler is the interpolation used by DownscaleImage.
	Resampler Resampler

	// GrayscaleMode decides how colours are reduced to a luminosity.
	GrayscaleMode GrayscaleMode

	// Invert swaps dark and light, for dark text on a light background.
	Invert bool

	// Filters are applied to the full size image, before downscaling.
	Filters Filters

	// Palette provides the characters. When nil, palette.Default() is used.
	Palette *palette.Palette

	// The function that converts a luminosity value (0-255) to a rune. When nil, the palette quantizer is used.
	LuminosityMapper func(lumProv LuminosityProvider, x, y int) rune

	// BytesPerCharToReserve is the amount of bytes per character to reserve in the result buffer
	BytesPerCharToReserve float64

	Logger *slog.Logger
}

type AsciiOption func(*AsciiConverter)

/*
NewDefault initializes an asciiart instance with default parameters.

- OutputAspectRatio: 2
- DownscalingMode: DownscalingModes.WithRespectToAspectRatio() [0]
- Resampler: nearest
- GrayscaleMode: mean
- Invert: false
- Filters: none
- Palette: nil (palette.Default())
- LuminosityMapper: nil (quantize onto Palette)
- BytesPerCharToReserve: 1
*/
func NewDefault() *AsciiConverter {
	return &AsciiConverter{
		OutputAspectRatio:     defaultAspectRatio,
		DownscalingMode:       DownscalingModes.WithRespectToAspectRatio(),
		Resampler:             ResampleNearest,
		GrayscaleMode:         GrayscaleMean,
		BytesPerCharToReserve: bytesPerCharReserve,
	}
}

// New initializes an asciiart instance with default parameters, then applies options
func New(opts ...AsciiOption) *AsciiConverter {
	ascii := NewDefault()

	for _, o := range opts {
		o(ascii)
	}

	return ascii
}

/*
PaletteMapper returns a luminosity mapper that quantizes every luminosity onto p. p must not be empty.
*/
func PaletteMapper(p *palette.Palette) func(LuminosityProvider, int, int) rune {
	return func(lumProv LuminosityProvider, x, y int) rune {
		return p.RuneFor(uint8(lumProv.LuminosityAt(x, y)))
	}
}

func (a *AsciiConverter) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// mapper resolves the luminosity mapper, building the default palette on first use.
func (a *AsciiConverter) mapper() (func(LuminosityProvider, int, int) rune, error) {
	if a.LuminosityMapper != nil {
		return a.LuminosityMapper, nil
	}

	p := a.Palette
	if p == nil {
		var err error
		if p, err = palette.Default(); err != nil {
			return nil, fmt.Errorf("build default palette: %w", err)
		}
	}
	if p.Len() == 0 {
		return nil, &palette.ConfigurationError{Reason: "cannot convert with an empty palette"}
	}

	return PaletteMapper(p), nil
}

/*
ConvertReader decodes an image from r (see Decode) and converts it. See Convert.
*/
func (a *AsciiConverter) ConvertReader(r io.Reader, targetWidth, targetHeight int) (string, error) {
	img, _, err := Decode(r)
	if err != nil {
		return "", err
	}

	return a.Convert(img, targetWidth, targetHeight)
}

/*
ConvertBytes takes a byte slice representing an image. Image formats supported are jpeg, png, gif, bmp and webp. If you want to support more formats, register the decoder package at the top of any of your go files:

import (
	... <other imports>

	_ "mycustomdecoder/mycustomformat" // Here is your custom file format

	...
)
*/
func (a *AsciiConverter) ConvertBytes(b []byte, targetWidth, targetHeight int) (string, error) {
	return a.ConvertReader(bytes.NewReader(b), targetWidth, targetHeight)
}

// ConvertFile reads the image at path and converts it. See Convert.
func (a *AsciiConverter) ConvertFile(path string, targetWidth, targetHeight int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	res, err := a.ConvertReader(f, targetWidth, targetHeight)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	return res, nil
}

/*
Grayscale runs the image half of the pipeline: filters, downscaling and the luminosity mapping. The result is the grayscale image the characters are picked from, one pixel per character.
*/
func (a *AsciiConverter) Grayscale(img image.Image, targetWidth, targetHeight int) (*image.Gray, error) {
	if err := a.Filters.Validate(); err != nil {
		return nil, err
	}

	img = a.Filters.Apply(img)

	img, err := a.DownscaleImage(img, targetWidth, targetHeight)
	if err != nil {
		return nil, err
	}

	return a.MapLuminosity(img), nil
}

/*
ASCIIGen takes a LuminosityProvider and generates an ascii string from it, one row per line, each row terminated by '\n'. If you are not interested in making custom ascii generators, see Convert(), ConvertBytes() and ConvertReader()
*/
func (a *AsciiConverter) ASCIIGen(lumProv LuminosityProvider, mapper func(LuminosityProvider, int, int) rune) string {
	width, height := lumProv.Width(), lumProv.Height()

	bytesPerChar := a.BytesPerCharToReserve
	if bytesPerChar <= 0 {
		bytesPerChar = bytesPerCharReserve
	}

	var asciiBuilder strings.Builder
	// width + 1 because leave a byte for the new line
	asciiBuilder.Grow(int(bytesPerChar * float64(width+1) * float64(height)))

	for y := range height {
		for x := range width {
			asciiBuilder.WriteRune(mapper(lumProv, x, y))
		}
		asciiBuilder.WriteByte('\n')
	}

	return asciiBuilder.String()
}

/*
Convert takes an image and generates an ascii art string with targetWidth and targetHeight parameters.

However, if targetWidth and targetHeight do not follow the OutputAspectRatio, then one of targetWidth and targetHeight will be ignored by default (usually height if you are using OutputAspectRatio = 2 which is standard).

To ignore this behaviour and always convert to target width and height, specify DownscalingMode to be equal to DownscalingModes.IgnoreAspectRatio
*/
func (a *AsciiConverter) Convert(img image.Image, targetWidth, targetHeight int) (string, error) {
	mapper, err := a.mapper()
	if err != nil {
		return "", err
	}

	gray, err := a.Grayscale(img, targetWidth, targetHeight)
	if err != nil {
		return "", err
	}

	return a.ASCIIGen(grayLuminosity{Gray: gray}, mapper), nil
}
