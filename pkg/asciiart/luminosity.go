package asciiart

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// GrayscaleMode selects how a colour pixel is reduced to a luminosity in [0, 255].
type GrayscaleMode int

const (
	// GrayscaleMean averages the red, green and blue channels. Alpha is ignored.
	GrayscaleMean GrayscaleMode = iota
	// GrayscaleRec709 weights the channels with the Rec. 709 coefficients and scales the result by alpha.
	GrayscaleRec709
	// GrayscaleRec601 is the Rec. 601 luma used by imaging.Grayscale.
	GrayscaleRec601
	// GrayscaleLab uses the CIE L* lightness, which follows perceived brightness most closely.
	GrayscaleLab
)

func (m GrayscaleMode) String() string {
	switch m {
	case GrayscaleMean:
		return "mean"
	case GrayscaleRec709:
		return "rec709"
	case GrayscaleRec601:
		return "rec601"
	case GrayscaleLab:
		return "lab"
	default:
		return fmt.Sprintf("GrayscaleMode(%d)", int(m))
	}
}

// ParseGrayscaleMode interprets a grayscale mode name. The empty string selects GrayscaleMean.
func ParseGrayscaleMode(s string) (GrayscaleMode, error) {
	switch strings.ToLower(s) {
	case "", "mean", "average", "avg":
		return GrayscaleMean, nil
	case "rec709", "709", "luminance":
		return GrayscaleRec709, nil
	case "rec601", "601", "luma":
		return GrayscaleRec601, nil
	case "lab", "lightness":
		return GrayscaleLab, nil
	default:
		return 0, fmt.Errorf("unknown grayscale mode %q", s)
	}
}

/*
LuminosityProvider is the interface that provides luminosity data per character. Coordinates are relative to the top-left corner, so x is in [0, Width()) and y in [0, Height()).
*/
type LuminosityProvider interface {
	image.Image
	LuminosityAt(x, y int) int
	Width() int
	Height() int
}

// grayLuminosity is the default LuminosityProvider, backed by an *image.Gray anchored at the origin.
type grayLuminosity struct {
	*image.Gray
}

/*
LuminosityAt returns the luminosity (0-255) at some x, y pixel. It does not check that x and y are in range.
*/
func (g grayLuminosity) LuminosityAt(x, y int) int {
	return int(g.Pix[y*g.Stride+x])
}

func (g grayLuminosity) Width() int {
	return g.Rect.Dx()
}

func (g grayLuminosity) Height() int {
	return g.Rect.Dy()
}

// NewLuminosityProvider wraps an existing grayscale image.
func NewLuminosityProvider(gray *image.Gray) LuminosityProvider {
	if gray.Rect.Min != (image.Point{}) {
		gray = &image.Gray{
			Pix:    gray.Pix[gray.PixOffset(gray.Rect.Min.X, gray.Rect.Min.Y):],
			Stride: gray.Stride,
			Rect:   image.Rect(0, 0, gray.Rect.Dx(), gray.Rect.Dy()),
		}
	}

	return grayLuminosity{Gray: gray}
}

/*
MapLuminosity reduces img to a grayscale image anchored at the origin, using the configured GrayscaleMode. Every value is inverted when Invert is set.
*/
func (a *AsciiConverter) MapLuminosity(img image.Image) *image.Gray {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	gray := image.NewGray(image.Rect(0, 0, width, height))

	if a.GrayscaleMode == GrayscaleRec601 {
		// imaging.Grayscale always returns an NRGBA anchored at the origin
		luma := imaging.Grayscale(img)
		for i := range width * height {
			gray.Pix[i] = luma.Pix[i*4]
		}
	} else {
		lumFunc := a.luminosityFunc()
		for y := range height {
			row := gray.Pix[y*gray.Stride:]
			for x := range width {
				row[x] = lumFunc(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			}
		}
	}

	if a.Invert {
		for i, v := range gray.Pix {
			gray.Pix[i] = 255 - v
		}
	}

	return gray
}

func (a *AsciiConverter) luminosityFunc() func(color.Color) uint8 {
	switch a.GrayscaleMode {
	case GrayscaleRec709:
		return rec709
	case GrayscaleLab:
		return labLightness
	default:
		return mean
	}
}

func mean(c color.Color) uint8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return uint8((uint32(n.R) + uint32(n.G) + uint32(n.B)) / 3)
}

func rec709(c color.Color) uint8 {
	r, g, b, a := c.RGBA()
	r8, g8, b8, a8 := r>>8, g>>8, b>>8, a>>8
	// Lum approximation, scaled by the alpha channel
	return uint8((r8*2126 + g8*7152 + b8*722) / 10000 * a8 / 255)
}

func labLightness(c color.Color) uint8 {
	col, ok := colorful.MakeColor(c)
	if !ok {
		// fully transparent
		return 0
	}

	l, _, _ := col.Lab()
	return uint8(math.Round(math.Max(0, math.Min(1, l)) * 255))
}
