package asciiart

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// downscalingModes is the private struct that functions as a namespace for the enum DownscalingMode
type downscalingModes struct{}

// DownscalingModes is the public instance of downscalingModes. Do not reassign this variable
var DownscalingModes = downscalingModes{}

type DownscalingMode int

/*
WithRespectToAspectRatio signals to the downscaling function to keep the proportions of the source image, then squash the result by the OutputAspectRatio declared in the AsciiConverter. It never upscales. In the common case of OutputAspectRatio = 2 (terminal characters are about twice as tall as they are wide), the height ends up halved.
*/
func (d downscalingModes) WithRespectToAspectRatio() DownscalingMode {
	return DownscalingMode(0)
}

/*
IgnoreAspectRatio signals to the downscaling function to resize to exactly the targetWidth and targetHeight passed to Convert() and DownscaleImage(), ignoring both the source proportions and the OutputAspectRatio.
*/
func (d downscalingModes) IgnoreAspectRatio() DownscalingMode {
	return DownscalingMode(1)
}

// None keeps the source size: one character per source pixel.
func (d downscalingModes) None() DownscalingMode {
	return DownscalingMode(2)
}

func (m DownscalingMode) String() string {
	switch m {
	case DownscalingModes.WithRespectToAspectRatio():
		return "respect-aspect-ratio"
	case DownscalingModes.IgnoreAspectRatio():
		return "ignore-aspect-ratio"
	case DownscalingModes.None():
		return "none"
	default:
		return fmt.Sprintf("DownscalingMode(%d)", int(m))
	}
}

// ParseDownscalingMode interprets a downscaling mode name. The empty string selects WithRespectToAspectRatio.
func ParseDownscalingMode(s string) (DownscalingMode, error) {
	switch strings.ToLower(s) {
	case "", "respect-aspect-ratio", "respect", "wrt":
		return DownscalingModes.WithRespectToAspectRatio(), nil
	case "ignore-aspect-ratio", "ignore", "ign":
		return DownscalingModes.IgnoreAspectRatio(), nil
	case "none", "off":
		return DownscalingModes.None(), nil
	default:
		return 0, fmt.Errorf("unknown downscaling mode %q", s)
	}
}

// Resampler names the interpolation used when shrinking the image.
type Resampler string

const (
	ResampleNearest    Resampler = "nearest"
	ResampleBox        Resampler = "box"
	ResampleLinear     Resampler = "linear"
	ResampleCatmullRom Resampler = "catmullrom"
	ResampleLanczos    Resampler = "lanczos"
	ResampleBicubic    Resampler = "bicubic"
	ResampleMitchell   Resampler = "mitchell"
)

// Resamplers lists every supported resampler.
var Resamplers = []Resampler{
	ResampleNearest,
	ResampleBox,
	ResampleLinear,
	ResampleCatmullRom,
	ResampleLanczos,
	ResampleBicubic,
	ResampleMitchell,
}

// ParseResampler interprets a resampler name. The empty string selects ResampleNearest.
func ParseResampler(s string) (Resampler, error) {
	s = strings.ToLower(s)
	if s == "" {
		return ResampleNearest, nil
	}

	for _, r := range Resamplers {
		if string(r) == s {
			return r, nil
		}
	}

	return "", fmt.Errorf("unknown resampler %q", s)
}

/*
TargetSize computes the size DownscaleImage shrinks a srcWidth x srcHeight image to.

In DownscalingModes.WithRespectToAspectRatio() mode:
  - With OutputAspectRatio >= 1, the width is min(targetWidth, srcWidth) and targetHeight is ignored. The height follows from the source proportions, divided by OutputAspectRatio.
  - With OutputAspectRatio < 1, the height is min(targetHeight, srcHeight) and targetWidth is ignored. The width follows from the source proportions, multiplied by OutputAspectRatio.
  - The derived side is clamped to [1, source side].

In DownscalingModes.IgnoreAspectRatio() mode the result is exactly targetWidth x targetHeight.

In DownscalingModes.None() mode the source size is returned.
*/
func (a *AsciiConverter) TargetSize(srcWidth, srcHeight, targetWidth, targetHeight int) (int, int, error) {
	if srcWidth <= 0 || srcHeight <= 0 {
		return 0, 0, fmt.Errorf("source image is empty (%dx%d)", srcWidth, srcHeight)
	}

	switch a.DownscalingMode {
	case DownscalingModes.WithRespectToAspectRatio():
		if a.OutputAspectRatio <= 0 {
			return 0, 0, fmt.Errorf("output aspect ratio must be positive, got %v", a.OutputAspectRatio)
		}

		srcAspect := float64(srcWidth) / float64(srcHeight)

		if a.OutputAspectRatio >= 1 {
			if targetWidth <= 0 {
				return 0, 0, fmt.Errorf("downscaled width of %d is invalid, set a valid target width", targetWidth)
			}
			w := min(targetWidth, srcWidth)
			h := int(float64(w) / srcAspect / a.OutputAspectRatio)
			return w, clamp(h, 1, srcHeight), nil
		}

		if targetHeight <= 0 {
			return 0, 0, fmt.Errorf("downscaled height of %d is invalid, set a valid target height", targetHeight)
		}
		h := min(targetHeight, srcHeight)
		w := int(float64(h) * srcAspect * a.OutputAspectRatio)
		return clamp(w, 1, srcWidth), h, nil

	case DownscalingModes.IgnoreAspectRatio():
		if targetWidth <= 0 || targetHeight <= 0 {
			return 0, 0, fmt.Errorf("target size %dx%d is invalid", targetWidth, targetHeight)
		}
		return targetWidth, targetHeight, nil

	case DownscalingModes.None():
		return srcWidth, srcHeight, nil

	default:
		return 0, 0, fmt.Errorf("unknown downscaling mode provided: %d", a.DownscalingMode)
	}
}

/*
DownscaleImage shrinks src to the size computed by TargetSize, using the configured Resampler. The source image is returned as is when no resizing is needed.
*/
func (a *AsciiConverter) DownscaleImage(src image.Image, targetWidth, targetHeight int) (image.Image, error) {
	srcBounds := src.Bounds()
	srcWidth, srcHeight := srcBounds.Dx(), srcBounds.Dy()

	newWidth, newHeight, err := a.TargetSize(srcWidth, srcHeight, targetWidth, targetHeight)
	if err != nil {
		return nil, err
	}

	if newWidth == srcWidth && newHeight == srcHeight {
		return src, nil
	}

	a.logger().Debug("downscaling",
		"from", fmt.Sprintf("%dx%d", srcWidth, srcHeight),
		"to", fmt.Sprintf("%dx%d", newWidth, newHeight),
		"resampler", a.Resampler,
	)

	switch a.Resampler {
	case ResampleNearest, "":
		return nearest(src, newWidth, newHeight), nil
	case ResampleBox:
		return imaging.Resize(src, newWidth, newHeight, imaging.Box), nil
	case ResampleLinear:
		return imaging.Resize(src, newWidth, newHeight, imaging.Linear), nil
	case ResampleCatmullRom:
		return imaging.Resize(src, newWidth, newHeight, imaging.CatmullRom), nil
	case ResampleLanczos:
		return imaging.Resize(src, newWidth, newHeight, imaging.Lanczos), nil
	case ResampleBicubic:
		return resize.Resize(uint(newWidth), uint(newHeight), src, resize.Bicubic), nil
	case ResampleMitchell:
		return resize.Resize(uint(newWidth), uint(newHeight), src, resize.MitchellNetravali), nil
	default:
		return nil, fmt.Errorf("unknown resampler %q", a.Resampler)
	}
}

// nearest samples the top-left source pixel of every destination cell.
func nearest(src image.Image, newWidth, newHeight int) image.Image {
	srcBounds := src.Bounds()
	srcWidth, srcHeight := srcBounds.Dx(), srcBounds.Dy()

	dst := image.NewNRGBA(image.Rect(0, 0, newWidth, newHeight))

	for y := range newHeight {
		srcY := srcBounds.Min.Y + y*srcHeight/newHeight
		for x := range newWidth {
			srcX := srcBounds.Min.X + x*srcWidth/newWidth
			dst.Set(x, y, src.At(srcX, srcY))
		}
	}

	return dst
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
