package asciiart

import (
	"fmt"
	"image"

	"github.com/disintegration/gift"
)

/*
Filters are colour adjustments applied to the source image before it is downscaled. The zero value applies nothing.
*/
type Filters struct {
	// Sepia tone strength in percent, [0, 100].
	Sepia float32
	// Contrast change in percent, [-100, 100].
	Contrast float32
	// Brightness change in percent, [-100, 100].
	Brightness float32
	// Gamma correction. 0 and 1 leave the image unchanged.
	Gamma float32
}

// Validate reports values outside the ranges accepted by each filter.
func (f Filters) Validate() error {
	if f.Sepia < 0 || f.Sepia > 100 {
		return fmt.Errorf("sepia must be in [0, 100], got %v", f.Sepia)
	}
	if f.Contrast < -100 || f.Contrast > 100 {
		return fmt.Errorf("contrast must be in [-100, 100], got %v", f.Contrast)
	}
	if f.Brightness < -100 || f.Brightness > 100 {
		return fmt.Errorf("brightness must be in [-100, 100], got %v", f.Brightness)
	}
	if f.Gamma < 0 {
		return fmt.Errorf("gamma must be >= 0, got %v", f.Gamma)
	}

	return nil
}

func (f Filters) list() []gift.Filter {
	var filters []gift.Filter

	if f.Sepia != 0 {
		filters = append(filters, gift.Sepia(f.Sepia))
	}
	if f.Contrast != 0 {
		filters = append(filters, gift.Contrast(f.Contrast))
	}
	if f.Brightness != 0 {
		filters = append(filters, gift.Brightness(f.Brightness))
	}
	if f.Gamma != 0 && f.Gamma != 1 {
		filters = append(filters, gift.Gamma(f.Gamma))
	}

	return filters
}

// Apply returns img with the filters applied, or img itself when there is nothing to apply.
func (f Filters) Apply(img image.Image) image.Image {
	filters := f.list()
	if len(filters) == 0 {
		return img
	}

	g := gift.New(filters...)
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)

	return dst
}
