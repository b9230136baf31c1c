package glyph

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

/*
FaceRasterizer measures characters drawn with a font.Face.

The box of a character is anchored at the layout origin (the top of the ascender line), not at the tight ink bounds:

	width  = max(advance, right edge of the ink)
	height = ascent + max(0, ink below the baseline)

so a space gets a box as wide as its advance and a darkness of 0, and short glyphs like '.' are measured against the full ascent above them. Ink left of the origin is clipped.

NOTE: font faces keep scratch buffers, so a FaceRasterizer must not be used from several goroutines at once.
*/
type FaceRasterizer struct {
	face      font.Face
	threshold uint8
}

var _ Rasterizer = (*FaceRasterizer)(nil)

// NewFaceRasterizer wraps face. Pixels with alpha >= threshold count as ink; a threshold of 0 is treated as DefaultThreshold.
func NewFaceRasterizer(face font.Face, threshold uint8) *FaceRasterizer {
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	return &FaceRasterizer{
		face:      face,
		threshold: threshold,
	}
}

// Rasterize draws r on its own and counts the ink pixels. Characters missing from the font give a degenerate Bitmap.
func (f *FaceRasterizer) Rasterize(r rune) (Bitmap, error) {
	img, ok := f.render(r)
	if !ok {
		return Bitmap{Rune: r}, nil
	}

	bounds := img.Bounds()
	ink := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.AlphaAt(x, y).A >= f.threshold {
				ink++
			}
		}
	}

	return Bitmap{
		Rune:   r,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Ink:    ink,
	}, nil
}

// render draws r into an alpha mask sized to its measured box.
func (f *FaceRasterizer) render(r rune) (*image.Alpha, bool) {
	bounds, advance, ok := f.face.GlyphBounds(r)
	if !ok {
		return nil, false
	}

	ascent := f.face.Metrics().Ascent.Ceil()
	width := max(advance.Ceil(), bounds.Max.X.Ceil())
	height := ascent + max(0, bounds.Max.Y.Ceil())
	if width <= 0 || height <= 0 {
		return nil, false
	}

	img := image.NewAlpha(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: f.face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(string(r))

	return img, true
}

// Close releases the underlying face.
func (f *FaceRasterizer) Close() error {
	return f.face.Close()
}
