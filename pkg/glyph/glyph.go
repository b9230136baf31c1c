// Package glyph loads fonts and rasterizes single characters so their ink
// coverage can be measured. The palette builder only depends on the
// Rasterizer interface; FaceRasterizer is the implementation backed by a real
// font.Face.
package glyph

// Bitmap is the measurement of one rasterized character. The bitmap itself is
// not kept, only the size of its box and how many of its pixels are ink.
type Bitmap struct {
	Rune rune
	// Width and Height are the size of the measured box in pixels
	Width  int
	Height int
	// Ink is the number of pixels at or above the ink threshold
	Ink int
}

// Area returns Width*Height, or 0 for a degenerate box.
func (b Bitmap) Area() int {
	if b.Degenerate() {
		return 0
	}

	return b.Width * b.Height
}

// Degenerate reports whether the box has no area (missing glyph, zero advance and no ink, ...).
func (b Bitmap) Degenerate() bool {
	return b.Width <= 0 || b.Height <= 0
}

/*
Darkness returns the fraction of the box covered by ink, between 0 (blank) and 1 (fully inked).

A degenerate bitmap has no darkness to speak of and returns 0. Callers that need to tell "blank" apart from "nothing was measured" should check Degenerate() first.
*/
func (b Bitmap) Darkness() float64 {
	if b.Degenerate() {
		return 0
	}

	return float64(b.Ink) / float64(b.Area())
}

// Rasterizer renders a character in isolation and measures it.
type Rasterizer interface {
	Rasterize(r rune) (Bitmap, error)
}
