package palette

// MaxLuminosity is the brightest luminosity value the quantizer accepts.
const MaxLuminosity = 255

/*
Index maps lum onto an index into a palette of n characters:

	index = floor(lum / 255 * n)

computed exactly in integer arithmetic as lum*n/255. The float64 rendering of the same formula rounds some products just below a whole number (lum = 155, n = 51 gives 30.999...) and so lands one index lower at a handful of points for n > 50; Index does not. lum = 255 is clamped to 254 first so the index never reaches n; the result is always in [0, n) and never decreases as lum grows.

Returns a *ConfigurationError if n <= 0 and a *RangeError if lum is outside [0, 255].
*/
func Index(lum, n int) (int, error) {
	if n <= 0 {
		return 0, configErrorf("cannot quantize onto an empty palette")
	}
	if lum < 0 || lum > MaxLuminosity {
		return 0, &RangeError{Luminosity: lum}
	}

	return index(lum, n), nil
}

func index(lum, n int) int {
	if lum == MaxLuminosity {
		lum--
	}

	return lum * n / MaxLuminosity
}

// Quantize returns the character of p representing lum. See Index for the mapping and the errors.
func Quantize(lum int, p *Palette) (rune, error) {
	return p.Quantize(lum)
}

// Quantize returns the character representing lum. See Index for the mapping and the errors.
func (p *Palette) Quantize(lum int) (rune, error) {
	i, err := Index(lum, p.Len())
	if err != nil {
		return 0, err
	}

	return p.entries[i].Char, nil
}

/*
RuneFor is the per-pixel fast path of Quantize. A uint8 cannot be out of range, so there is nothing to report; the palette must be non-empty, which every palette returned by this package is.
*/
func (p *Palette) RuneFor(lum uint8) rune {
	return p.entries[index(int(lum), len(p.entries))].Char
}
