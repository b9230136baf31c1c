/*
Package palette turns a font into an ordered set of characters spanning the darkness gradient, and quantizes luminosity values onto it.

A Palette is built once (see Build, BuildFont and Default) and is read-only afterwards, so a single *Palette can be shared by any number of goroutines calling Quantize or RuneFor.

Palettes are ordered darkest-first: index 0 holds the character with the most ink, the last index the lightest one (usually the space). The quantizer relies on this ordering: luminosity 0 (black) maps to index 0.
*/
package palette

import (
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

/*
ClassicRamp is the well known 70 character ramp used by most ascii art generators, ordered darkest-first:

	$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\|()1{}[]?-_+~<>i!lI;:,"^`'.
*/
const ClassicRamp = `$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\|()1{}[]?-_+~<>i!lI;:,"^` + "`" + `'. `

// Entry is one palette character with its measured darkness score in [0, 1].
type Entry struct {
	Char  rune
	Score float64
}

// Palette is an immutable, darkest-first sequence of characters. The zero value is an empty palette, which the quantizer rejects.
type Palette struct {
	entries []Entry
}

/*
FromRamp builds a palette from an explicit darkest-first ramp such as ClassicRamp, without measuring anything. Scores are assigned evenly from 1 (first character) down to 0 (last).

Every character must occupy a single terminal column.
*/
func FromRamp(ramp string) (*Palette, error) {
	runes := []rune(ramp)
	if len(runes) == 0 {
		return nil, configErrorf("ramp is empty")
	}

	entries := make([]Entry, len(runes))
	for i, r := range runes {
		if err := checkCell(r); err != nil {
			return nil, err
		}

		score := 1.0
		if len(runes) > 1 {
			score = 1 - float64(i)/float64(len(runes)-1)
		}
		entries[i] = Entry{Char: r, Score: score}
	}

	return &Palette{entries: entries}, nil
}

func checkCell(r rune) error {
	if w := runewidth.RuneWidth(r); w != 1 {
		return configErrorf("character %q occupies %d terminal columns, want 1", r, w)
	}

	return nil
}

// Len returns the number of characters. It is safe to call on a nil palette.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}

	return len(p.entries)
}

// At returns the character at index i (0 is the darkest).
func (p *Palette) At(i int) rune {
	return p.entries[i].Char
}

// Entries returns a copy of the palette entries, darkest-first.
func (p *Palette) Entries() []Entry {
	if p == nil {
		return nil
	}

	return slices.Clone(p.entries)
}

// Runes returns the palette characters, darkest-first.
func (p *Palette) Runes() []rune {
	runes := make([]rune, p.Len())
	for i := range runes {
		runes[i] = p.entries[i].Char
	}

	return runes
}

// String returns the palette characters as a darkest-first ramp.
func (p *Palette) String() string {
	var sb strings.Builder
	for i := range p.Len() {
		sb.WriteRune(p.entries[i].Char)
	}

	return sb.String()
}
