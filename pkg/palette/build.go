package palette

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/nebbyJammin/inkramp/pkg/glyph"
)

// DefaultStride keeps every 8th character of the darkness-sorted candidates (12 characters out of the 95 default candidates).
const DefaultStride = 8

const defaultCandidates = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~" +
	"0123456789" +
	" "

// DefaultCandidates returns the letters, punctuation, digits and the space, in that order.
func DefaultCandidates() []rune {
	return []rune(defaultCandidates)
}

// DegeneratePolicy decides what happens to a candidate whose glyph has a zero-area box.
type DegeneratePolicy int

const (
	// DegenerateSkip drops the character from the palette.
	DegenerateSkip DegeneratePolicy = iota
	// DegenerateZero keeps the character with a darkness score of 0.
	DegenerateZero
	// DegenerateFail aborts the build with a *RenderError wrapping ErrDegenerateGlyph.
	DegenerateFail
)

func (p DegeneratePolicy) String() string {
	switch p {
	case DegenerateSkip:
		return "skip"
	case DegenerateZero:
		return "zero"
	case DegenerateFail:
		return "fail"
	default:
		return fmt.Sprintf("DegeneratePolicy(%d)", int(p))
	}
}

// ParseDegeneratePolicy maps a configuration name onto a DegeneratePolicy. The empty string selects DegenerateSkip.
func ParseDegeneratePolicy(s string) (DegeneratePolicy, error) {
	switch strings.ToLower(s) {
	case "", "skip":
		return DegenerateSkip, nil
	case "zero":
		return DegenerateZero, nil
	case "fail", "error":
		return DegenerateFail, nil
	default:
		return 0, fmt.Errorf("unknown degenerate glyph policy %q", s)
	}
}

type builder struct {
	policy   DegeneratePolicy
	minDelta float64
	log      *slog.Logger
}

// Option configures Build and BuildFont.
type Option func(*builder)

// WithDegeneratePolicy sets how zero-area glyphs are handled. The default is DegenerateSkip.
func WithDegeneratePolicy(p DegeneratePolicy) Option {
	return func(b *builder) {
		b.policy = p
	}
}

/*
WithMinDelta drops near-duplicate characters before the stride is applied: walking the candidates from lightest to darkest, a character is kept only if its score is at least d above the last kept one. The lightest candidate is always kept.

The default of 0 keeps every candidate.
*/
func WithMinDelta(d float64) Option {
	return func(b *builder) {
		b.minDelta = d
	}
}

// WithLogger logs the measured scores and skipped characters at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.log = l
		}
	}
}

/*
Build measures every candidate with r and returns the palette:

 1. every candidate is rasterized on its own and scored ink/area
 2. candidates are sorted by ascending score; ties keep their candidate order
 3. near-duplicates are dropped (see WithMinDelta)
 4. every stride-th character is kept, starting with the lightest
 5. the result is reversed, so index 0 is the darkest character kept

Duplicate candidates are ignored after their first occurrence. Every candidate must occupy one terminal column.

Returns a *ConfigurationError for an empty candidate set, a stride < 1, a negative min delta or when no candidate survives, and a *RenderError when r fails (or a glyph is degenerate under DegenerateFail).
*/
func Build(r glyph.Rasterizer, candidates []rune, stride int, opts ...Option) (*Palette, error) {
	b := builder{
		policy: DegenerateSkip,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(&b)
	}

	if stride < 1 {
		return nil, configErrorf("stride must be positive, got %d", stride)
	}
	if b.minDelta < 0 || math.IsNaN(b.minDelta) {
		return nil, configErrorf("min delta must be >= 0, got %v", b.minDelta)
	}

	unique, err := uniqueCandidates(candidates)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(unique))
	for _, c := range unique {
		bm, err := r.Rasterize(c)
		if err != nil {
			return nil, &RenderError{Rune: c, Err: err}
		}

		if bm.Degenerate() {
			switch b.policy {
			case DegenerateSkip:
				b.log.Debug("skipping degenerate glyph", "rune", string(c))
				continue
			case DegenerateZero:
				b.log.Debug("scoring degenerate glyph as blank", "rune", string(c))
				entries = append(entries, Entry{Char: c})
				continue
			default:
				return nil, &RenderError{Rune: c, Err: ErrDegenerateGlyph}
			}
		}

		entries = append(entries, Entry{Char: c, Score: bm.Darkness()})
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Score, b.Score)
	})

	entries = dropNearDuplicates(entries, b.minDelta)
	entries = downsample(entries, stride)
	slices.Reverse(entries)

	if len(entries) == 0 {
		return nil, configErrorf("none of the %d candidates produced a usable glyph", len(unique))
	}

	b.log.Debug("palette built",
		"candidates", len(unique),
		"stride", stride,
		"palette", string(runesOf(entries)),
	)

	return &Palette{entries: entries}, nil
}

/*
BuildFont loads the font described by spec and builds a palette from it. See Build.

A font that cannot be loaded is reported as a *glyph.FontLoadError.
*/
func BuildFont(spec glyph.FontSpec, candidates []rune, stride int, opts ...Option) (*Palette, error) {
	r, err := glyph.Load(spec)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return Build(r, candidates, stride, opts...)
}

var defaultPalette = sync.OnceValues(func() (*Palette, error) {
	return BuildFont(glyph.DefaultFontSpec(), DefaultCandidates(), DefaultStride)
})

// Default returns the palette built from the bundled Go Mono font, the default candidates and DefaultStride. It is built on first use and shared afterwards.
func Default() (*Palette, error) {
	return defaultPalette()
}

func uniqueCandidates(candidates []rune) ([]rune, error) {
	seen := make(map[rune]struct{}, len(candidates))
	unique := make([]rune, 0, len(candidates))

	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		if err := checkCell(c); err != nil {
			return nil, err
		}

		seen[c] = struct{}{}
		unique = append(unique, c)
	}

	if len(unique) == 0 {
		return nil, configErrorf("candidate set is empty")
	}

	return unique, nil
}

// dropNearDuplicates expects entries sorted by ascending score.
func dropNearDuplicates(entries []Entry, minDelta float64) []Entry {
	if minDelta <= 0 || len(entries) == 0 {
		return entries
	}

	kept := entries[:1]
	for _, e := range entries[1:] {
		if e.Score-kept[len(kept)-1].Score >= minDelta {
			kept = append(kept, e)
		}
	}

	return kept
}

func downsample(entries []Entry, stride int) []Entry {
	kept := make([]Entry, 0, (len(entries)+stride-1)/stride)
	for i := 0; i < len(entries); i += stride {
		kept = append(kept, entries[i])
	}

	return kept
}

func runesOf(entries []Entry) []rune {
	runes := make([]rune, len(entries))
	for i, e := range entries {
		runes[i] = e.Char
	}

	return runes
}
