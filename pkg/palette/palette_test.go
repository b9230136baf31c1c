package palette

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebbyJammin/inkramp/pkg/glyph"
)

// fakeRasterizer measures every rune on a 20x20 box with a fixed score. Runes without a score are degenerate.
type fakeRasterizer struct {
	scores map[rune]float64
	fail   map[rune]error
	calls  []rune
}

func (f *fakeRasterizer) Rasterize(r rune) (glyph.Bitmap, error) {
	f.calls = append(f.calls, r)

	if err, ok := f.fail[r]; ok {
		return glyph.Bitmap{}, err
	}

	score, ok := f.scores[r]
	if !ok {
		return glyph.Bitmap{Rune: r}, nil
	}

	return glyph.Bitmap{
		Rune:   r,
		Width:  20,
		Height: 20,
		Ink:    int(math.Round(score * 400)),
	}, nil
}

func exampleRasterizer() *fakeRasterizer {
	return &fakeRasterizer{scores: map[rune]float64{
		' ': 0.0,
		'.': 0.05,
		':': 0.15,
		'#': 0.9,
	}}
}

func TestBuild_Example(t *testing.T) {
	p, err := Build(exampleRasterizer(), []rune(" .:#"), 1)
	require.NoError(t, err)
	assert.Equal(t, []rune{'#', ':', '.', ' '}, p.Runes())

	tests := []struct {
		lum  int
		want rune
	}{
		{lum: 0, want: '#'},
		{lum: 255, want: ' '},
		{lum: 128, want: '.'},
	}

	for _, tt := range tests {
		got, err := Quantize(tt.lum, p)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Quantize(%d)", tt.lum)
	}
}

func TestBuild_Scores(t *testing.T) {
	p, err := Build(exampleRasterizer(), []rune("#: ."), 1)
	require.NoError(t, err)

	entries := p.Entries()
	require.Len(t, entries, 4)
	assert.InDelta(t, 0.9, entries[0].Score, 1e-9)
	assert.InDelta(t, 0.0, entries[3].Score, 1e-9)

	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Score, entries[i].Score, "darkest-first at %d", i)
	}
}

func TestBuild_EntriesIsCopy(t *testing.T) {
	p, err := Build(exampleRasterizer(), []rune(" .:#"), 1)
	require.NoError(t, err)

	entries := p.Entries()
	entries[0].Char = 'X'
	assert.Equal(t, '#', p.At(0))
}

func TestBuild_StableTies(t *testing.T) {
	r := &fakeRasterizer{scores: map[rune]float64{
		'a': 0.5, 'b': 0.5, 'c': 0.5, 'z': 0.9,
	}}

	p, err := Build(r, []rune("abzc"), 1)
	require.NoError(t, err)
	// ascending a b c z, reversed
	assert.Equal(t, "zcba", p.String())
}

func TestBuild_Deterministic(t *testing.T) {
	scores := make(map[rune]float64)
	candidates := DefaultCandidates()
	for i, c := range candidates {
		// plenty of ties on purpose
		scores[c] = float64(i%7) / 10
	}

	a, err := Build(&fakeRasterizer{scores: scores}, candidates, 3)
	require.NoError(t, err)
	b, err := Build(&fakeRasterizer{scores: scores}, candidates, 3)
	require.NoError(t, err)

	assert.Equal(t, a.Entries(), b.Entries())
}

func TestBuild_Stride(t *testing.T) {
	candidates := DefaultCandidates()
	scores := make(map[rune]float64, len(candidates))
	for i, c := range candidates {
		scores[c] = float64(i) / float64(len(candidates))
	}

	for stride := 1; stride <= 12; stride++ {
		p, err := Build(&fakeRasterizer{scores: scores}, candidates, stride)
		require.NoError(t, err)

		want := (len(candidates) + stride - 1) / stride
		assert.Equal(t, want, p.Len(), "stride %d", stride)
	}
}

func TestBuild_StrideKeepsFromLightest(t *testing.T) {
	candidates := []rune("0123456789")
	scores := make(map[rune]float64)
	for i, c := range candidates {
		scores[c] = float64(i) / 10
	}

	p, err := Build(&fakeRasterizer{scores: scores}, candidates, 3)
	require.NoError(t, err)
	// ascending indices 0, 3, 6, 9, reversed
	assert.Equal(t, "9630", p.String())
}

func TestBuild_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name       string
		candidates []rune
		stride     int
		opts       []Option
	}{
		{name: "no candidates", candidates: nil, stride: 1},
		{name: "empty candidates", candidates: []rune{}, stride: 1},
		{name: "zero stride", candidates: []rune(" #"), stride: 0},
		{name: "negative stride", candidates: []rune(" #"), stride: -4},
		{name: "negative min delta", candidates: []rune(" #"), stride: 1, opts: []Option{WithMinDelta(-0.1)}},
		{name: "NaN min delta", candidates: []rune(" #"), stride: 1, opts: []Option{WithMinDelta(math.NaN())}},
		{name: "wide candidate", candidates: []rune(" #漢"), stride: 1},
		{name: "control candidate", candidates: []rune(" #\t"), stride: 1},
		{name: "all degenerate", candidates: []rune("xyz"), stride: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Build(exampleRasterizer(), tt.candidates, tt.stride, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, p)

			var ce *ConfigurationError
			assert.True(t, errors.As(err, &ce), "want *ConfigurationError, got %T: %v", err, err)
		})
	}
}

func TestBuild_DuplicateCandidates(t *testing.T) {
	r := exampleRasterizer()

	p, err := Build(r, []rune("##  ..#"), 1)
	require.NoError(t, err)
	assert.Equal(t, "#. ", p.String())
	assert.Equal(t, []rune{'#', ' ', '.'}, r.calls, "each candidate is rasterized once")
}

func TestBuild_DegeneratePolicy(t *testing.T) {
	// 'x' has no score, so the fake reports a zero-area box for it
	candidates := []rune(" x.:#")

	t.Run("skip", func(t *testing.T) {
		p, err := Build(exampleRasterizer(), candidates, 1, WithDegeneratePolicy(DegenerateSkip))
		require.NoError(t, err)
		assert.Equal(t, "#:. ", p.String())
	})

	t.Run("default is skip", func(t *testing.T) {
		p, err := Build(exampleRasterizer(), candidates, 1)
		require.NoError(t, err)
		assert.Equal(t, "#:. ", p.String())
	})

	t.Run("zero", func(t *testing.T) {
		p, err := Build(exampleRasterizer(), candidates, 1, WithDegeneratePolicy(DegenerateZero))
		require.NoError(t, err)
		// ties with the space at 0 and comes after it in candidate order
		assert.Equal(t, "#:.x ", p.String())
		assert.Zero(t, p.Entries()[3].Score)
	})

	t.Run("fail", func(t *testing.T) {
		p, err := Build(exampleRasterizer(), candidates, 1, WithDegeneratePolicy(DegenerateFail))
		require.Error(t, err)
		assert.Nil(t, p)

		var re *RenderError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, 'x', re.Rune)
		assert.ErrorIs(t, err, ErrDegenerateGlyph)
	})
}

func TestBuild_RasterizerError(t *testing.T) {
	boom := errors.New("boom")
	r := exampleRasterizer()
	r.fail = map[rune]error{':': boom}

	_, err := Build(r, []rune(" .:#"), 1)
	require.Error(t, err)

	var re *RenderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, ':', re.Rune)
	assert.ErrorIs(t, err, boom)
}

func TestBuild_MinDelta(t *testing.T) {
	r := exampleRasterizer()
	r.scores[','] = 0.06

	p, err := Build(r, []rune(" .,:#"), 1)
	require.NoError(t, err)
	assert.Equal(t, "#:,. ", p.String())

	p, err = Build(r, []rune(" .,:#"), 1, WithMinDelta(0.04))
	require.NoError(t, err)
	assert.Equal(t, "#:. ", p.String())

	// dedupe happens before the stride
	p, err = Build(r, []rune(" .,:#"), 2, WithMinDelta(0.04))
	require.NoError(t, err)
	assert.Equal(t, ": ", p.String())
}

func TestBuild_Logger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Build(exampleRasterizer(), []rune(" x.:#"), 1, WithLogger(log))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "skipping degenerate glyph")
	assert.Contains(t, buf.String(), "palette built")
}

func TestParseDegeneratePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    DegeneratePolicy
		wantErr bool
	}{
		{in: "", want: DegenerateSkip},
		{in: "skip", want: DegenerateSkip},
		{in: "Zero", want: DegenerateZero},
		{in: "fail", want: DegenerateFail},
		{in: "error", want: DegenerateFail},
		{in: "ignore", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDegeneratePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.in != "" && tt.in != "error" {
				assert.Equal(t, strings.ToLower(tt.in), got.String())
			}
		})
	}
}

func TestDefaultCandidates(t *testing.T) {
	c := DefaultCandidates()
	assert.Len(t, c, 95)
	assert.Equal(t, 'a', c[0])
	assert.Equal(t, ' ', c[len(c)-1])

	seen := make(map[rune]bool)
	for _, r := range c {
		assert.False(t, seen[r], "duplicate %q", r)
		seen[r] = true
	}
}

func TestFromRamp(t *testing.T) {
	p, err := FromRamp(ClassicRamp)
	require.NoError(t, err)
	assert.Equal(t, ClassicRamp, p.String())
	assert.Equal(t, '$', p.At(0))

	got, err := p.Quantize(0)
	require.NoError(t, err)
	assert.Equal(t, '$', got)

	got, err = p.Quantize(255)
	require.NoError(t, err)
	assert.Equal(t, ' ', got)

	entries := p.Entries()
	assert.Equal(t, 1.0, entries[0].Score)
	assert.Equal(t, 0.0, entries[len(entries)-1].Score)
}

func TestFromRamp_Errors(t *testing.T) {
	_, err := FromRamp("")
	var ce *ConfigurationError
	assert.True(t, errors.As(err, &ce))

	_, err = FromRamp("#漢 ")
	assert.True(t, errors.As(err, &ce))

	p, err := FromRamp("@")
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Entries()[0].Score)
}

func TestBuildFont_GoMono(t *testing.T) {
	candidates := DefaultCandidates()

	p, err := BuildFont(glyph.DefaultFontSpec(), candidates, DefaultStride)
	require.NoError(t, err)
	assert.Equal(t, (len(candidates)+DefaultStride-1)/DefaultStride, p.Len())

	// the space is the only blank candidate, so it is the lightest and survives the stride
	assert.Equal(t, ' ', p.At(p.Len()-1))
	assert.NotEqual(t, ' ', p.At(0))

	again, err := BuildFont(glyph.DefaultFontSpec(), candidates, DefaultStride)
	require.NoError(t, err)
	assert.Equal(t, p.Entries(), again.Entries())
}

func TestBuildFont_LoadError(t *testing.T) {
	_, err := BuildFont(glyph.FontSpec{Path: "/definitely/not/here.ttf"}, DefaultCandidates(), 1)
	require.Error(t, err)

	var fle *glyph.FontLoadError
	assert.True(t, errors.As(err, &fle))
}

func TestDefault(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Positive(t, a.Len())
}
