package glyph

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Names of the fonts compiled into the binary. Any other FontSpec.Path is read from disk.
const (
	BundledMono    = "gomono"
	BundledRegular = "goregular"
	// BundledBasic is the 7x13 bitmap face from x/image. Size and DPI are ignored for it.
	BundledBasic = "basic"
)

const (
	DefaultSize      = 40
	DefaultDPI       = 72
	DefaultThreshold = 128
)

// Engine selects the library used to parse and rasterize outline fonts.
type Engine string

const (
	// EngineOpenType uses golang.org/x/image/font/opentype. It understands .ttf, .otf and collections (.ttc, .otc).
	EngineOpenType Engine = "opentype"
	// EngineFreeType uses github.com/golang/freetype. Single TrueType fonts only.
	EngineFreeType Engine = "freetype"
)

// ParseEngine maps a configuration name onto an Engine. The empty string selects the default engine.
func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(s) {
	case "", "opentype", "otf", "sfnt":
		return EngineOpenType, nil
	case "freetype", "truetype", "ttf":
		return EngineFreeType, nil
	default:
		return "", fmt.Errorf("unknown font engine %q", s)
	}
}

// FontSpec describes which font to rasterize with and at what size.
type FontSpec struct {
	// Path is a font file, or one of BundledMono, BundledRegular, BundledBasic
	Path string
	// Size in points
	Size float64
	DPI  float64
	// Index selects a font inside a collection file (.ttc). Ignored for single fonts.
	Index  int
	Engine Engine
	// Threshold is the minimum alpha (1-255) for an anti-aliased pixel to count as ink
	Threshold uint8
}

// DefaultFontSpec returns the bundled Go Mono font at 40pt, 72 DPI.
func DefaultFontSpec() FontSpec {
	return FontSpec{
		Path:      BundledMono,
		Size:      DefaultSize,
		DPI:       DefaultDPI,
		Engine:    EngineOpenType,
		Threshold: DefaultThreshold,
	}
}

func (s FontSpec) withDefaults() FontSpec {
	if s.Path == "" {
		s.Path = BundledMono
	}
	if s.Size <= 0 {
		s.Size = DefaultSize
	}
	if s.DPI <= 0 {
		s.DPI = DefaultDPI
	}
	if s.Engine == "" {
		s.Engine = EngineOpenType
	}
	if s.Threshold == 0 {
		s.Threshold = DefaultThreshold
	}

	return s
}

// FontLoadError is returned when the font resource is missing or cannot be parsed.
type FontLoadError struct {
	Path string
	Err  error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("load font %q: %v", e.Path, e.Err)
}

func (e *FontLoadError) Unwrap() error {
	return e.Err
}

var errCollectionIndex = errors.New("font collections are not supported by the freetype engine")

/*
Load opens the font described by spec and returns a rasterizer for it. Zero fields of spec are replaced with the defaults of DefaultFontSpec().

Every failure is reported as a *FontLoadError. The returned rasterizer owns the font face; call Close when done with it.
*/
func Load(spec FontSpec) (*FaceRasterizer, error) {
	spec = spec.withDefaults()

	face, err := openFace(spec)
	if err != nil {
		return nil, &FontLoadError{Path: spec.Path, Err: err}
	}

	return NewFaceRasterizer(face, spec.Threshold), nil
}

func openFace(spec FontSpec) (font.Face, error) {
	if spec.Path == BundledBasic {
		return basicfont.Face7x13, nil
	}

	data, err := fontData(spec.Path)
	if err != nil {
		return nil, err
	}

	switch spec.Engine {
	case EngineOpenType:
		return openTypeFace(data, spec)
	case EngineFreeType:
		return freeTypeFace(data, spec)
	default:
		return nil, fmt.Errorf("unknown font engine %q", spec.Engine)
	}
}

func fontData(path string) ([]byte, error) {
	switch path {
	case BundledMono:
		return gomono.TTF, nil
	case BundledRegular:
		return goregular.TTF, nil
	}

	return os.ReadFile(path)
}

func openTypeFace(data []byte, spec FontSpec) (font.Face, error) {
	// a plain .ttf/.otf parses as a collection of one
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}

	if spec.Index < 0 || spec.Index >= coll.NumFonts() {
		return nil, fmt.Errorf("font index %d out of range (collection has %d fonts)", spec.Index, coll.NumFonts())
	}

	f, err := coll.Font(spec.Index)
	if err != nil {
		return nil, err
	}

	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    spec.Size,
		DPI:     spec.DPI,
		Hinting: font.HintingFull,
	})
}

func freeTypeFace(data []byte, spec FontSpec) (font.Face, error) {
	if spec.Index != 0 {
		return nil, errCollectionIndex
	}

	f, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}

	return truetype.NewFace(f, &truetype.Options{
		Size:    spec.Size,
		DPI:     spec.DPI,
		Hinting: font.HintingFull,
	}), nil
}
