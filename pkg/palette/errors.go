package palette

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a palette that cannot be built or used: no candidates, a bad stride, an empty palette, ...
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "palette: " + e.Reason
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// RangeError is returned by the quantizer for a luminosity outside [0, 255].
type RangeError struct {
	Luminosity int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("palette: luminosity %d out of range [0, %d]", e.Luminosity, MaxLuminosity)
}

// RenderError reports a candidate character that could not be measured.
type RenderError struct {
	Rune rune
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("palette: render %q: %v", e.Rune, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// ErrDegenerateGlyph is wrapped in a RenderError when a zero-area glyph is met under DegenerateFail.
var ErrDegenerateGlyph = errors.New("glyph has a zero-area bounding box")
