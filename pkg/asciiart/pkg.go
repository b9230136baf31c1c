// The asciiart package turns an image into plain-text art, one character per sampled pixel.
// Decoding supports .png, .jpg, .jpeg, .gif, .bmp and .webp, and applies the EXIF orientation when present. See Decode(), ConvertBytes() and ConvertReader()
// To support other image formats, either use Convert() instead or import your custom decoders like so:
/*
import (
	... <other imports>

	_ "mycustomdecoder/mycustomformat" // Here is your custom file format

	...
)
*/
// Start by calling New() or NewDefault(). Pass the options into the constructors (see options.go).
// Characters come from a palette.Palette (see WithPalette); without one, the palette built from the bundled Go Mono font is used.
// While all fields are public, treat the AsciiConverter struct as immutable after construction.
package asciiart
