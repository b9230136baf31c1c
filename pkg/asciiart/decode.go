package asciiart

import (
	"bytes"
	"fmt"
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

/*
Decode reads an image and rotates it upright according to its EXIF orientation tag, if any. It returns the image and the format name reported by image.Decode.

Decode uses image.Decode() under the hood, so any format registered with the image package is accepted.
*/
func Decode(r io.Reader) (image.Image, string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	return orientImage(img, b), format, nil
}

// orientations maps EXIF orientation tags to the transform that puts the image upright. Tag 1 needs none.
var orientations = map[int]func(image.Image) *image.NRGBA{
	2: imaging.FlipH,
	3: imaging.Rotate180,
	4: imaging.FlipV,
	5: imaging.Transpose,
	6: imaging.Rotate270,
	7: imaging.Transverse,
	8: imaging.Rotate90,
}

// orientImage looks up the orientation tag in the EXIF block of raw and applies it to img. img is returned as is when raw has no usable tag.
func orientImage(img image.Image, raw []byte) image.Image {
	x, err := exif.Decode(bytes.NewReader(raw))
	if err != nil {
		return img
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil || tag.Count == 0 {
		return img
	}

	orient, err := tag.Int(0)
	if err != nil {
		return img
	}

	if rotate, ok := orientations[orient]; ok {
		return rotate(img)
	}

	return img
}

// SaveGray writes img to path. The format is picked from the file extension (see imaging.Save).
func SaveGray(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	return nil
}
