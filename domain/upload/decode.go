package upload

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode decodes the image data for previewing. Data that no registered
// decoder understands is reported as ErrInvalidFileType.
func Decode(f *ImageFile) (image.Image, string, error) {
	if f == nil || len(f.Data) == 0 {
		return nil, "", ErrNoFile
	}
	img, format, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: decode %q: %v", ErrInvalidFileType, f.Name, err)
	}
	return img, format, nil
}
