package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/vova616/screenshot"

	"github.com/soocke/junction-planner-go/domain/junction"
	"github.com/soocke/junction-planner-go/domain/upload"
)

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return img, nil
}

// grabScreen is replaced in tests.
var grabScreen = Grab

// Source produces an image file ready for upload validation.
type Source func(d junction.Direction) (*upload.ImageFile, error)

// ScreenSource grabs the whole screen and PNG-encodes it as screen-<direction>.png.
// The result still goes through upload.Validate; large screens may exceed the limit.
func ScreenSource(d junction.Direction) (*upload.ImageFile, error) {
	img, err := grabScreen()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("capture: encode png: %w", err)
	}
	return upload.FromBytes("screen-"+d.String()+".png", buf.Bytes()), nil
}
