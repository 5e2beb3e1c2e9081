package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/png"
)

// TrafficLightPNG contains the raw PNG bytes of the header icon.
//
//go:embed traffic_light.png
var TrafficLightPNG []byte

// TrafficLightImage decodes the embedded PNG into an image.Image.
func TrafficLightImage() (image.Image, error) {
	if len(TrafficLightPNG) == 0 {
		return nil, fmt.Errorf("embedded traffic_light.png is empty")
	}
	img, err := png.Decode(bytes.NewReader(TrafficLightPNG))
	if err != nil {
		return nil, err
	}
	return img, nil
}
