package capture

import (
	"errors"
	"image"
	"testing"

	"github.com/soocke/junction-planner-go/domain/junction"
)

func TestScreenSource_EncodesPNG(t *testing.T) {
	orig := grabScreen
	defer func() { grabScreen = orig }()
	grabScreen = func() (*image.RGBA, error) { return image.NewRGBA(image.Rect(0, 0, 16, 9)), nil }

	f, err := ScreenSource(junction.East)
	if err != nil {
		t.Fatalf("screen source: %v", err)
	}
	if f.Name != "screen-east.png" || f.MediaType != "image/png" || f.Size != int64(len(f.Data)) || f.Size == 0 {
		t.Fatalf("unexpected file %q %q %d", f.Name, f.MediaType, f.Size)
	}
}

func TestScreenSource_PropagatesGrabError(t *testing.T) {
	orig := grabScreen
	defer func() { grabScreen = orig }()
	boom := errors.New("no display")
	grabScreen = func() (*image.RGBA, error) { return nil, boom }
	if _, err := ScreenSource(junction.North); !errors.Is(err, boom) {
		t.Fatalf("expected grab error, got %v", err)
	}
}
