package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// FitSize returns the largest w x h that fits within maxW x maxH while keeping
// the aspect ratio of src. Sources already within bounds keep their size.
func FitSize(src image.Rectangle, maxW, maxH int) (int, int) {
	w, h := src.Dx(), src.Dy()
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	ratio := float64(maxW) / float64(w)
	if r := float64(maxH) / float64(h); r < ratio {
		ratio = r
	}
	newW := int(float64(w)*ratio + 0.5)
	newH := int(float64(h)*ratio + 0.5)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return newW, newH
}

// ScaleToFit scales src so that it fits within maxW x maxH preserving aspect
// ratio. If the source already fits, the original is returned.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	newW, newH := FitSize(b, maxW, maxH)
	if newW == 0 || (newW == b.Dx() && newH == b.Dy()) {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// Blank returns a w x h image filled with c.
func Blank(w, h int, c color.Color) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
	return img
}

// Thumbnail scales src into the preview box and encodes it as PNG, the form Tk photos accept.
func Thumbnail(src image.Image, maxW, maxH int) []byte {
	return EncodePNG(ScaleToFit(src, maxW, maxH))
}
