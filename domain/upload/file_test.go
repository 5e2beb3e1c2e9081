package upload

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestValidate_Rules(t *testing.T) {
	if err := Validate(nil, DefaultMaxBytes); !errors.Is(err, ErrNoFile) {
		t.Fatalf("nil file: expected ErrNoFile, got %v", err)
	}
	txt := &ImageFile{Name: "notes.txt", MediaType: "text/plain", Size: 10}
	if err := Validate(txt, DefaultMaxBytes); !errors.Is(err, ErrInvalidFileType) {
		t.Fatalf("text file: expected ErrInvalidFileType, got %v", err)
	}
	big := &ImageFile{Name: "big.png", MediaType: "image/png", Size: 5*1024*1024 + 1}
	if err := Validate(big, DefaultMaxBytes); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("oversize: expected ErrFileTooLarge, got %v", err)
	}
	edge := &ImageFile{Name: "edge.png", MediaType: "image/png", Size: 5 * 1024 * 1024}
	if err := Validate(edge, DefaultMaxBytes); err != nil {
		t.Fatalf("exactly 5 MiB must pass, got %v", err)
	}
	// non-positive limit falls back to the default
	if err := Validate(big, 0); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("zero limit should use default, got %v", err)
	}
}

func TestOpen_ValidPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "north.png")
	data := pngBytes(t, 4, 3)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Open(path, DefaultMaxBytes)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if f.Name != "north.png" || f.MediaType != "image/png" || f.Size != int64(len(data)) {
		t.Fatalf("unexpected file %+v", f)
	}
	img, format, err := Decode(f)
	if err != nil || format != "png" {
		t.Fatalf("decode: format=%q err=%v", format, err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestOpen_RejectsOversizeAndNonImage(t *testing.T) {
	dir := t.TempDir()
	big := filepath.Join(dir, "huge.png")
	if err := os.WriteFile(big, pngBytes(t, 1, 1), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Truncate(big, 6*1024*1024); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(big, DefaultMaxBytes); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}

	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(txt, DefaultMaxBytes); !errors.Is(err, ErrInvalidFileType) {
		t.Fatalf("expected ErrInvalidFileType, got %v", err)
	}

	if _, err := Open(filepath.Join(dir, "missing.png"), DefaultMaxBytes); !errors.Is(err, ErrNoFile) {
		t.Fatalf("expected ErrNoFile for missing path, got %v", err)
	}
	if _, err := Open("", DefaultMaxBytes); !errors.Is(err, ErrNoFile) {
		t.Fatalf("expected ErrNoFile for empty path, got %v", err)
	}
}

func TestDecode_GarbageWithImageExtension(t *testing.T) {
	f := FromBytes("fake.png", []byte("definitely not a png"))
	if f.MediaType != "image/png" {
		t.Fatalf("extension should win, got %q", f.MediaType)
	}
	if _, _, err := Decode(f); !errors.Is(err, ErrInvalidFileType) {
		t.Fatalf("expected ErrInvalidFileType, got %v", err)
	}
}

func TestMediaTypeFor_SniffsWithoutExtension(t *testing.T) {
	if mt := MediaTypeFor("capture", pngBytes(t, 1, 1)); mt != "image/png" {
		t.Fatalf("expected sniffed image/png, got %q", mt)
	}
	if mt := MediaTypeFor("scan.TIFF", nil); mt != "image/tiff" {
		t.Fatalf("expected image/tiff, got %q", mt)
	}
}

func TestWarning_Messages(t *testing.T) {
	_, desc := Warning(ErrFileTooLarge, DefaultMaxBytes)
	if desc != "File size must be less than 5MB" {
		t.Fatalf("unexpected size message %q", desc)
	}
	_, desc = Warning(ErrInvalidFileType, DefaultMaxBytes)
	if desc != "Please select an image file" {
		t.Fatalf("unexpected type message %q", desc)
	}
}
