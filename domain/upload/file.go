package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxBytes is the per-image size limit (5 MiB).
const DefaultMaxBytes int64 = 5 * 1024 * 1024

var (
	ErrNoFile          = errors.New("upload: no file selected")
	ErrInvalidFileType = errors.New("upload: not an image file")
	ErrFileTooLarge    = errors.New("upload: file too large")
)

// ImageFile is a selected image before it is bound to a slot.
type ImageFile struct {
	Name      string
	MediaType string
	Size      int64
	Data      []byte
}

// IsImage reports whether the media type belongs to the image/* family.
func (f *ImageFile) IsImage() bool {
	return f != nil && strings.HasPrefix(strings.ToLower(f.MediaType), "image/")
}

// Validate checks presence, media type and size, in that order.
func Validate(f *ImageFile, maxBytes int64) error {
	if f == nil {
		return ErrNoFile
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if !f.IsImage() {
		return fmt.Errorf("%w: %q has media type %q", ErrInvalidFileType, f.Name, f.MediaType)
	}
	if f.Size > maxBytes {
		return fmt.Errorf("%w: %q is %d bytes (limit %d)", ErrFileTooLarge, f.Name, f.Size, maxBytes)
	}
	return nil
}

// Open reads path as an ImageFile. Type and size are checked against the
// file metadata before the contents are read, so oversized files are never
// loaded into memory.
func Open(path string, maxBytes int64) (*ImageFile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoFile
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFile, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%w: %q is a directory", ErrNoFile, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFile, err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("upload: read %q: %w", path, err)
	}
	file := &ImageFile{
		Name:      filepath.Base(path),
		MediaType: MediaTypeFor(path, head[:n]),
		Size:      st.Size(),
	}
	if err := Validate(file, maxBytes); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("upload: rewind %q: %w", path, err)
	}
	data, err := io.ReadAll(io.LimitReader(f, maxBytesOrDefault(maxBytes)+1))
	if err != nil {
		return nil, fmt.Errorf("upload: read %q: %w", path, err)
	}
	// the file may have grown between Stat and ReadAll
	file.Size = int64(len(data))
	if err := Validate(file, maxBytes); err != nil {
		return nil, err
	}
	file.Data = data
	return file, nil
}

// FromBytes wraps in-memory image data (for example a screen capture).
func FromBytes(name string, data []byte) *ImageFile {
	return &ImageFile{Name: name, MediaType: MediaTypeFor(name, data), Size: int64(len(data)), Data: data}
}

// extra extension types not guaranteed by every platform's mime tables
var extraTypes = map[string]string{
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

// MediaTypeFor resolves the media type from the file extension, falling back
// to content sniffing. Parameters (charset etc.) are stripped.
func MediaTypeFor(name string, head []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	mt := mime.TypeByExtension(ext)
	if mt == "" {
		mt = extraTypes[ext]
	}
	if mt == "" && len(head) > 0 {
		mt = http.DetectContentType(head)
	}
	if mt == "" {
		return "application/octet-stream"
	}
	if base, _, err := mime.ParseMediaType(mt); err == nil {
		return base
	}
	return mt
}

func maxBytesOrDefault(n int64) int64 {
	if n <= 0 {
		return DefaultMaxBytes
	}
	return n
}
