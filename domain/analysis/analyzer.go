package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/junction-planner-go/domain/junction"
	"github.com/soocke/junction-planner-go/domain/upload"
)

var (
	// ErrInvalidResult marks a backend result with a non-positive duration.
	ErrInvalidResult = errors.New("analysis: invalid result")
	// ErrIncompleteRequest marks a request without an image for every direction.
	ErrIncompleteRequest = errors.New("analysis: incomplete request")
)

// Request carries one image per direction to the analyzer.
type Request struct {
	ID          uuid.UUID
	Images      junction.PerDirection[*upload.ImageFile]
	SubmittedAt time.Time
}

// NewRequest stamps a request with a fresh ID.
func NewRequest(images junction.PerDirection[*upload.ImageFile]) Request {
	return Request{ID: uuid.New(), Images: images, SubmittedAt: time.Now()}
}

// Complete reports whether every direction has an image.
func (r Request) Complete() error {
	var missing []string
	r.Images.Each(func(d junction.Direction, f *upload.ImageFile) {
		if f == nil {
			missing = append(missing, d.String())
		}
	})
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteRequest, strings.Join(missing, ", "))
	}
	return nil
}

// Analyzer turns four junction images into green durations. Implementations
// must return promptly with ctx.Err() once ctx is cancelled.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (junction.Durations, error)
}

// AnalyzerFunc adapts a function to Analyzer.
type AnalyzerFunc func(ctx context.Context, req Request) (junction.Durations, error)

func (f AnalyzerFunc) Analyze(ctx context.Context, req Request) (junction.Durations, error) {
	return f(ctx, req)
}

// ValidateResult requires a positive duration for every direction.
func ValidateResult(d junction.Durations) error {
	var bad []string
	d.Each(func(dir junction.Direction, v int) {
		if v <= 0 {
			bad = append(bad, fmt.Sprintf("%s=%d", dir, v))
		}
	})
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidResult, strings.Join(bad, ", "))
	}
	return nil
}
