package dashboard

import (
	"errors"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/junction-planner-go/domain/upload"
)

// State enumerates the dashboard lifecycle.
type State int

const (
	StateIdle       State = iota // no slots filled, no result
	StateCollecting              // some slots filled, no result
	StateAnalyzing               // analysis pending
	StateComplete                // result present
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCollecting:
		return "collecting"
	case StateAnalyzing:
		return "analyzing"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

var (
	ErrIncompleteUpload   = errors.New("dashboard: images missing")
	ErrAnalysisInProgress = errors.New("dashboard: analysis already in progress")
	ErrUnknownDirection   = errors.New("dashboard: unknown direction")
	ErrEmptySlot          = errors.New("dashboard: slot has no file")
	ErrClosed             = errors.New("dashboard: closed")
)

// PreviewHandle is a displayable reference to image data that must be
// released explicitly. The controller calls Release exactly once, on the
// goroutine that replaces, removes or resets the slot.
type PreviewHandle interface {
	Release()
}

// Slot is a filled upload for one direction.
type Slot struct {
	ID         uuid.UUID
	File       *upload.ImageFile
	Image      image.Image // decoded, may be nil
	Preview    PreviewHandle
	UploadedAt time.Time
}

// NewSlot binds a validated file and its preview.
func NewSlot(file *upload.ImageFile, img image.Image, preview PreviewHandle) *Slot {
	return &Slot{ID: uuid.New(), File: file, Image: img, Preview: preview, UploadedAt: time.Now()}
}

// Variant selects the notification style.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDestructive
)

func (v Variant) String() string {
	if v == VariantDestructive {
		return "destructive"
	}
	return "default"
}

// Notification is a user-facing message.
type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

// Notifier accepts notifications. It may be called from the analysis goroutine.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// StateListener is called after every state change.
type StateListener func(prev, next State)

// Options tunes controller policy.
type Options struct {
	// InvalidateResultOnChange clears an existing or pending result when any
	// slot changes.
	InvalidateResultOnChange bool
}
