package presenter

import (
	"errors"
	"image"
	"log/slog"

	"github.com/soocke/junction-planner-go/capture"
	"github.com/soocke/junction-planner-go/domain/dashboard"
	"github.com/soocke/junction-planner-go/domain/junction"
	"github.com/soocke/junction-planner-go/domain/upload"
	"github.com/soocke/junction-planner-go/ui/model"
)

// ErrCaptureDisabled is returned by CaptureScreen when no capture source is wired.
var ErrCaptureDisabled = errors.New("presenter: screen capture disabled")

// SlotController narrows the dashboard controller to slot mutation.
type SlotController interface {
	Upload(d junction.Direction, slot *dashboard.Slot) error
	Remove(d junction.Direction) error
}

// PreviewFactory turns a decoded image into a displayable preview handle.
type PreviewFactory interface {
	NewPreview(d junction.Direction, img image.Image) (dashboard.PreviewHandle, error)
}

// FileChooser asks the user for an image path. An empty result means cancelled.
type FileChooser interface {
	ChooseImage(d junction.Direction, initial string) string
}

// UploadView shows or clears a direction card.
type UploadView interface {
	ShowSlot(d junction.Direction, fileName string, preview dashboard.PreviewHandle)
	ClearSlot(d junction.Direction)
}

// UploadPresenter validates user selections and hands them to the controller.
type UploadPresenter struct {
	ctrl      SlotController
	previews  PreviewFactory
	chooser   FileChooser
	view      UploadView
	notifier  dashboard.Notifier
	selection *model.SelectionModel
	capture   capture.Source
	maxBytes  int64
	logger    *slog.Logger
}

// NewUploadPresenter returns a presenter. capture may be nil to disable screen capture.
func NewUploadPresenter(ctrl SlotController, previews PreviewFactory, chooser FileChooser, view UploadView, notifier dashboard.Notifier, selection *model.SelectionModel, capture capture.Source, maxBytes int64, logger *slog.Logger) *UploadPresenter {
	if selection == nil {
		selection = model.NewSelectionModel()
	}
	return &UploadPresenter{ctrl: ctrl, previews: previews, chooser: chooser, view: view, notifier: notifier, selection: selection, capture: capture, maxBytes: maxBytes, logger: logger}
}

// Choose opens the chooser for d and selects the picked file.
func (p *UploadPresenter) Choose(d junction.Direction) error {
	if p == nil || p.chooser == nil {
		return nil
	}
	return p.SelectFile(d, p.chooser.ChooseImage(d, p.selection.Path(d)))
}

// SelectFile validates the file at path and binds it to d. A cancelled
// chooser (empty path) is ignored. Validation failures leave the slot
// unchanged and raise a destructive notification.
func (p *UploadPresenter) SelectFile(d junction.Direction, path string) error {
	if p == nil || p.ctrl == nil {
		return nil
	}
	if path == "" {
		return nil
	}
	file, err := upload.Open(path, p.maxBytes)
	if err != nil {
		p.warn(d, err)
		return err
	}
	if err := p.accept(d, file); err != nil {
		return err
	}
	p.selection.Remember(d, path)
	return nil
}

// CaptureScreen grabs the screen as the image for d.
func (p *UploadPresenter) CaptureScreen(d junction.Direction) error {
	if p == nil || p.ctrl == nil {
		return nil
	}
	if p.capture == nil {
		return ErrCaptureDisabled
	}
	file, err := p.capture(d)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("screen capture", "direction", d.String(), "error", err)
		}
		p.notify(dashboard.Notification{Title: "Screen capture failed", Description: err.Error(), Variant: dashboard.VariantDestructive})
		return err
	}
	if err := upload.Validate(file, p.maxBytes); err != nil {
		p.warn(d, err)
		return err
	}
	return p.accept(d, file)
}

// RemoveFile clears d and forgets its chooser selection.
func (p *UploadPresenter) RemoveFile(d junction.Direction) error {
	if p == nil || p.ctrl == nil {
		return nil
	}
	if p.view != nil {
		p.view.ClearSlot(d)
	}
	p.selection.Clear(d)
	return p.ctrl.Remove(d)
}

// accept decodes file, builds its preview and stores the slot. The card is
// switched to the new preview before the controller releases the old one.
func (p *UploadPresenter) accept(d junction.Direction, file *upload.ImageFile) error {
	img, _, err := upload.Decode(file)
	if err != nil {
		p.warn(d, err)
		return err
	}
	var handle dashboard.PreviewHandle
	if p.previews != nil {
		handle, err = p.previews.NewPreview(d, img)
		if err != nil {
			if p.logger != nil {
				p.logger.Error("preview", "direction", d.String(), "error", err)
			}
			p.notify(dashboard.Notification{Title: "Preview failed", Description: err.Error(), Variant: dashboard.VariantDestructive})
			return err
		}
	}
	if p.view != nil {
		p.view.ShowSlot(d, file.Name, handle)
	}
	if err := p.ctrl.Upload(d, dashboard.NewSlot(file, img, handle)); err != nil {
		if p.view != nil {
			p.view.ClearSlot(d)
		}
		if handle != nil {
			handle.Release()
		}
		return err
	}
	return nil
}

func (p *UploadPresenter) warn(d junction.Direction, err error) {
	title, desc := upload.Warning(err, p.maxBytes)
	if p.logger != nil {
		p.logger.Warn("upload rejected", "direction", d.String(), "error", err)
	}
	p.notify(dashboard.Notification{Title: title, Description: desc, Variant: dashboard.VariantDestructive})
}

func (p *UploadPresenter) notify(n dashboard.Notification) {
	if p.notifier != nil {
		p.notifier.Notify(n)
	}
}
