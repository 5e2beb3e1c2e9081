package presenter

import (
	"time"

	"github.com/soocke/junction-planner-go/ui/model"
)

// ToastView displays a single notification banner.
type ToastView interface {
	ShowToast(t model.Toast)
	HideToast()
}

// NotificationPresenter moves queued notifications from the model to the banner.
type NotificationPresenter struct {
	model *model.NotificationModel
	view  ToastView
}

func NewNotificationPresenter(m *model.NotificationModel, view ToastView) *NotificationPresenter {
	return &NotificationPresenter{model: m, view: view}
}

// Tick advances the model and pushes visibility changes to the view.
func (p *NotificationPresenter) Tick(now time.Time) {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	t, visible, changed := p.model.OnTick(now)
	if !changed {
		return
	}
	if visible {
		p.view.ShowToast(t)
		return
	}
	p.view.HideToast()
}

// Dismiss hides the banner immediately.
func (p *NotificationPresenter) Dismiss() {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	p.model.Dismiss()
	p.view.HideToast()
}
