package model

import (
	"sync"
	"time"

	"github.com/soocke/junction-planner-go/domain/dashboard"
)

// Toast is a notification with its display window.
type Toast struct {
	dashboard.Notification
	Seq     uint64
	Posted  time.Time
	Expires time.Time
}

// NotificationModel buffers notifications until the UI tick shows them. Only
// one toast is visible; a newer notification replaces the current one.
// Notify is safe from any goroutine; OnTick runs on the UI thread.
type NotificationModel struct {
	mu      sync.Mutex
	ttl     time.Duration
	seq     uint64
	pending *Toast
	current *Toast
}

// NewNotificationModel returns a model whose toasts stay visible for ttl.
func NewNotificationModel(ttl time.Duration) *NotificationModel {
	if ttl <= 0 {
		ttl = 4 * time.Second
	}
	return &NotificationModel{ttl: ttl}
}

// Notify queues n, superseding any notification not yet shown.
func (m *NotificationModel) Notify(n dashboard.Notification) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.seq++
	m.pending = &Toast{Notification: n, Seq: m.seq, Posted: time.Now()}
	m.mu.Unlock()
}

// OnTick promotes the pending notification and expires the visible one.
// changed reports whether the visible toast differs from the previous tick.
func (m *NotificationModel) OnTick(now time.Time) (current Toast, visible, changed bool) {
	if m == nil {
		return Toast{}, false, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending != nil {
		t := *m.pending
		t.Expires = now.Add(m.ttl)
		m.current = &t
		m.pending = nil
		changed = true
	} else if m.current != nil && !now.Before(m.current.Expires) {
		m.current = nil
		changed = true
	}
	if m.current == nil {
		return Toast{}, false, changed
	}
	return *m.current, true, changed
}

// Dismiss hides the visible toast.
func (m *NotificationModel) Dismiss() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}

var _ dashboard.Notifier = (*NotificationModel)(nil)
