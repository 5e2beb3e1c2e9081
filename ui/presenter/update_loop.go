package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Dashboard     *DashboardPresenter
	Notifications *NotificationPresenter
	Schedule      func()
}

func NewLoop(dash *DashboardPresenter, notes *NotificationPresenter, schedule func()) *Loop {
	return &Loop{Dashboard: dash, Notifications: notes, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// State first so a completion toast appears together with the result card.
	if l.Dashboard != nil {
		l.Dashboard.Tick(now)
	}
	if l.Notifications != nil {
		l.Notifications.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
