package presenter

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/junction-planner-go/domain/dashboard"
	"github.com/soocke/junction-planner-go/domain/junction"
)

// DashboardSource provides the controller methods the presenter requires.
type DashboardSource interface {
	State() dashboard.State
	Analyze() error
	Reset()
	Result() (junction.Durations, bool)
}

// ControlView reflects controller state in the control panel.
type ControlView interface {
	SetStateLabel(string)
	SetProcessing(bool)
	ConfigEditable(bool)
	ClearSlots()
}

// ResultSink receives the committed result (or its absence) after a state change.
type ResultSink interface {
	Show(d junction.Durations, ok bool)
}

// SelectionResetter forgets remembered chooser paths.
type SelectionResetter interface{ ClearAll() }

// DashboardPresenter receives controller transitions, which may arrive on the
// analysis goroutine out of order with UI-thread changes. A transition only
// marks the view dirty; Tick renders whatever the controller holds then.
type DashboardPresenter struct {
	ctrl      DashboardSource
	view      ControlView
	result    ResultSink
	selection SelectionResetter
	logger    *slog.Logger

	mu     sync.Mutex
	dirty  bool
	primed bool
}

func NewDashboardPresenter(ctrl DashboardSource, view ControlView, result ResultSink, selection SelectionResetter, logger *slog.Logger) *DashboardPresenter {
	return &DashboardPresenter{ctrl: ctrl, view: view, result: result, selection: selection, logger: logger}
}

// OnState marks the view stale; it is the controller listener.
func (p *DashboardPresenter) OnState(prev, next dashboard.State) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.dirty = true
	p.mu.Unlock()
}

// Analyze requests an analysis. Missing images are reported by the
// controller's notification; a pending analysis makes this a no-op.
func (p *DashboardPresenter) Analyze() {
	if p == nil || p.ctrl == nil {
		return
	}
	if err := p.ctrl.Analyze(); err != nil && p.logger != nil {
		if errors.Is(err, dashboard.ErrAnalysisInProgress) {
			p.logger.Debug("analyze ignored", "error", err)
		} else {
			p.logger.Info("analyze rejected", "error", err)
		}
	}
}

// Reset clears the cards and chooser memory, then the controller.
func (p *DashboardPresenter) Reset() {
	if p == nil || p.ctrl == nil {
		return
	}
	if p.view != nil {
		p.view.ClearSlots()
	}
	if p.selection != nil {
		p.selection.ClearAll()
	}
	p.ctrl.Reset()
}

// Tick redraws from the controller when a transition arrived since the last tick.
func (p *DashboardPresenter) Tick(now time.Time) {
	if p == nil || p.ctrl == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	dirty := p.dirty || !p.primed
	p.dirty, p.primed = false, true
	p.mu.Unlock()
	if !dirty {
		return
	}

	state := p.ctrl.State()
	analyzing := state == dashboard.StateAnalyzing
	p.view.SetStateLabel("State: " + state.String())
	p.view.SetProcessing(analyzing)
	p.view.ConfigEditable(!analyzing)
	if p.result != nil {
		res, ok := p.ctrl.Result()
		p.result.Show(res, ok)
	}
}
