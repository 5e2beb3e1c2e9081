package presenter

import (
	"image"
	"log/slog"

	"github.com/soocke/junction-planner-go/domain/junction"
	"github.com/soocke/junction-planner-go/domain/signal"
	"github.com/soocke/junction-planner-go/ui/images"
)

// DurationView renders a result card.
type DurationView interface {
	ShowDurations(s signal.Summary, chart image.Image)
	HideDurations()
}

// ChartRenderer draws the duration chart.
type ChartRenderer func(s signal.Summary, w, h int) (image.Image, error)

// DisplayPresenter derives the summary for a result and pushes it to the view.
// Rendering is skipped when the result has not changed.
type DisplayPresenter struct {
	view   DurationView
	render ChartRenderer
	width  int
	height int
	logger *slog.Logger

	shown bool
	last  junction.Durations
	chart image.Image
}

// NewDisplayPresenter returns a presenter; render nil uses images.RenderDurationChart.
func NewDisplayPresenter(view DurationView, render ChartRenderer, width, height int, logger *slog.Logger) *DisplayPresenter {
	if render == nil {
		render = images.RenderDurationChart
	}
	return &DisplayPresenter{view: view, render: render, width: width, height: height, logger: logger}
}

// Show implements ResultSink.
func (p *DisplayPresenter) Show(d junction.Durations, ok bool) {
	if p == nil || p.view == nil {
		return
	}
	if !ok {
		if p.shown {
			p.view.HideDurations()
			p.shown = false
			p.chart = nil
		}
		return
	}
	if p.shown && d == p.last {
		return
	}
	s := signal.Summarize(d)
	chart, err := p.render(s, p.width, p.height)
	if err != nil && p.logger != nil {
		p.logger.Error("duration chart", "error", err)
	}
	p.view.ShowDurations(s, chart)
	p.shown, p.last, p.chart = true, d, chart
}

// Chart returns the last rendered chart, if a result is shown.
func (p *DisplayPresenter) Chart() (image.Image, bool) {
	if p == nil || !p.shown || p.chart == nil {
		return nil, false
	}
	return p.chart, true
}
