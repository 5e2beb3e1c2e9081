package view

import (
	"fmt"
	"image"
	"image/color"

	"github.com/soocke/junction-planner-go/domain/junction"
	"github.com/soocke/junction-planner-go/domain/signal"
	"github.com/soocke/junction-planner-go/ui/images"
	"github.com/soocke/junction-planner-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// DurationDisplay shows the computed green times. Hidden means placeholders.
// The status light is red without a result, yellow while an analysis is
// pending and green once timings are shown.
type DurationDisplay interface {
	ShowDurations(s signal.Summary, chart image.Image)
	HideDurations()
	SetPending(pending bool)
}

type durationRow struct {
	seconds *LabelWidget
	bar     *TProgressbarWidget
}

type durationDisplay struct {
	rows     junction.PerDirection[*durationRow]
	total    *LabelWidget
	average  *LabelWidget
	status   *LabelWidget
	chart    *LabelWidget
	chartImg *Img // last Tk photo for the chart
	blankW   int
	blankH   int
	shown    bool
	pending  bool
}

// NewDurationDisplay builds the "Signal Durations" card into parent at row and
// returns the view together with the next free row.
func NewDurationDisplay(parent *FrameWidget, row, chartW, chartH int) (DurationDisplay, int) {
	p := theme.CurrentPalette()
	v := &durationDisplay{blankW: chartW, blankH: chartH}

	title := Label(Txt("Signal Durations"), Anchor("w"))
	Grid(title, In(parent), Row(row), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	row++
	for _, d := range junction.Directions {
		name := Label(Txt(d.Arrow()+" "+d.Label()), Foreground(theme.DirectionColor(d)), Anchor("w"))
		Grid(name, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"))
		r := &durationRow{}
		r.seconds = Label(Txt("--"), Anchor("e"), Width(6))
		Grid(r.seconds, In(parent), Row(row), Column(1), Sticky("e"), Padx("0.4m"))
		hint := Label(Txt("Green Duration"), Foreground(p.TextMuted), Anchor("w"))
		Grid(hint, In(parent), Row(row), Column(2), Sticky("w"), Padx("0.4m"))
		row++
		r.bar = TProgressbar(Maximum(100), Value(0), Length(200), Mode("determinate"))
		Grid(r.bar, In(parent), Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
		row++
		v.rows.Set(d, r)
	}
	v.total = Label(Txt("Total Cycle Time: --"), Anchor("w"))
	Grid(v.total, In(parent), Row(row), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"))
	row++
	v.average = Label(Txt("Average Duration: --"), Anchor("w"))
	Grid(v.average, In(parent), Row(row), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"))
	row++
	v.status = Label(Txt("● Awaiting analysis"), Foreground(theme.ColorTrafficRed), Anchor("w"))
	Grid(v.status, In(parent), Row(row), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	row++
	v.chartImg = NewPhoto(Data(images.EncodePNG(v.blank())))
	v.chart = Label(Image(v.chartImg), Borderwidth(1), Relief("sunken"))
	Grid(v.chart, In(parent), Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return v, row
}

func (v *durationDisplay) blank() image.Image {
	return images.Blank(v.blankW, v.blankH, color.RGBA{0xff, 0xff, 0xff, 0xff})
}

func (v *durationDisplay) ShowDurations(s signal.Summary, chart image.Image) {
	if v == nil {
		return
	}
	for _, b := range s.Bars {
		if r := v.rows.Get(b.Direction); r != nil {
			r.seconds.Configure(Txt(fmt.Sprintf("%ds", b.Seconds)))
			r.bar.Configure(Value(b.Percent()))
		}
	}
	v.total.Configure(Txt(fmt.Sprintf("Total Cycle Time: %ds", s.Total)))
	v.average.Configure(Txt(fmt.Sprintf("Average Duration: %ds", s.Average)))
	v.shown = true
	v.updateStatus()
	if chart == nil {
		chart = v.blank()
	}
	v.setChart(chart)
}

func (v *durationDisplay) HideDurations() {
	if v == nil {
		return
	}
	v.rows.Each(func(_ junction.Direction, r *durationRow) {
		if r != nil {
			r.seconds.Configure(Txt("--"))
			r.bar.Configure(Value(0))
		}
	})
	v.total.Configure(Txt("Total Cycle Time: --"))
	v.average.Configure(Txt("Average Duration: --"))
	v.shown = false
	v.updateStatus()
	v.setChart(v.blank())
}

func (v *durationDisplay) SetPending(pending bool) {
	if v == nil || v.pending == pending {
		return
	}
	v.pending = pending
	v.updateStatus()
}

func (v *durationDisplay) updateStatus() {
	switch {
	case v.pending:
		v.status.Configure(Txt("● Calculating optimal timing"), Foreground(theme.ColorTrafficYellow))
	case v.shown:
		v.status.Configure(Txt("● Optimized Timing Active"), Foreground(theme.ColorTrafficGreen))
	default:
		v.status.Configure(Txt("● Awaiting analysis"), Foreground(theme.ColorTrafficRed))
	}
}

// setChart replaces the chart photo, disposing of the previous one.
func (v *durationDisplay) setChart(img image.Image) {
	old := v.chartImg
	v.chartImg = NewPhoto(Data(images.EncodePNG(img)))
	v.chart.Configure(Image(v.chartImg))
	if old != nil {
		old.Delete()
	}
}
