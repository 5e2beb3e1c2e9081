package images

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/soocke/junction-planner-go/domain/junction"
	"github.com/soocke/junction-planner-go/domain/signal"
)

// DirectionColors are the bar fills for north, south, east and west.
var DirectionColors = junction.PerDirection[string]{
	North: "#3b82f6",
	South: "#22c55e",
	East:  "#eab308",
	West:  "#a855f7",
}

var blankFill = color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}

// RenderDurationChart draws one bar per direction scaled against the longest
// green phase. When every duration is zero it returns a blank tile instead of
// asking the renderer for a zero-height range.
func RenderDurationChart(s signal.Summary, w, h int) (image.Image, error) {
	if s.Max <= 0 {
		return Blank(w, h, blankFill), nil
	}
	bars := make([]chart.Value, 0, len(s.Bars))
	for _, b := range s.Bars {
		fill := drawing.ColorFromHex(trimHash(DirectionColors.Get(b.Direction)))
		bars = append(bars, chart.Value{
			Label: b.Direction.Label(),
			Value: float64(b.Seconds),
			Style: chart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1},
		})
	}
	barWidth := w / 8
	if barWidth < 10 {
		barWidth = 10
	}
	ch := chart.BarChart{
		Title:      fmt.Sprintf("Cycle %ds / avg %ds", s.Total, s.Average),
		Background: chart.Style{Padding: chart.Box{Top: 28, Left: 10, Right: 10, Bottom: 10}},
		Width:      w,
		Height:     h,
		BarWidth:   barWidth,
		BarSpacing: barWidth / 2,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(s.Max)},
		},
		Bars: bars,
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return Blank(w, h, blankFill), fmt.Errorf("render duration chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return Blank(w, h, blankFill), fmt.Errorf("decode duration chart: %w", err)
	}
	return img, nil
}

func trimHash(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}
