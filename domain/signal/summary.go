package signal

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/soocke/junction-planner-go/domain/junction"
)

// Bar is one direction's share of the longest green phase.
type Bar struct {
	Direction junction.Direction
	Seconds   int
	Fraction  float64 // Seconds / max, 0 when every duration is 0
}

// Summary is everything the duration card shows for one result.
type Summary struct {
	Total   int // full cycle time in seconds
	Average int // Total / 4, rounded half away from zero
	Max     int
	Bars    [len(junction.Directions)]Bar
}

// Summarize derives cycle statistics from d. It has no state of its own.
func Summarize(d junction.Durations) Summary {
	vals := make([]float64, 0, len(junction.Directions))
	d.Each(func(_ junction.Direction, v int) { vals = append(vals, float64(v)) })

	total := floats.Sum(vals)
	maxV := floats.Max(vals)

	s := Summary{
		Total:   int(total),
		Average: int(math.Round(total / float64(len(vals)))),
		Max:     int(maxV),
	}
	for i, dir := range junction.Directions {
		b := Bar{Direction: dir, Seconds: d.Get(dir)}
		if maxV > 0 && b.Seconds > 0 {
			b.Fraction = float64(b.Seconds) / maxV
		}
		s.Bars[i] = b
	}
	return s
}

// Percent returns the bar width as a whole percentage in [0, 100].
func (b Bar) Percent() int {
	p := int(math.Round(b.Fraction * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
