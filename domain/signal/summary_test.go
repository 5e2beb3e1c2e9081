package signal

import (
	"testing"

	"github.com/soocke/junction-planner-go/domain/junction"
)

func TestSummarize_TotalsAndAverage(t *testing.T) {
	s := Summarize(junction.Durations{North: 30, South: 45, East: 60, West: 89})
	if s.Total != 224 {
		t.Fatalf("expected total 224, got %d", s.Total)
	}
	if s.Average != 56 {
		t.Fatalf("expected average 56, got %d", s.Average)
	}
	if s.Max != 89 {
		t.Fatalf("expected max 89, got %d", s.Max)
	}
	if s.Bars[3].Direction != junction.West || s.Bars[3].Percent() != 100 {
		t.Fatalf("west should be the full bar: %+v", s.Bars[3])
	}
	if p := s.Bars[0].Percent(); p != 34 { // 30/89
		t.Fatalf("expected north 34%%, got %d", p)
	}
}

func TestSummarize_AverageRoundsHalfUp(t *testing.T) {
	// 30+31+30+31 = 122, 122/4 = 30.5
	s := Summarize(junction.Durations{North: 30, South: 31, East: 30, West: 31})
	if s.Average != 31 {
		t.Fatalf("expected 31, got %d", s.Average)
	}
}

func TestSummarize_AllZeroIsGuarded(t *testing.T) {
	s := Summarize(junction.Durations{})
	if s.Total != 0 || s.Average != 0 || s.Max != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
	for _, b := range s.Bars {
		if b.Fraction != 0 || b.Percent() != 0 {
			t.Fatalf("expected zero-width bar, got %+v", b)
		}
	}
}
