package analysis

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/soocke/junction-planner-go/domain/junction"
)

var errNoAnalyzer = errors.New("analysis: no analyzer configured")

// Swappable forwards to an analyzer that can be replaced while the UI runs,
// e.g. after the settings panel changes the green range. An analysis already
// running keeps the analyzer it started with.
type Swappable struct {
	cur atomic.Pointer[Analyzer]
}

func NewSwappable(a Analyzer) *Swappable {
	s := &Swappable{}
	s.Set(a)
	return s
}

// Set installs a for subsequent requests.
func (s *Swappable) Set(a Analyzer) {
	if a == nil {
		s.cur.Store(nil)
		return
	}
	s.cur.Store(&a)
}

func (s *Swappable) Analyze(ctx context.Context, req Request) (junction.Durations, error) {
	p := s.cur.Load()
	if p == nil {
		return junction.Durations{}, errNoAnalyzer
	}
	return (*p).Analyze(ctx, req)
}
