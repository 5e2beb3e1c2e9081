package analysis

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/soocke/junction-planner-go/domain/junction"
)

const (
	DefaultDelay      = 3 * time.Second
	DefaultMinSeconds = 30
	DefaultMaxSeconds = 89
)

// Simulated stands in for a real analysis backend: it waits Delay and then
// draws every direction independently and uniformly from [MinSeconds, MaxSeconds].
type Simulated struct {
	Delay      time.Duration
	MinSeconds int
	MaxSeconds int

	logger *slog.Logger
	mu     sync.Mutex
	rnd    *rand.Rand // nil uses the global source
}

// NewSimulated returns a simulated analyzer. Out-of-range bounds fall back to
// the defaults.
func NewSimulated(delay time.Duration, minSeconds, maxSeconds int, logger *slog.Logger) *Simulated {
	if delay < 0 {
		delay = DefaultDelay
	}
	if minSeconds <= 0 {
		minSeconds = DefaultMinSeconds
	}
	if maxSeconds < minSeconds {
		maxSeconds = minSeconds
	}
	return &Simulated{Delay: delay, MinSeconds: minSeconds, MaxSeconds: maxSeconds, logger: logger}
}

// WithSeed pins the random source so draws are reproducible.
func (s *Simulated) WithSeed(seed uint64) *Simulated {
	s.mu.Lock()
	s.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s.mu.Unlock()
	return s
}

func (s *Simulated) Analyze(ctx context.Context, req Request) (junction.Durations, error) {
	if err := req.Complete(); err != nil {
		return junction.Durations{}, err
	}
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.Debug("analysis cancelled", "request", req.ID.String(), "error", ctx.Err())
			}
			return junction.Durations{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return junction.Durations{}, err
	}

	var out junction.Durations
	for _, d := range junction.Directions {
		out.Set(d, s.draw())
	}
	if s.logger != nil {
		s.logger.Info("analysis simulated",
			"request", req.ID.String(),
			"north", out.North, "south", out.South, "east", out.East, "west", out.West,
			"elapsed", time.Since(req.SubmittedAt),
		)
	}
	return out, nil
}

func (s *Simulated) draw() int {
	span := s.MaxSeconds - s.MinSeconds + 1
	if span <= 1 {
		return s.MinSeconds
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rnd != nil {
		return s.MinSeconds + s.rnd.IntN(span)
	}
	return s.MinSeconds + rand.IntN(span)
}

var _ Analyzer = (*Simulated)(nil)
