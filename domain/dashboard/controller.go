package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/soocke/junction-planner-go/domain/analysis"
	"github.com/soocke/junction-planner-go/domain/junction"
	"github.com/soocke/junction-planner-go/domain/upload"
)

// Controller owns the four upload slots and the analysis result.
// It is concurrency-safe: UI callbacks and the analysis goroutine may call
// into it concurrently. Listeners and the notifier run outside the lock.
type Controller struct {
	mu        sync.Mutex
	notifyMu  sync.Mutex // orders notifications against later generations
	logger    *slog.Logger
	analyzer  analysis.Analyzer
	notifier  Notifier
	opts      Options
	slots     junction.PerDirection[*Slot]
	result    *junction.Durations
	state     State
	pending   bool // isProcessing
	gen       uint64
	cancel    context.CancelFunc
	listeners []StateListener
	closed    bool
	wg        sync.WaitGroup
}

// NewController constructs an idle controller.
func NewController(analyzer analysis.Analyzer, notifier Notifier, logger *slog.Logger, opts Options) *Controller {
	return &Controller{analyzer: analyzer, notifier: notifier, logger: logger, opts: opts, state: StateIdle}
}

// AddListener registers a transition listener.
func (c *Controller) AddListener(l StateListener) {
	if c == nil || l == nil {
		return
	}
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsProcessing reports whether an analysis is pending.
func (c *Controller) IsProcessing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Result returns the last committed durations.
func (c *Controller) Result() (junction.Durations, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return junction.Durations{}, false
	}
	return *c.result, true
}

// Slot returns a copy of the slot for d.
func (c *Controller) Slot(d junction.Direction) (Slot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.slots.Get(d)
	if s == nil {
		return Slot{}, false
	}
	return *s, true
}

// Missing lists the directions without an upload.
func (c *Controller) Missing() []junction.Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.missingLocked()
}

// HeldBytes sums the file sizes of all filled slots.
func (c *Controller) HeldBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	c.slots.Each(func(_ junction.Direction, s *Slot) {
		if s != nil && s.File != nil {
			n += s.File.Size
		}
	})
	return n
}

// Upload stores slot for d, releasing the preview it replaces.
func (c *Controller) Upload(d junction.Direction, slot *Slot) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDirection, d)
	}
	if slot == nil || slot.File == nil {
		return ErrEmptySlot
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	prev := c.state
	if old := c.slots.Get(d); old != nil && old != slot {
		releaseSlot(old)
	}
	c.slots.Set(d, slot)
	c.invalidateLocked()
	next := c.deriveLocked()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("image uploaded", "direction", d.String(), "slot", slot.ID.String(), "file", slot.File.Name, "bytes", slot.File.Size)
	}
	fire(listeners, prev, next)
	c.notify(Notification{Title: d.Label() + " image uploaded", Description: "Image uploaded successfully"})
	return nil
}

// Remove clears the slot for d and releases its preview. Removing an empty
// slot is a no-op.
func (c *Controller) Remove(d junction.Direction) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDirection, d)
	}
	c.mu.Lock()
	old := c.slots.Get(d)
	if old == nil || c.closed {
		c.mu.Unlock()
		return nil
	}
	prev := c.state
	releaseSlot(old)
	c.slots.Set(d, nil)
	c.invalidateLocked()
	next := c.deriveLocked()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("image removed", "direction", d.String(), "slot", old.ID.String())
	}
	fire(listeners, prev, next)
	c.notify(Notification{Title: d.Label() + " image removed", Description: "Image removed"})
	return nil
}

// Analyze starts an analysis when all four slots are filled. It returns
// immediately; completion is reported through listeners and the notifier.
func (c *Controller) Analyze() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.pending {
		c.mu.Unlock()
		return ErrAnalysisInProgress
	}
	if missing := c.missingLocked(); len(missing) > 0 {
		c.mu.Unlock()
		names := make([]string, len(missing))
		for i, d := range missing {
			names[i] = d.String()
		}
		c.notify(Notification{Title: "Missing images", Description: "Please upload images for all 4 directions.", Variant: VariantDestructive})
		return fmt.Errorf("%w: %s", ErrIncompleteUpload, strings.Join(names, ", "))
	}

	var images junction.PerDirection[*upload.ImageFile]
	c.slots.Each(func(d junction.Direction, s *Slot) { images.Set(d, s.File) })
	req := analysis.NewRequest(images)

	ctx, cancel := context.WithCancel(context.Background())
	c.gen++
	gen := c.gen
	c.cancel = cancel
	c.pending = true
	prev := c.state
	next := c.deriveLocked()
	listeners := c.listenersLocked()
	c.wg.Add(1)
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("analysis started", "request", req.ID.String(), "generation", gen)
	}
	fire(listeners, prev, next)
	go c.run(ctx, gen, req)
	return nil
}

func (c *Controller) run(ctx context.Context, gen uint64, req analysis.Request) {
	defer c.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			if c.logger != nil {
				c.logger.Error("analysis panic", "error", r, "stack", string(debug.Stack()))
			}
			c.complete(gen, junction.Durations{}, fmt.Errorf("analysis panic: %v", r))
		}
	}()
	var (
		res junction.Durations
		err = errors.New("dashboard: no analyzer configured")
	)
	if c.analyzer != nil {
		res, err = c.analyzer.Analyze(ctx, req)
	}
	if err == nil {
		err = analysis.ValidateResult(res)
	}
	c.complete(gen, res, err)
}

// complete commits an analysis outcome unless a reset or slot change has
// superseded it.
func (c *Controller) complete(gen uint64, res junction.Durations, err error) {
	c.mu.Lock()
	if gen != c.gen || !c.pending {
		c.mu.Unlock()
		if c.logger != nil {
			c.logger.Debug("stale analysis discarded", "generation", gen, "error", err)
		}
		return
	}
	c.pending = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	prev := c.state
	if err == nil {
		r := res
		c.result = &r
	}
	next := c.deriveLocked()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	fire(listeners, prev, next)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("analysis failed", "generation", gen, "error", err)
		}
		c.notifyGen(gen, Notification{Title: "Analysis failed", Description: err.Error(), Variant: VariantDestructive})
		return
	}
	if c.logger != nil {
		c.logger.Info("analysis complete", "generation", gen)
	}
	c.notifyGen(gen, Notification{Title: "Analysis complete!", Description: "Optimal signal durations calculated"})
}

// Reset cancels any pending analysis, releases every preview, clears all
// slots and the result, and returns to Idle.
func (c *Controller) Reset() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	prev := c.state
	c.clearLocked()
	next := c.deriveLocked()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("dashboard reset")
	}
	fire(listeners, prev, next)
	c.notify(Notification{Title: "Dashboard reset", Description: "All data cleared"})
}

// Close tears the controller down: pending analysis is cancelled and awaited,
// previews are released. Further mutations return ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.clearLocked()
	c.closed = true
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Controller) clearLocked() {
	c.cancelPendingLocked()
	c.gen++
	c.slots.Each(func(d junction.Direction, s *Slot) {
		if s != nil {
			releaseSlot(s)
			c.slots.Set(d, nil)
		}
	})
	c.result = nil
}

// cancelPendingLocked abandons the in-flight analysis; bumping the
// generation makes its late completion a no-op.
func (c *Controller) cancelPendingLocked() {
	if !c.pending {
		return
	}
	c.gen++
	c.pending = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) invalidateLocked() {
	if !c.opts.InvalidateResultOnChange {
		return
	}
	c.cancelPendingLocked()
	if c.result != nil {
		c.gen++
	}
	c.result = nil
}

func (c *Controller) deriveLocked() State {
	switch {
	case c.pending:
		c.state = StateAnalyzing
	case c.result != nil:
		c.state = StateComplete
	case len(c.missingLocked()) == len(junction.Directions):
		c.state = StateIdle
	default:
		c.state = StateCollecting
	}
	return c.state
}

func (c *Controller) missingLocked() []junction.Direction {
	var out []junction.Direction
	c.slots.Each(func(d junction.Direction, s *Slot) {
		if s == nil {
			out = append(out, d)
		}
	})
	return out
}

func (c *Controller) listenersLocked() []StateListener {
	if len(c.listeners) == 0 {
		return nil
	}
	out := make([]StateListener, len(c.listeners))
	copy(out, c.listeners)
	return out
}

func (c *Controller) notify(n Notification) {
	if c.notifier == nil {
		return
	}
	c.notifyMu.Lock()
	c.notifier.Notify(n)
	c.notifyMu.Unlock()
}

// notifyGen sends n only if no reset or invalidation has happened since
// generation gen was committed. Listeners run outside the lock, so a UI-thread
// reset can land between the commit and this call.
func (c *Controller) notifyGen(gen uint64, n Notification) {
	if c.notifier == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.mu.Lock()
	current := c.gen == gen && !c.closed
	c.mu.Unlock()
	if !current {
		if c.logger != nil {
			c.logger.Debug("superseded notification dropped", "generation", gen, "title", n.Title)
		}
		return
	}
	c.notifier.Notify(n)
}

func releaseSlot(s *Slot) {
	if s.Preview != nil {
		s.Preview.Release()
		s.Preview = nil
	}
}

func fire(listeners []StateListener, prev, next State) {
	if prev == next {
		return
	}
	for _, l := range listeners {
		l(prev, next)
	}
}
