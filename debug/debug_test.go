package debug

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLoggersReportHeldBytes(t *testing.T) {
	out := &syncBuffer{}
	logger := slog.New(slog.NewJSONHandler(out, nil))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	held := func() int64 { return 4096 }
	StartGoroutineLogger(ctx, 5*time.Millisecond, logger, held)
	StartMemLogger(ctx, 5*time.Millisecond, logger, held)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s := out.String()
		if strings.Contains(s, `"msg":"goroutine-stacks"`) && strings.Contains(s, `"msg":"memstats"`) {
			if !strings.Contains(s, `"held_image_bytes":4096`) {
				t.Fatalf("held bytes missing: %s", s)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("loggers produced no output: %s", out.String())
}

func TestMemAttrs_IncludesHeldAndRSS(t *testing.T) {
	attrs := memAttrs(123, 77)
	var gotRSS, gotHeld bool
	for _, a := range attrs {
		attr := a.(slog.Attr)
		switch attr.Key {
		case "rss":
			gotRSS = attr.Value.Uint64() == 123
		case "held_image_bytes":
			gotHeld = attr.Value.Int64() == 77
		}
	}
	if !gotRSS || !gotHeld {
		t.Fatalf("missing attrs: %v", attrs)
	}
}
