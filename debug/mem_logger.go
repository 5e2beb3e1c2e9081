package debug

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// StartMemLogger logs Go heap stats, process RSS where the platform reports
// it and held image bytes every interval until ctx is done. An RSS failure is
// logged once, later samples report rss=0.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, held HeldBytesFunc) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		rssWarned := false
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			rss, err := processRSS()
			if err != nil && !rssWarned {
				logger.Warn("memlog: rss unavailable", slog.String("err", err.Error()))
				rssWarned = true
			}
			logger.Info("memstats", memAttrs(rss, heldBytes(held))...)
		}
	}()
}

func memAttrs(rss uint64, held int64) []any {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return []any{
		slog.Int("goroutines", runtime.NumGoroutine()),
		slog.Uint64("heap_alloc", ms.HeapAlloc),
		slog.Uint64("heap_inuse", ms.HeapInuse),
		slog.Uint64("heap_sys", ms.HeapSys),
		slog.Uint64("next_gc", ms.NextGC),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
		slog.Uint64("rss", rss),
		slog.Int64("held_image_bytes", held),
	}
}
