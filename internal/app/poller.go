package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/timemap/cardstack/internal/state"
	"github.com/timemap/cardstack/internal/timemap"
)

// maxBackoff caps the poll interval after repeated failures.
const maxBackoff = 5 * time.Minute

// StartPoller launches a background goroutine that reloads the domain at a
// fixed cadence, backing off while loads fail. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, fetcher timemap.Fetcher, interval time.Duration, logger *slog.Logger) {
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(ctx, store, fetcher, logger)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

// calculateBackoff doubles the base interval for each consecutive failure,
// up to maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

func refresh(ctx context.Context, store *state.Store, fetcher timemap.Fetcher, logger *slog.Logger) {
	domain, err := fetcher.FetchDomain(ctx)
	if err != nil {
		store.Update(nil, err)
		logger.Warn("domain load failed", "error", err)
		return
	}
	store.Update(domain, nil)
	logger.Debug("domain loaded",
		"events", len(domain.Events),
		"sources", len(domain.Sources),
		"associations", len(domain.Associations),
	)
}
