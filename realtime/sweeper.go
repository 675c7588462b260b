package realtime

import (
	"context"
	"log/slog"
	"time"
)

// Default sweep cadence: entries idle for more than five seconds are
// treated as an implicit stop, checked every two seconds.
const (
	DefaultSweepInterval   = 2 * time.Second
	DefaultTypingThreshold = 5 * time.Second
)

// TypingSweeper is the single process-wide worker expiring stale typing
// entries. It guards against clients that disconnect mid-type without an
// explicit stop. Exactly one sweeper runs regardless of how many
// connections exist; it is supervised like any other worker.
type TypingSweeper struct {
	log       *slog.Logger
	typing    *Typing
	interval  time.Duration
	threshold time.Duration
}

func NewTypingSweeper(log *slog.Logger, typing *Typing, interval, threshold time.Duration) *TypingSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if threshold <= 0 {
		threshold = DefaultTypingThreshold
	}
	return &TypingSweeper{log: log, typing: typing, interval: interval, threshold: threshold}
}

func (w *TypingSweeper) Run(ctx context.Context) error {
	w.log.Info("Starting typing sweep worker", "interval", w.interval, "threshold", w.threshold)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if expired := w.typing.Expire(w.threshold); expired > 0 {
				w.log.Debug("typing entries expired by sweep", "count", expired)
			}
		}
	}
}
