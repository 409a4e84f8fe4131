package du

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// progress counts the entries inspected so far across all engines and workers.
// It is only read by the progress reporter; worker totals are kept separately.
type progress struct {
	entries atomic.Int64
	blocks  atomic.Int64
}

func (p *progress) add(blocks int64) {
	p.entries.Add(1)
	p.blocks.Add(blocks)
}

// startProgressReporter invokes hook(entries, bytes) on each tick until ctx is done.
// The returned channel is closed once hook will not be called again.
func startProgressReporter(
	ctx context.Context,
	p *progress,
	hook func(int64, int64),
	interval time.Duration,
) <-chan struct{} {
	done := make(chan struct{})

	if hook == nil {
		close(done)

		return done
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}

				hook(p.entries.Load(), p.blocks.Load()*BlockSize)
			case <-ctx.Done():
				return
			}
		}
	}()

	return done
}
