package du

import (
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// parallel walks root with a fresh pool of max(workers, 1) workers.
func (s *scanner) parallel(root string, workers int) (Usage, error) {
	start := time.Now()

	usage, err := newPool(s, root, workers).run()
	if err != nil {
		return Usage{}, err
	}

	s.log.Debug("parallel walk done",
		zap.String("root", root),
		zap.Int("workers", usage.Stats.Workers),
		zap.Int("scanned", usage.Stats.Scanned),
		zap.Int("pushed", usage.Stats.Pushed),
		zap.String("size", humanize.IBytes(uint64(usage.Blocks*BlockSize))), //nolint:gosec // Blocks are never negative
		zap.Duration("elapsed", time.Since(start)),
	)

	return usage, nil
}
