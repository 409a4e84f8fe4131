package du

import (
	"errors"

	"go.uber.org/zap"
)

// ErrIncomplete reports that at least one directory could not be read.
// The totals are still printed; they exclude what could not be read.
var ErrIncomplete = errors.New("some directories could not be read")

// RunStats describes how one traversal of one directory went.
type RunStats struct {
	// Workers is the number of workers spawned (1 for the sequential engine).
	Workers int
	// Quiescence is the number of times a worker declared that no work was left.
	Quiescence int
	// ExitsAfterQuiescence counts workers that left after the declaration.
	ExitsAfterQuiescence int
	// Scanned is the number of directories taken off the queue and listed.
	Scanned int
	// Pushed is the number of directories discovered and queued by workers.
	Pushed int
}

// Usage is the outcome of walking one directory.
type Usage struct {
	// Blocks is the sum over every entry below the directory, not counting itself.
	Blocks int64
	// Failed is set when some directory in the tree could not be read.
	Failed bool
	// Stats holds traversal counters.
	Stats RunStats
}

// scanner carries what every engine needs to walk a tree.
type scanner struct {
	fsys     FS
	log      *zap.Logger
	onError  func(path string, err error)
	progress *progress
}

func newScanner(fsys FS, log *zap.Logger, onError func(string, error)) *scanner {
	if fsys == nil {
		fsys = OS{}
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &scanner{
		fsys:     fsys,
		log:      log,
		onError:  onError,
		progress: &progress{},
	}
}

// report forwards an unreadable directory to the diagnostic callback.
func (s *scanner) report(path string, err error) {
	s.log.Debug("cannot read directory", zap.String("path", path), zap.Error(err))

	if s.onError != nil {
		s.onError(path, err)
	}
}
