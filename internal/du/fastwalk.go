package du

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

// walkFast walks root with fastwalk. Listing always goes to the host
// filesystem; only the block counts come from the scanner's FS.
func (s *scanner) walkFast(root string, workers int) (Usage, error) {
	var (
		blocks  atomic.Int64
		failed  atomic.Bool
		scanned atomic.Int64
	)

	if workers <= 0 {
		workers = fastwalk.DefaultNumWorkers()
	}

	// fastwalk trims trailing separators off root before calling back with it.
	cleanRoot := filepath.Clean(root)

	conf := &fastwalk.Config{
		Follow:     false, // Don't follow symlinks
		NumWorkers: workers,
	}

	err := fastwalk.Walk(conf, root, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory, reported after its own entry was counted.
			failed.Store(true)
			s.report(path, err)

			return nil
		}

		if filepath.Clean(path) == cleanRoot {
			return nil
		}

		entry, err := s.fsys.Stat(path)
		if err != nil {
			return fmt.Errorf("scanning %q: %w", path, err)
		}

		if entry.IsDir {
			scanned.Add(1)
		}

		blocks.Add(entry.Blocks)
		s.progress.add(entry.Blocks)

		return nil
	})
	if err != nil {
		return Usage{}, err
	}

	return Usage{
		Blocks: blocks.Load(),
		Failed: failed.Load(),
		Stats:  RunStats{Workers: workers, Scanned: int(scanned.Load()) + 1},
	}, nil
}
