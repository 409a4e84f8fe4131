package du

import "fmt"

// sequential walks root depth-first on the calling goroutine.
// Unreadable directories are reported and skipped, as in the parallel engine.
func (s *scanner) sequential(root string) (Usage, error) {
	usage := Usage{Stats: RunStats{Workers: 1}}

	if err := s.descend(root, &usage); err != nil {
		return Usage{}, err
	}

	return usage, nil
}

func (s *scanner) descend(dir string, usage *Usage) error {
	usage.Stats.Scanned++

	names, err := s.fsys.ReadDir(dir)
	if err != nil {
		usage.Failed = true
		s.report(dir, err)

		return nil
	}

	for _, name := range names {
		child := joinPath(dir, name)

		entry, err := s.fsys.Stat(child)
		if err != nil {
			return fmt.Errorf("scanning %q: %w", dir, err)
		}

		usage.Blocks += entry.Blocks
		s.progress.add(entry.Blocks)

		if entry.IsDir {
			usage.Stats.Pushed++

			if err := s.descend(child, usage); err != nil {
				return err
			}
		}
	}

	return nil
}
