package du

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// pool is one parallel traversal of one directory tree.
//
// Every field below mu is guarded by it. The queue and the tracker share the
// lock so that "queue empty and everyone idle" is a single observation.
type pool struct {
	*scanner

	mu        sync.Mutex
	cond      *sync.Cond
	queue     workQueue
	tracker   *tracker
	quiescent bool
	failed    bool
	err       error
	stats     RunStats
}

// newPool prepares a run over root with max(workers, 1) participants.
func newPool(s *scanner, root string, workers int) *pool {
	workers = max(workers, 1)

	p := &pool{
		scanner: s,
		tracker: newTracker(workers),
		stats:   RunStats{Workers: workers},
	}
	p.cond = sync.NewCond(&p.mu)

	// No worker exists yet.
	p.queue.push(root)

	return p
}

// run spawns the workers, waits for all of them and sums their totals.
func (p *pool) run() (Usage, error) {
	sums := make([]int64, p.tracker.size())

	var g errgroup.Group

	for id := range sums {
		g.Go(func() error {
			blocks, err := p.worker(id)
			sums[id] = blocks

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return Usage{}, err
	}

	var total int64
	for _, blocks := range sums {
		total += blocks
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return Usage{Blocks: total, Failed: p.failed, Stats: p.stats}, nil
}

// worker drains the queue until quiescence or abort and returns the blocks of
// every entry it inspected.
func (p *pool) worker(id int) (int64, error) {
	var blocks int64

	for {
		dir, ok := p.next(id)
		if !ok {
			return blocks, nil
		}

		names, err := p.fsys.ReadDir(dir)
		if err != nil {
			p.fail(dir, err)

			continue
		}

		for _, name := range names {
			child := joinPath(dir, name)

			entry, err := p.fsys.Stat(child)
			if err != nil {
				err = fmt.Errorf("scanning %q: %w", dir, err)
				p.abort(err)

				return blocks, err
			}

			blocks += entry.Blocks
			p.progress.add(entry.Blocks)

			if entry.IsDir {
				p.push(child)
			}
		}
	}
}

// next blocks until a directory is available for worker id, or returns false
// once the run is over.
func (p *pool) next(id int) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.queue.empty() {
		if p.quiescent || p.err != nil {
			return p.leaveLocked(id)
		}

		p.tracker.setIdle(id, true)

		if p.tracker.allIdle() {
			p.quiescent = true
			p.stats.Quiescence++
			p.log.Debug("quiescence reached",
				zap.Int("worker", id),
				zap.Int("idle", p.tracker.idleCount()),
			)
			p.cond.Broadcast()

			return p.leaveLocked(id)
		}

		p.cond.Wait()
	}

	if p.err != nil {
		return p.leaveLocked(id)
	}

	p.tracker.setIdle(id, false)
	p.stats.Scanned++

	return p.queue.pop(), true
}

// leaveLocked records the exit of worker id. mu must be held.
func (p *pool) leaveLocked(id int) (string, bool) {
	if p.quiescent {
		p.stats.ExitsAfterQuiescence++
	}

	p.log.Debug("worker done", zap.Int("worker", id), zap.Bool("aborted", p.err != nil))

	return "", false
}

// push queues a discovered directory and wakes one waiting worker.
func (p *pool) push(dir string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue.push(dir)
	p.stats.Pushed++
	p.cond.Signal()
}

// fail marks the run as incomplete and reports dir.
func (p *pool) fail(dir string, err error) {
	p.mu.Lock()
	p.failed = true
	p.mu.Unlock()

	p.report(dir, err)
}

// abort stops the run on a fatal error. Only the first error is kept.
func (p *pool) abort(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err == nil {
		p.err = err
	}

	p.cond.Broadcast()
}
