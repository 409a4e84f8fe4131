package du

// tracker records, per worker, whether it is idle.
// Like workQueue it is guarded by the pool's mutex, so that a status change and
// a queue change are observed together.
type tracker struct {
	idle  []bool
	count int
}

// newTracker returns a tracker for exactly workers participants, all active.
func newTracker(workers int) *tracker {
	return &tracker{idle: make([]bool, workers)}
}

// setIdle marks worker id idle or active.
func (t *tracker) setIdle(id int, idle bool) {
	if t.idle[id] == idle {
		return
	}

	t.idle[id] = idle

	if idle {
		t.count++
	} else {
		t.count--
	}
}

// idleCount is the number of workers currently idle.
func (t *tracker) idleCount() int {
	return t.count
}

// size is the number of participants.
func (t *tracker) size() int {
	return len(t.idle)
}

// allIdle reports whether every participant is idle.
func (t *tracker) allIdle() bool {
	return t.count == len(t.idle)
}
