package du

// workQueue is a LIFO stack of directories waiting to be scanned.
//
// It does no locking of its own: once workers run, every call must be made with
// the owning pool's mutex held. Seeding before the workers start needs no lock.
type workQueue struct {
	dirs []string
}

// push adds dir on top of the stack.
func (q *workQueue) push(dir string) {
	q.dirs = append(q.dirs, dir)
}

// pop removes and returns the most recently pushed directory.
// Callers check empty first; popping an empty queue panics.
func (q *workQueue) pop() string {
	n := len(q.dirs) - 1
	if n < 0 {
		panic("du: pop from empty work queue")
	}

	dir := q.dirs[n]
	q.dirs[n] = ""
	q.dirs = q.dirs[:n]

	return dir
}

func (q *workQueue) empty() bool {
	return len(q.dirs) == 0
}

func (q *workQueue) len() int {
	return len(q.dirs)
}
