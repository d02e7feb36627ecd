package diskusage

import "sync"

// tally counts probe outcomes for progress reporting. Workers update it
// concurrently, so every access takes the mutex.
type tally struct {
	mu      sync.Mutex
	entries int64
	bytes   int64
	errors  int64
}

// add records a successful probe of size bytes.
func (t *tally) add(size int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries++
	t.bytes += size
}

// addError increments the error counter.
func (t *tally) addError() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.errors++
}

// snapshot returns the entries and bytes counted so far.
func (t *tally) snapshot() (int64, int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.entries, t.bytes
}

func (t *tally) errorCount() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.errors
}
