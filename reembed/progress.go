package reembed

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports how far a reembedding run has come. Reports are
// throttled to one line per reportInterval records; Finish always prints the
// final state. Safe for concurrent use.
type ProgressTracker struct {
	mu       sync.Mutex
	w        io.Writer
	total    int
	interval int
	done     int
	reported int
	begun    time.Time
	started  bool
}

// NewProgressTracker creates a tracker writing to w, typically os.Stderr.
// Nothing is printed until Start is called.
func NewProgressTracker(w io.Writer, total, reportInterval int) *ProgressTracker {
	return &ProgressTracker{w: w, total: total, interval: reportInterval}
}

// Start resets the tracker and begins timing.
func (t *ProgressTracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.begun = time.Now()
	t.done = 0
	t.reported = 0
	t.started = true
}

// Update sets the absolute number of completed records.
func (t *ProgressTracker) Update(done int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.advance(done)
}

// Increment adds n completed records.
func (t *ProgressTracker) Increment(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.advance(t.done + n)
}

// Finish forces a final report and terminates the progress line.
func (t *ProgressTracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return
	}
	t.done = t.total
	t.print()
	io.WriteString(t.w, "\n")
}

// Elapsed returns the time since Start, or zero before Start.
func (t *ProgressTracker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return 0
	}
	return time.Since(t.begun)
}

// advance moves the completion count forward, capped at the total, and
// prints once a full interval has passed since the last report. Callers
// hold the lock.
func (t *ProgressTracker) advance(done int) {
	if !t.started {
		return
	}
	if done > t.total {
		done = t.total
	}
	t.done = done
	if t.done-t.reported < t.interval {
		return
	}
	t.print()
	t.reported = t.done
}

// print emits one progress line over the previous one. Callers hold the
// lock.
func (t *ProgressTracker) print() {
	pct := 0.0
	if t.total > 0 {
		pct = float64(t.done) / float64(t.total) * 100
	}
	rate := 0.0
	if secs := time.Since(t.begun).Seconds(); secs > 0 {
		rate = float64(t.done) / secs
	}
	fmt.Fprintf(t.w, "\r%d/%d (%.1f%%) %.1f records/s", t.done, t.total, pct, rate)
}
