package ledger

import (
	"sync"

	"github.com/printbridge/printbridge/api/models"
)

// Ledger is the append-only record of print outcomes. Entries appear in the
// order their print attempts completed, which is the only consistently
// observable order across concurrent sessions. A non-zero capacity bounds
// retention: once full, each append drops the oldest entry.
type Ledger struct {
	mu       sync.RWMutex
	capacity int
	entries  []models.PrintJob
}

// New creates a ledger retaining at most capacity entries, 0 for unbounded
func New(capacity int) *Ledger {
	return &Ledger{capacity: capacity}
}

// Append records one completed print attempt
func (l *Ledger) Append(job models.PrintJob) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.capacity > 0 && len(l.entries) >= l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries[len(l.entries)-1] = job
		return
	}
	l.entries = append(l.entries, job)
}

// Snapshot returns all retained entries in append order. The copy is safe to
// hold across later appends.
func (l *Ledger) Snapshot() []models.PrintJob {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]models.PrintJob, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Len reports the number of retained entries
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
