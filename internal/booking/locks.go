package booking

import "sync"

// Locks serializes booking transactions per staff member. Transactions on
// different staff never block each other; two on the same staff member run
// strictly one after the other, so the second one's re-check always observes
// the first one's write.
//
// Reads (slot generation, availability display) never take these locks.
type Locks struct {
	mu   sync.Mutex
	held map[int64]*sync.Mutex
}

func NewLocks() *Locks {
	return &Locks{held: make(map[int64]*sync.Mutex)}
}

// Acquire blocks until the staff member's lock is free and returns the
// release function. Entries are kept for the process lifetime; the staff
// population is small and bounded.
func (l *Locks) Acquire(staffID int64) (release func()) {
	l.mu.Lock()
	m, ok := l.held[staffID]
	if !ok {
		m = &sync.Mutex{}
		l.held[staffID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
