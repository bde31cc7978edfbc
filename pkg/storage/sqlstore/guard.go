package sqlstore

import "sync"

// Guard serializes access to the shared database connection. At most one
// store operation runs at a time process-wide; Do never re-enters itself.
type Guard struct {
	mu sync.Mutex
}

// NewGuard creates an unlocked guard
func NewGuard() *Guard {
	return &Guard{}
}

// Do runs fn while holding the guard. The guard is released on every exit
// path, including panics.
func (g *Guard) Do(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn()
}
