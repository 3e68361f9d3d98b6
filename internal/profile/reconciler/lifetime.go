package reconciler

import "sync/atomic"

// Lifetime is the liveness token for one editing session. When the owner
// loses interest (screen dismissed, session over) it calls End; any response
// arriving afterwards is dropped instead of mutating shared state.
type Lifetime struct {
	ended atomic.Bool
}

func NewLifetime() *Lifetime {
	return &Lifetime{}
}

// End marks the session over. Idempotent.
func (l *Lifetime) End() {
	l.ended.Store(true)
}

// Alive reports whether state updates are still wanted.
func (l *Lifetime) Alive() bool {
	return l == nil || !l.ended.Load()
}
