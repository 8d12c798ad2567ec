package authform

import "sync"

// SubmitGuard allows one in-flight submission per key. The web frontend
// keys it by form session so a double click cannot send two requests.
type SubmitGuard struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

func NewSubmitGuard() *SubmitGuard {
	return &SubmitGuard{pending: make(map[string]struct{})}
}

// Acquire marks key as in flight. ok is false if it already was; otherwise
// release must be called once the submission finishes. release is
// idempotent.
func (g *SubmitGuard) Acquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.pending[key]; busy {
		return func() {}, false
	}
	g.pending[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.pending, key)
			g.mu.Unlock()
		})
	}, true
}

// Pending is the number of keys currently in flight.
func (g *SubmitGuard) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}
