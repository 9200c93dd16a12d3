package eval

import "sync"

// Scope is the session's persistent mapping of single-letter variable
// names to values. It is an explicit object passed into every
// evaluation, not package state; "clear canvas" resets it. Access is
// serialized so an assignment's write cannot interleave with another
// evaluation's reads.
type Scope struct {
	mu   sync.Mutex
	vars map[string]float64
}

func NewScope() *Scope {
	return &Scope{vars: make(map[string]float64)}
}

// Get looks up a variable.
func (s *Scope) Get(name string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vars[name]
	return v, ok
}

// Set writes a variable. Only successful assignment evaluation calls
// this.
func (s *Scope) Set(name string, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[name] = v
}

// Reset empties the scope.
func (s *Scope) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars = make(map[string]float64)
}

// Snapshot copies the current bindings for use as evaluation
// parameters.
func (s *Scope) Snapshot() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]interface{}, len(s.vars))
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}
