package board

import "context"

// mutate runs a compensating-action optimistic mutation: apply the local
// change, attempt the remote call, and undo the change if the call fails.
// The applied value is guaranteed visible (generation bumped) before the
// remote call is dispatched; the compensation is guaranteed visible before
// the failure is reported. There is no retry — compensation writes the full
// previous value, never a diff, so consumers observe exactly one of the two
// states at any time.
func (s *Store) mutate(ctx context.Context, apply, compensate func(), remote func(ctx context.Context) error) bool {
	s.mu.Lock()
	apply()
	s.generation++
	s.mu.Unlock()

	if err := remote(ctx); err != nil {
		s.mu.Lock()
		compensate()
		s.generation++
		s.mu.Unlock()
		return false
	}
	return true
}
