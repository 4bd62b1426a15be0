package gradstate

import (
	"sync"

	"github.com/benoitkugler/okgrad"
)

// Store owns the current snapshot of an editing session.
// Every edit goes through Dispatch, which computes the next snapshot
// with Reduce and then notifies the subscribers. Readers only ever get
// copies, so a Store may be shared between goroutines.
type Store struct {
	mu       sync.RWMutex
	state    State
	ids      IDSource
	minStops int

	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(State)
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithIDSource sets the generator of new stop ids.
// The default is a NumericIDs.
func WithIDSource(ids IDSource) StoreOption {
	return func(s *Store) { s.ids = ids }
}

// WithMinStops changes the number of stops RemoveColorStop must leave.
// Zero disables the check.
func WithMinStops(n int) StoreOption {
	return func(s *Store) { s.minStops = n }
}

// NewStore returns a store starting at a copy of initial.
func NewStore(initial State, opts ...StoreOption) *Store {
	s := &Store{state: initial.Clone(), ids: &NumericIDs{}, minStops: MinColorStops}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Dispatch applies a and returns the new snapshot.
// Removing a stop when only the minimum number is left fails with
// ErrTooFewStops and leaves the state unchanged.
func (s *Store) Dispatch(a Action) (State, error) {
	s.mu.Lock()
	if rm, ok := a.(RemoveColorStop); ok && s.minStops > 0 {
		if _, has := s.state.Stop(rm.ID); has && len(s.state.ColorStops) <= s.minStops {
			current := s.state.Clone()
			s.mu.Unlock()
			return current, ErrTooFewStops
		}
	}
	next, err := Reduce(s.state, a, s.ids)
	if err != nil {
		current := s.state.Clone()
		s.mu.Unlock()
		return current, err
	}
	s.state = next
	subs := append([]subscriber(nil), s.subs...)
	s.mu.Unlock()

	okgrad.Logger().Debug("gradient state updated", "action", Describe(a))
	for _, sub := range subs {
		sub.fn(next.Clone())
	}
	return next.Clone(), nil
}

// Subscribe registers fn to be called with every new snapshot, in
// registration order, after the edit is committed. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
