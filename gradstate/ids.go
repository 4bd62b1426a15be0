package gradstate

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// IDSource hands out identifiers for new color stops.
type IDSource interface {
	// NextID returns an id not used by any of the given stops.
	NextID(stops []ColorStop) string
}

// NumericIDs produces decimal ids: one more than the largest numeric id
// seen so far, either in the stops or previously returned.
// Non numeric ids are ignored. The zero value is ready to use and safe
// for concurrent use.
type NumericIDs struct {
	mu   sync.Mutex
	last int
}

func (g *NumericIDs) NextID(stops []ColorStop) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	next := g.last
	for _, stop := range stops {
		if n, err := strconv.Atoi(stop.ID); err == nil && n > next {
			next = n
		}
	}
	next++
	g.last = next
	return strconv.Itoa(next)
}

// UUIDs produces random (version 4) UUID strings.
type UUIDs struct{}

func (UUIDs) NextID([]ColorStop) string { return uuid.NewString() }
