// Package simulate produces the randomized outcomes of the demo: application
// statuses and handoff ticket numbers.
package simulate

import (
	"math/rand/v2"
	"strconv"
	"sync"
)

// Statuses are the possible simulated application statuses.
var Statuses = []string{"Received", "Under Review", "Interview Scheduled", "Offer in Progress"}

// Ticket numbers are drawn from [ticketMin, ticketMin+ticketSpan).
const (
	ticketMin  = 1000
	ticketSpan = 9000
)

// Source returns a pseudo-random int in [0, n). Implementations used by the
// dispatcher must be safe for concurrent use.
type Source interface {
	IntN(n int) int
}

// globalSource uses the runtime-seeded math/rand/v2 generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Default returns a concurrency-safe source backed by math/rand/v2.
func Default() Source { return globalSource{} }

// Sequence replays fixed values, each taken modulo n. It is meant for tests.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequence creates a Sequence cycling through values.
func NewSequence(values ...int) *Sequence {
	if len(values) == 0 {
		values = []int{0}
	}
	return &Sequence{values: values}
}

// IntN implements Source.
func (s *Sequence) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Status picks a simulated application status.
func Status(src Source) string {
	return Statuses[src.IntN(len(Statuses))]
}

// Ticket returns a simulated handoff ticket such as HR-4821.
func Ticket(src Source) string {
	return "HR-" + strconv.Itoa(ticketMin+src.IntN(ticketSpan))
}
