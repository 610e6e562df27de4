package engine

import (
	"time"
)

// Budget bounds an MCTS search by iteration count and wall-clock time.
// Whichever bound is reached first ends the search. A zero bound is ignored.
type Budget struct {
	maxIterations int
	timeLimit     time.Duration

	startTime  time.Time
	iterations int

	now func() time.Time
}

// NewBudget creates a budget. If both bounds are zero the default iteration
// cap applies so that a search always terminates.
func NewBudget(maxIterations int, timeLimit time.Duration) *Budget {
	if maxIterations <= 0 && timeLimit <= 0 {
		maxIterations = DefaultIterations
	}
	return &Budget{
		maxIterations: maxIterations,
		timeLimit:     timeLimit,
		now:           time.Now,
	}
}

// Start resets the counters for a new search.
func (b *Budget) Start() {
	b.startTime = b.now()
	b.iterations = 0
}

// Tick records one completed iteration.
func (b *Budget) Tick() {
	b.iterations++
}

// Exhausted reports whether another iteration may not start.
// It is only checked between iterations; a running iteration always completes.
func (b *Budget) Exhausted() bool {
	if b.maxIterations > 0 && b.iterations >= b.maxIterations {
		return true
	}
	if b.timeLimit > 0 && b.Elapsed() >= b.timeLimit {
		return true
	}
	return false
}

// Iterations returns the number of completed iterations.
func (b *Budget) Iterations() int {
	return b.iterations
}

// Elapsed returns the time since Start.
func (b *Budget) Elapsed() time.Duration {
	return b.now().Sub(b.startTime)
}
