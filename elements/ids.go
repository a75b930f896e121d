package elements

import "sync/atomic"

// IDGenerator produces unique, monotonically increasing overlay ids. Identity
// is assigned once at creation and never regenerated, so exported scripts are
// stable across repeated exports.
type IDGenerator interface {
	Next() int64
}

// CounterIDGenerator is an atomic counter. It replaces the original
// wall-clock timestamp ids so tests are deterministic.
type CounterIDGenerator struct {
	last atomic.Int64
}

// NewCounterIDGenerator returns a generator starting after seed.
func NewCounterIDGenerator(seed int64) *CounterIDGenerator {
	g := &CounterIDGenerator{}
	g.last.Store(seed)
	return g
}

// Next returns the next id.
func (g *CounterIDGenerator) Next() int64 {
	return g.last.Add(1)
}
