// Package uid provides a process-lifetime session tag.
//
// The tag is attached to outgoing requests as an opaque client marker.
// It is not a secure identifier.
package uid

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	multiplier = 2147483647
	modulus    = 10_000_000_000
)

// Generator computes a tag once and returns the cached value afterwards.
type Generator struct {
	clock  func() time.Time
	random func() float64

	once  sync.Once
	value int64
}

// New creates a generator with the given clock and random source.
// Nil arguments fall back to time.Now and rand.Float64.
func New(clock func() time.Time, random func() float64) *Generator {
	if clock == nil {
		clock = time.Now
	}
	if random == nil {
		random = rand.Float64
	}
	return &Generator{clock: clock, random: random}
}

// Get returns the tag, computing it on first use.
func (g *Generator) Get() int64 {
	g.once.Do(func() {
		g.value = compute(g.clock(), g.random())
	})
	return g.value
}

func compute(now time.Time, r float64) int64 {
	ms := int64(now.UTC().Nanosecond() / int(time.Millisecond))
	if ms == 0 {
		// A zero component would always yield a zero tag.
		ms = 1000
	}
	return int64(math.Round(multiplier*r)) * ms % modulus
}

var defaultGenerator = New(nil, nil)

// Get returns the process-wide tag.
func Get() int64 {
	return defaultGenerator.Get()
}
