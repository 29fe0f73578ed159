// Package harness provides the testbench surrounding the decoupler: stimulus
// models for the two channel peers, a conformance scoreboard, stall patterns,
// and run configuration.
package harness

import "math/rand"

// A Pattern decides, tick by tick, whether a handshake line is asserted.
// Patterns are queried exactly once per tick, in ascending tick order, so
// randomized patterns are deterministic for a given seed.
type Pattern interface {
	Assert(tick uint64) bool
}

type constantPattern bool

func (p constantPattern) Assert(_ uint64) bool {
	return bool(p)
}

// Always returns a pattern that asserts the line on every tick.
func Always() Pattern {
	return constantPattern(true)
}

// Never returns a pattern that never asserts the line.
func Never() Pattern {
	return constantPattern(false)
}

type bernoulliPattern struct {
	p   float64
	rng *rand.Rand
}

// Bernoulli returns a pattern that asserts the line with probability p on
// each tick, drawn from a dedicated source seeded with seed.
func Bernoulli(p float64, seed int64) Pattern {
	return &bernoulliPattern{
		p:   p,
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (b *bernoulliPattern) Assert(_ uint64) bool {
	return b.rng.Float64() < b.p
}

// A Window is a half-open tick range [From, To).
type Window struct {
	From uint64 `toml:"from"`
	To   uint64 `toml:"to"`
}

// Contains reports whether the tick falls inside the window.
func (w Window) Contains(tick uint64) bool {
	return tick >= w.From && tick < w.To
}

type windowPattern struct {
	base    bool
	windows []Window
}

// Windows returns a pattern that holds the line at base and inverts it inside
// the given tick windows. Windows(true, w) models a line that is normally
// asserted with scripted stalls during w.
func Windows(base bool, windows ...Window) Pattern {
	return &windowPattern{
		base:    base,
		windows: windows,
	}
}

func (p *windowPattern) Assert(tick uint64) bool {
	for _, w := range p.windows {
		if w.Contains(tick) {
			return !p.base
		}
	}

	return p.base
}
