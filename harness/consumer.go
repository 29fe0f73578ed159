package harness

import "github.com/sarchlab/skidsim/signal"

// A Consumer drives the egress ready line according to a stall pattern and
// records every word it accepts.
type Consumer struct {
	pattern  Pattern
	accepted []signal.Word
}

// NewConsumer creates a consumer that asserts ready according to the pattern.
func NewConsumer(pattern Pattern) *Consumer {
	return &Consumer{
		pattern: pattern,
	}
}

// Drive returns the ready line the consumer presents at this tick.
func (c *Consumer) Drive(tick uint64) bool {
	return c.pattern.Assert(tick)
}

// Commit records the egress side of the tick. A word transfers when valid and
// ready were both high at the evaluation point.
func (c *Consumer) Commit(s signal.TickSample) {
	if s.EgressTransfer() && !s.Reset {
		c.accepted = append(c.accepted, s.TxData)
	}
}

// Accepted returns the words accepted so far, in arrival order.
func (c *Consumer) Accepted() []signal.Word {
	return c.accepted
}
