package harness

import "github.com/sarchlab/skidsim/signal"

// A Producer drives the ingress side of the handshake. It offers a fixed word
// sequence, gated by a stall pattern, and obeys the ingress stability
// contract: once a word is presented with valid high, both valid and data are
// held unchanged until the decoupler accepts the word.
type Producer struct {
	words   []signal.Word
	next    int
	pattern Pattern

	holding bool
	current signal.Word
}

// NewProducer creates a producer that offers the given words in order,
// asserting valid according to the pattern.
func NewProducer(words []signal.Word, pattern Pattern) *Producer {
	return &Producer{
		words:   words,
		pattern: pattern,
	}
}

// Drive returns the ingress pair the producer presents at this tick. A word
// already presented and not yet accepted is presented again unchanged.
func (p *Producer) Drive(tick uint64) (valid bool, data signal.Word) {
	if p.holding {
		return true, p.current
	}

	if p.next >= len(p.words) {
		return false, signal.Word{}
	}

	if !p.pattern.Assert(tick) {
		return false, signal.Word{}
	}

	p.current = p.words[p.next]
	p.holding = true

	return true, p.current
}

// Commit tells the producer whether the word it presented this tick was
// accepted (valid and ready both observed high at the evaluation point).
func (p *Producer) Commit(accepted bool) {
	if !p.holding || !accepted {
		return
	}

	p.holding = false
	p.next++
}

// Done reports whether every word has been accepted.
func (p *Producer) Done() bool {
	return p.next >= len(p.words) && !p.holding
}

// Accepted returns how many words have been accepted so far.
func (p *Producer) Accepted() int {
	return p.next
}
