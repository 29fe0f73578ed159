// Package decoupler models a two-slot elastic buffer for valid/ready
// handshake streams. It breaks the combinational dependency between a
// producer's valid/data path and a consumer's ready path: each side's logic
// can be evaluated on its own, at the cost of one extra storage slot and at
// most one tick of added latency, with no loss, duplication, or reordering
// of words.
package decoupler

import "github.com/sarchlab/skidsim/signal"

// State is the full register state of the decoupler: the main output slot
// (TxData, occupied while TxValid), the skid slot (SkidBuffer, occupied while
// SkidActive), and the registered backpressure line (RxReady).
//
// Outside of a reset tick the state obeys three invariants: at most two words
// are resident, SkidActive implies TxValid, and a word presented on egress is
// never overwritten before the consumer accepts it.
type State struct {
	SkidActive bool
	SkidBuffer signal.Word
	RxReady    bool
	TxValid    bool
	TxData     signal.Word
}

// Inputs are the signals sampled at one tick's evaluation point.
type Inputs struct {
	// RxValid and RxData form the producer side of the ingress handshake.
	// The producer must hold both stable while RxValid is asserted and the
	// decoupler's RxReady is low.
	RxValid bool
	RxData  signal.Word

	// TxReady is the consumer side of the egress handshake.
	TxReady bool

	// Clear is the synchronous clear line. When sampled high, it forces
	// the control state idle and discards any resident words.
	Clear bool
}

// ResetState returns the hard-reset state for the given data width: control
// idle, ready to accept, and both data registers zeroed.
func ResetState(width int) State {
	return State{
		SkidActive: false,
		SkidBuffer: signal.Zero(width),
		RxReady:    true,
		TxValid:    false,
		TxData:     signal.Zero(width),
	}
}

// Next computes the state after one clock tick. It is a pure function: every
// next-value below reads only the pre-tick state s and the inputs in, never a
// neighbouring field's newly computed value. Callers that keep live state
// must commit the returned tuple as a whole.
//
// Each field follows a priority-ordered rule list; the first rule whose guard
// holds wins, and a field with no matching rule keeps its previous value.
func Next(s State, in Inputs) State {
	if in.Clear {
		// The synchronous clear silences the control state but leaves
		// stale bits in the data registers. TxValid=false already
		// marks them unobservable, so the registers are not zeroed.
		n := s
		n.SkidActive = false
		n.RxReady = true
		n.TxValid = false

		return n
	}

	n := s

	// The skid slot drains whenever the consumer accepts, and fills when a
	// word arrives while the output slot is already presenting one.
	switch {
	case in.TxReady:
		n.SkidActive = false
	case s.RxReady && s.TxValid && in.RxValid:
		n.SkidActive = true
	}

	// RxReady rises the tick the consumer drains, including the tick the
	// skid slot empties back into the output slot. It drops on the same
	// tick a word is accepted into an already-presenting output slot, so
	// the producer never sends a word that has no place to land.
	switch {
	case in.TxReady:
		n.RxReady = true
	case (in.RxValid && s.TxValid) || s.SkidActive:
		n.RxReady = false
	}

	// TxValid rises when a word lands in the main or skid slot, and falls
	// only when the output drains with nothing refilling it.
	switch {
	case (in.RxValid && s.RxReady) || s.SkidActive:
		n.TxValid = true
	case s.TxValid && in.TxReady:
		n.TxValid = false
	}

	// The skid slot holds the older word, so it refills the output slot
	// ahead of fresh ingress data.
	switch {
	case s.SkidActive && in.TxReady:
		n.TxData = s.SkidBuffer
	case in.RxValid && s.RxReady && (!s.TxValid || in.TxReady):
		n.TxData = in.RxData
	}

	// The skid buffer captures exactly on the tick where the output slot
	// is occupied, the consumer is not draining it, and a new word is
	// arriving. Any other choice on that tick would lose the word.
	if !in.TxReady && s.RxReady && s.TxValid && in.RxValid {
		n.SkidBuffer = in.RxData
	}

	return n
}
