package decoupler

import "github.com/sarchlab/skidsim/signal"

// Stats holds running counters for one decoupler instance.
type Stats struct {
	// Ticks is the number of clock ticks evaluated, including ticks spent
	// in reset.
	Ticks uint64
	// Accepted is the number of words accepted on ingress.
	Accepted uint64
	// Emitted is the number of words accepted by the consumer on egress.
	Emitted uint64
	// SkidCaptures is the number of words that had to be parked in the
	// skid slot.
	SkidCaptures uint64
	// StallTicks is the number of ticks the decoupler held RxReady low.
	StallTicks uint64
	// Clears is the number of ticks the synchronous clear was sampled
	// high.
	Clears uint64
	// Resets is the number of times the hard reset line was asserted.
	Resets uint64
}

// A Decoupler owns one live State and advances it tick by tick. The state is
// exclusively owned: outside code observes it only through the derived
// outputs RxReady, TxValid, and TxData.
type Decoupler struct {
	width int
	reset bool
	state State
	stats Stats
}

// New creates a decoupler for words of the given width (width >= 1) in its
// hard-reset state.
func New(width int) *Decoupler {
	return &Decoupler{
		width: width,
		state: ResetState(width),
	}
}

// Width returns the data width the decoupler was built for.
func (d *Decoupler) Width() int {
	return d.width
}

// SetReset drives the level-sensitive hard reset line. Asserting it forces
// the reset state immediately, independent of the clock; while it is held,
// every tick re-applies the reset state and the ordinary rules do not run.
func (d *Decoupler) SetReset(asserted bool) {
	if asserted && !d.reset {
		d.stats.Resets++
		d.state = ResetState(d.width)
	}

	d.reset = asserted
}

// ResetAsserted reports whether the hard reset line is currently held.
func (d *Decoupler) ResetAsserted() bool {
	return d.reset
}

// Tick evaluates one clock tick: it samples the inputs against the pre-tick
// state and commits the next state as a whole.
func (d *Decoupler) Tick(in Inputs) {
	d.stats.Ticks++

	if d.reset {
		d.state = ResetState(d.width)
		return
	}

	if !d.state.RxReady {
		d.stats.StallTicks++
	}

	if in.RxValid && d.state.RxReady {
		d.stats.Accepted++
	}

	if d.state.TxValid && in.TxReady {
		d.stats.Emitted++
	}

	if in.Clear {
		d.stats.Clears++
	} else if !in.TxReady && d.state.RxReady && d.state.TxValid && in.RxValid {
		d.stats.SkidCaptures++
	}

	d.state = Next(d.state, in)
}

// RxReady returns the registered ingress ready output.
func (d *Decoupler) RxReady() bool {
	return d.state.RxReady
}

// TxValid returns the registered egress valid output.
func (d *Decoupler) TxValid() bool {
	return d.state.TxValid
}

// TxData returns the registered egress data output. Its content is only
// meaningful while TxValid is high.
func (d *Decoupler) TxData() signal.Word {
	return d.state.TxData
}

// State returns a copy of the full register state, for tests and debugging.
func (d *Decoupler) State() State {
	return d.state
}

// Resident returns how many words are currently held, between 0 and 2.
func (d *Decoupler) Resident() int {
	n := 0
	if d.state.TxValid {
		n++
	}

	if d.state.SkidActive {
		n++
	}

	return n
}

// Stats returns a copy of the running counters.
func (d *Decoupler) Stats() Stats {
	return d.stats
}
