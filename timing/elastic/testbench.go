// Package elastic drives the decoupler under the Akita event engine. One
// Akita tick event evaluates one clock cycle of the device under test
// together with its two channel peers, so the whole handshake is sampled at a
// single evaluation point per cycle.
package elastic

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/skidsim/decoupler"
	"github.com/sarchlab/skidsim/harness"
	"github.com/sarchlab/skidsim/signal"
)

// A Testbench is an Akita ticking component that owns the decoupler, a
// producer model, a consumer model, and the conformance scoreboard. Each tick
// it samples the pre-tick outputs, runs both peers, feeds the scoreboard, and
// commits the decoupler's transition.
type Testbench struct {
	*sim.TickingComponent

	dut        *decoupler.Decoupler
	producer   *harness.Producer
	consumer   *harness.Consumer
	scoreboard *harness.Scoreboard
	tracer     *harness.Tracer

	clearTicks   map[uint64]bool
	resetWindows []harness.Window
	maxTicks     uint64
	tick         uint64
}

// Tick evaluates one clock cycle. It reports false once every offered word
// has drained or the tick budget is exhausted, which ends the simulation.
func (tb *Testbench) Tick() bool {
	if tb.tick >= tb.maxTicks {
		return false
	}

	if tb.producer.Done() && tb.dut.Resident() == 0 {
		return false
	}

	tick := tb.tick
	tb.tick++

	reset := tb.resetAsserted(tick)
	tb.dut.SetReset(reset)

	in := decoupler.Inputs{
		Clear: tb.clearTicks[tick],
	}

	// Pre-tick projections of the decoupler state. With reset held these
	// already show the forced reset values.
	rxReady := tb.dut.RxReady()
	txValid := tb.dut.TxValid()
	txData := tb.dut.TxData()

	// The producer sits in the same reset domain and drives nothing while
	// reset is held.
	if !reset {
		in.RxValid, in.RxData = tb.producer.Drive(tick)
	}

	in.TxReady = tb.consumer.Drive(tick)

	sample := signal.TickSample{
		Tick:    tick,
		RxValid: in.RxValid,
		RxData:  in.RxData,
		RxReady: rxReady,
		TxValid: txValid,
		TxData:  txData,
		TxReady: in.TxReady,
		Clear:   in.Clear,
		Reset:   reset,
	}

	tb.scoreboard.Observe(sample)

	if tb.tracer != nil {
		tb.tracer.TraceTick(sample)
	}

	tb.producer.Commit(sample.IngressTransfer())
	tb.consumer.Commit(sample)

	tb.dut.Tick(in)

	return true
}

func (tb *Testbench) resetAsserted(tick uint64) bool {
	for _, w := range tb.resetWindows {
		if w.Contains(tick) {
			return true
		}
	}

	return false
}

// CurrentTick returns the number of cycles evaluated so far.
func (tb *Testbench) CurrentTick() uint64 {
	return tb.tick
}

// DUT returns the decoupler under test.
func (tb *Testbench) DUT() *decoupler.Decoupler {
	return tb.dut
}

// Delivered returns the words the consumer accepted, in arrival order.
func (tb *Testbench) Delivered() []signal.Word {
	return tb.consumer.Accepted()
}

// Report returns the scoreboard's view of the run.
func (tb *Testbench) Report() harness.Report {
	return tb.scoreboard.Report()
}
