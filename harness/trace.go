package harness

import (
	"github.com/rs/zerolog"

	"github.com/sarchlab/skidsim/signal"
)

// A Tracer logs the full wire state of every tick at debug level. It stands
// in for the waveform dump a hardware testbench would produce.
type Tracer struct {
	logger zerolog.Logger
}

// NewTracer creates a tracer writing to the given logger.
func NewTracer(logger zerolog.Logger) *Tracer {
	return &Tracer{logger: logger}
}

// TraceTick logs one tick's sample.
func (t *Tracer) TraceTick(s signal.TickSample) {
	t.logger.Debug().
		Uint64("tick", s.Tick).
		Bool("rx_valid", s.RxValid).
		Str("rx_data", s.RxData.String()).
		Bool("rx_ready", s.RxReady).
		Bool("tx_valid", s.TxValid).
		Str("tx_data", s.TxData.String()).
		Bool("tx_ready", s.TxReady).
		Bool("clear", s.Clear).
		Bool("reset", s.Reset).
		Msg("tick")
}
