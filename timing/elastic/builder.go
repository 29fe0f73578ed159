package elastic

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/skidsim/decoupler"
	"github.com/sarchlab/skidsim/harness"
)

// A TestbenchBuilder builds testbenches.
type TestbenchBuilder struct {
	engine   sim.Engine
	freq     sim.Freq
	config   *harness.Config
	producer *harness.Producer
	consumer *harness.Consumer
	tracer   *harness.Tracer
}

// MakeTestbenchBuilder creates a builder with a 1 GHz clock and the default
// run configuration.
func MakeTestbenchBuilder() TestbenchBuilder {
	return TestbenchBuilder{
		freq:   1 * sim.GHz,
		config: harness.DefaultConfig(),
	}
}

// WithEngine sets the event engine that drives the testbench.
func (b TestbenchBuilder) WithEngine(engine sim.Engine) TestbenchBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency.
func (b TestbenchBuilder) WithFreq(freq sim.Freq) TestbenchBuilder {
	b.freq = freq
	return b
}

// WithConfig sets the run configuration the stimulus is derived from.
func (b TestbenchBuilder) WithConfig(config *harness.Config) TestbenchBuilder {
	b.config = config
	return b
}

// WithProducer overrides the config-derived producer, for scripted scenarios.
func (b TestbenchBuilder) WithProducer(p *harness.Producer) TestbenchBuilder {
	b.producer = p
	return b
}

// WithConsumer overrides the config-derived consumer, for scripted scenarios.
func (b TestbenchBuilder) WithConsumer(c *harness.Consumer) TestbenchBuilder {
	b.consumer = c
	return b
}

// WithTracer attaches a per-tick signal tracer.
func (b TestbenchBuilder) WithTracer(t *harness.Tracer) TestbenchBuilder {
	b.tracer = t
	return b
}

// Build builds a testbench. The engine must be set.
func (b TestbenchBuilder) Build(name string) *Testbench {
	if b.engine == nil {
		panic("testbench requires an engine")
	}

	if err := b.config.Validate(); err != nil {
		panic(err)
	}

	tb := &Testbench{
		dut:        decoupler.New(b.config.Width),
		producer:   b.producer,
		consumer:   b.consumer,
		scoreboard: harness.NewScoreboard(),
		tracer:     b.tracer,
		maxTicks:   b.config.MaxTicks,
	}

	if tb.producer == nil {
		tb.producer = harness.NewProducer(
			b.config.WordSequence(), b.config.ProducerPattern())
	}

	if tb.consumer == nil {
		tb.consumer = harness.NewConsumer(b.config.ConsumerPattern())
	}

	tb.clearTicks = make(map[uint64]bool)
	for _, t := range b.config.ClearTicks {
		tb.clearTicks[t] = true
	}

	tb.resetWindows = b.config.ResetWindows

	tb.TickingComponent = sim.NewTickingComponent(
		name, b.engine, b.freq, tb)

	return tb
}
