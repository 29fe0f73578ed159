package harness

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/sarchlab/skidsim/signal"
)

// Config holds the parameters of one testbench run.
type Config struct {
	// Width is the data width in bits. Must be at least 1.
	Width int `toml:"width"`

	// Words is the number of random words the producer offers.
	Words int `toml:"words"`

	// MaxTicks caps the run length; the run also ends early once every
	// word has drained.
	MaxTicks uint64 `toml:"max_ticks"`

	// Seed drives every randomized pattern and the word sequence.
	Seed int64 `toml:"seed"`

	// ValidProbability is the per-tick probability that the producer
	// offers its next word. 1.0 streams back to back.
	ValidProbability float64 `toml:"valid_probability"`

	// ReadyProbability is the per-tick probability that the consumer
	// asserts ready. 1.0 never stalls.
	ReadyProbability float64 `toml:"ready_probability"`

	// ConsumerStalls scripts deterministic backpressure windows. When
	// set, it replaces ReadyProbability.
	ConsumerStalls []Window `toml:"consumer_stalls"`

	// ClearTicks lists ticks at which the synchronous clear is pulsed.
	ClearTicks []uint64 `toml:"clear_ticks"`

	// ResetWindows lists tick ranges during which the hard reset is held.
	ResetWindows []Window `toml:"reset_windows"`

	// LogLevel selects the zerolog level for the run log.
	LogLevel string `toml:"log_level"`

	// Trace enables the per-tick signal trace at debug level.
	Trace bool `toml:"trace"`
}

// DefaultConfig returns a configuration for a short randomized run.
func DefaultConfig() *Config {
	return &Config{
		Width:            8,
		Words:            256,
		MaxTicks:         4096,
		Seed:             1,
		ValidProbability: 0.75,
		ReadyProbability: 0.75,
		LogLevel:         "info",
	}
}

// LoadConfig loads a Config from a TOML file. Fields absent from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to parse run config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes the Config to a TOML file.
func (c *Config) SaveConfig(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for values the testbench cannot run with.
func (c *Config) Validate() error {
	if c.Width < 1 {
		return fmt.Errorf("width must be at least 1, got %d", c.Width)
	}

	if c.Words < 0 {
		return fmt.Errorf("words must not be negative, got %d", c.Words)
	}

	if c.MaxTicks == 0 {
		return fmt.Errorf("max_ticks must be at least 1")
	}

	if c.ValidProbability < 0 || c.ValidProbability > 1 {
		return fmt.Errorf("valid_probability must be in [0, 1], got %g",
			c.ValidProbability)
	}

	if c.ReadyProbability < 0 || c.ReadyProbability > 1 {
		return fmt.Errorf("ready_probability must be in [0, 1], got %g",
			c.ReadyProbability)
	}

	return nil
}

// WordSequence generates the word sequence the producer offers, derived
// deterministically from the seed.
func (c *Config) WordSequence() []signal.Word {
	rng := rand.New(rand.NewSource(c.Seed))

	words := make([]signal.Word, c.Words)
	for i := range words {
		words[i] = signal.Random(c.Width, rng)
	}

	return words
}

// ProducerPattern builds the valid-line pattern from the configuration.
func (c *Config) ProducerPattern() Pattern {
	if c.ValidProbability >= 1 {
		return Always()
	}

	return Bernoulli(c.ValidProbability, c.Seed+1)
}

// ConsumerPattern builds the ready-line pattern from the configuration.
// Scripted stall windows take precedence over the randomized pattern.
func (c *Config) ConsumerPattern() Pattern {
	if len(c.ConsumerStalls) > 0 {
		return Windows(true, c.ConsumerStalls...)
	}

	if c.ReadyProbability >= 1 {
		return Always()
	}

	return Bernoulli(c.ReadyProbability, c.Seed+2)
}
