// Package main provides the SkidSim command line runner. It streams a
// randomized word sequence through the decoupler under the Akita engine and
// reports whether the run conserved every word.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/skidsim/harness"
	"github.com/sarchlab/skidsim/timing/elastic"
)

var (
	configPath = flag.String("config", "",
		"Path to a run configuration TOML file")
	width   = flag.Int("width", 0, "Override the data width in bits")
	words   = flag.Int("words", 0, "Override the number of words to stream")
	ticks   = flag.Uint64("ticks", 0, "Override the maximum tick count")
	seed    = flag.Int64("seed", 0, "Override the stimulus seed")
	verbose = flag.Bool("v", false, "Enable debug logging")
	trace   = flag.Bool("trace", false,
		"Log the full signal state of every tick (implies -v)")
)

func main() {
	flag.Parse()

	config, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "skidsim: %v\n", err)
		os.Exit(1)
	}

	logger := buildLogger(config)

	engine := sim.NewSerialEngine()

	builder := elastic.MakeTestbenchBuilder().
		WithEngine(engine).
		WithConfig(config)

	if *trace {
		builder = builder.WithTracer(harness.NewTracer(logger))
	}

	tb := builder.Build("Testbench")

	logger.Info().
		Int("width", config.Width).
		Int("words", config.Words).
		Uint64("max_ticks", config.MaxTicks).
		Int64("seed", config.Seed).
		Msg("starting run")

	tb.TickLater()

	if err := engine.Run(); err != nil {
		logger.Error().Err(err).Msg("engine failed")
		os.Exit(1)
	}

	report := tb.Report()
	stats := tb.DUT().Stats()

	logger.Info().
		Uint64("ticks", stats.Ticks).
		Uint64("accepted", report.Accepted).
		Uint64("emitted", report.Emitted).
		Uint64("discarded", report.Discarded).
		Int("pending", report.Pending).
		Uint64("skid_captures", stats.SkidCaptures).
		Uint64("stall_ticks", stats.StallTicks).
		Msg("run finished")

	if !report.Ok() {
		for _, v := range report.Violations {
			logger.Error().
				Uint64("tick", v.Tick).
				Str("kind", v.Kind.String()).
				Msg(v.Detail)
		}

		fmt.Println(report.Summary())
		os.Exit(1)
	}

	fmt.Println(report.Summary())
}

// loadConfig reads the TOML configuration, if given, and applies the command
// line overrides on top.
func loadConfig() (*harness.Config, error) {
	config := harness.DefaultConfig()

	if *configPath != "" {
		loaded, err := harness.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}

		config = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			config.Width = *width
		case "words":
			config.Words = *words
		case "ticks":
			config.MaxTicks = *ticks
		case "seed":
			config.Seed = *seed
		}
	})

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func buildLogger(config *harness.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(config.LogLevel); err == nil &&
		config.LogLevel != "" {
		level = parsed
	}

	if *verbose || *trace {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
