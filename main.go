package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirOrange17/connect4/engine"
	"github.com/sirOrange17/connect4/experiments"
	"github.com/sirOrange17/connect4/meta"
	"github.com/sirOrange17/connect4/searcher"
	"github.com/sirOrange17/connect4/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	iterations := flag.Int("iterations", meta.Iterations, "Number of playouts per AI move")
	workers := flag.Int("workers", meta.Workers, "Number of goroutines searching in parallel")
	seed := flag.Uint64("seed", 0, "Seed for reproducible search (0 seeds from the OS)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	experiment := flag.Bool("experiment", false, "Run the parallelization self-play experiment")
	games := flag.Int("games", meta.Games, "Games per experiment match up")
	out := flag.String("out", meta.OutputDir, "Directory for experiment records")
	flag.Parse()

	config, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// Flags given explicitly win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "iterations":
			config.Iterations = *iterations
		case "workers":
			config.Workers = *workers
		case "seed":
			config.Seed = *seed
		case "log-level":
			config.LogLevel = *logLevel
		case "games":
			config.Games = *games
		case "out":
			config.OutputDir = *out
		}
	})
	if err := config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	setupLogging(config.LogLevel)

	if *experiment {
		x := experiments.ParallelizationExperiment(config.Games, config.Iterations, config.Seed)
		if _, err := x.Run(config.OutputDir); err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		return
	}

	if err := play(config); err != nil && !errors.Is(err, agent.ErrQuit) {
		log.Fatal().Err(err).Msg("game aborted")
	}
}

func loadConfig(path string) (meta.Config, error) {
	if path == "" {
		return meta.DefaultConfig(), nil
	}
	return meta.LoadConfig(path)
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
	}
}

// play runs an interactive game where both seats read from the console and
// either can hand the turn to the AI.
func play(config meta.Config) error {
	options := []searcher.Option{searcher.WithIterations(config.Iterations)}
	if config.Seed != 0 {
		options = append(options, searcher.WithSeed(config.Seed))
	}
	ai := agent.NewEvaluationAgent(config.Workers, options...)
	console := agent.NewConsoleAgent(os.Stdin, os.Stdout, ai)

	_, _, _, err := engine.NewLocalEngine([2]agent.Agent{console, console}, os.Stdout).Run()
	return err
}
