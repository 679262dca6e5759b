package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/abalone/internal/config"
	"github.com/mitchelldurbincs/abalone/internal/game"
	"github.com/mitchelldurbincs/abalone/internal/game/events"
	"github.com/mitchelldurbincs/abalone/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/abalone/internal/game/playout"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", os.Getenv("APP_ENV"), "Environment overlay to merge (config.<env>.yaml)")
	seed := flag.Uint64("seed", 0, "Random seed for self-play (0 to use config default)")
	maxMoves := flag.Int("max-moves", -1, "Stop after this many moves (-1 to use config default)")
	printEvery := flag.Int("print-every", -1, "Print the board every N moves (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	watch := flag.Bool("watch", false, "Reload the config file when it changes")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *seed == 0 {
		*seed = cfg.Demo.Seed
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	if *maxMoves == -1 {
		*maxMoves = cfg.Demo.MaxMoves
	}
	if *printEvery == -1 {
		*printEvery = cfg.Demo.PrintEvery
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	if *watch {
		config.WatchConfig(func(c *config.Config) {
			if level, err := zerolog.ParseLevel(c.Logging.Level); err == nil {
				zerolog.SetGlobalLevel(level)
			}
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded")
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *seed, *maxMoves, *printEvery); err != nil {
		log.Fatal().Err(err).Msg("Self-play failed")
	}
}

func run(ctx context.Context, cfg *config.Config, seed uint64, maxMoves, printEvery int) error {
	bus := events.NewEventBusWithLogger(log.Logger)
	bus.Subscribe(newEventLogger(cfg.Events))

	engine, err := game.NewEngine(ctx, game.GameConfig{
		Logger:   log.Logger,
		EventBus: bus,
	})
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	log.Info().
		Str("game_id", engine.GameID()).
		Uint64("seed", seed).
		Int("max_moves", maxMoves).
		Msg("Starting random self-play")

	showBoard := cfg.Demo.ShowBoard
	if showBoard {
		fmt.Printf("Game seed: %d\n", seed)
		fmt.Printf("Initial board:\n%s\n", engine.Board())
	}

	runner, err := playout.NewRunner(engine, rand.New(rand.NewSource(seed)), playout.Config{
		MaxMoves: maxMoves,
		Logger:   log.Logger,
		OnMove: func(s playout.Step) {
			if !showBoard {
				return
			}
			if len(s.Result.Ejected) == 0 && (printEvery == 0 || s.Number%printEvery != 0) {
				return
			}
			fmt.Printf("Move %d: %s %s %s towards %s (ejected: %d)\n",
				s.Number, s.Player.Label(), s.Move.Kind, s.Move.Selection, s.Move.Direction, len(s.Result.Ejected))
			fmt.Printf("%s\n", engine.Board())
		},
	})
	if err != nil {
		return err
	}

	out, err := runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Warn().Int("moves", out.Moves).Msg("Interrupted")
		return nil
	}
	if err != nil {
		return err
	}

	switch out.Reason {
	case playout.StopWinner:
		fmt.Printf("Game over! %s wins %d to %d after %d moves.\n",
			out.Winner.Label(), out.Scores.Of(out.Winner), out.Scores.Of(out.Winner.Opponent()), out.Moves)
	case playout.StopNoLegalMove:
		fmt.Printf("%s has no legal move after %d moves.\n", engine.Turn().Label(), out.Moves)
	default:
		fmt.Printf("Game reached maximum moves (%d). White %d, Black %d.\n", maxMoves, out.Scores.White, out.Scores.Black)
	}

	if showBoard {
		fmt.Printf("\nFinal board:\n%s", engine.Board())
	}
	stats := engine.Stats()
	log.Info().
		Int("white_on_board", stats.White.OnBoard).
		Int("black_on_board", stats.Black.OnBoard).
		Int("moves", stats.MoveCount).
		Int("marbles_ejected", engine.MarblesEjected()).
		Msg("Self-play finished")
	return nil
}

func newEventLogger(cfg config.EventsConfig) *subscribers.LoggerSubscriber {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	sub := subscribers.NewLoggerSubscriber("event-logger", log.Logger, level)
	sub.SetEventFilter(cfg.Filter)
	sub.SetDevMode(cfg.DevMode)
	return sub
}

func setupLogging(level, format string) {
	// Parse log level
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("APP_ENV") == "production" || format == "json" {
		// JSON output for production
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
