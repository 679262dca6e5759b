package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/abalone/internal/game/events"
	"github.com/mitchelldurbincs/abalone/internal/game/rules"
	"github.com/mitchelldurbincs/abalone/internal/game/states"
)

// GameConfig holds the collaborators an Engine is built from. Zero values
// get defaults: a random game ID, a private event bus and the render options
// from the loaded configuration.
type GameConfig struct {
	GameID   string
	Logger   zerolog.Logger
	EventBus *events.EventBus
	Render   *RenderOptions
}

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates an engine with the board set up and the game running
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	ei.setupDefaults()

	engine := ei.createEngine()

	if err := engine.SetupBoard(); err != nil {
		return nil, fmt.Errorf("board setup failed: %w", err)
	}

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Int("cells", engine.gs.Board.Len()).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
		ei.logger.Debug().Str("game_id", ei.config.GameID).Msg("No game ID provided, generated one")
	}

	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBusWithLogger(ei.config.Logger)
	}

	if ei.config.Render == nil {
		opts := DefaultRenderOptions()
		ei.config.Render = &opts
	}
}

// createEngine wires the engine's components
func (ei *EngineInitializer) createEngine() *Engine {
	logger := ei.logger.With().Str("game_id", ei.config.GameID).Logger()

	transitions := &eventQueue{}
	gameContext := states.NewGameContext(ei.config.GameID, logger)
	stateMachine := states.NewStateMachine(gameContext, transitions)

	return &Engine{
		gs:            NewState(),
		transitions:   transitions,
		gameID:        ei.config.GameID,
		logger:        logger,
		eventBus:      ei.config.EventBus,
		stateMachine:  stateMachine,
		turnProcessor: NewTurnProcessor(rules.NewWinConditionChecker(logger), logger),
		legalMoves:    rules.NewLegalMoveCalculator(),
		render:        *ei.config.Render,
	}
}
