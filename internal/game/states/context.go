package states

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/abalone/internal/game/core"
)

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// StartTime is when the game started (PhaseRunning entered)
	StartTime time.Time

	// Winner is core.Empty until a player reaches the winning score
	Winner core.Occupant

	// MovesPlayed counts applied moves since the last setup
	MovesPlayed int

	// Metadata for custom state data
	Metadata map[string]interface{}
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:   gameID,
		Logger:   logger.With().Str("game_id", gameID).Logger(),
		Metadata: make(map[string]interface{}),
		Winner:   core.Empty,
	}
}

// HasWinner reports whether a winner has been recorded
func (gc *GameContext) HasWinner() bool {
	return gc.Winner != core.Empty
}

// GetElapsedTime returns the time elapsed since game start
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	return time.Since(gc.StartTime)
}

// SetMetadata stores custom data for states
func (gc *GameContext) SetMetadata(key string, value interface{}) {
	gc.Metadata[key] = value
}

// GetMetadata retrieves custom data stored by states
func (gc *GameContext) GetMetadata(key string) (interface{}, bool) {
	val, exists := gc.Metadata[key]
	return val, exists
}
