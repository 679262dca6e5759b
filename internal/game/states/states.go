package states

import (
	"errors"
	"time"

	"github.com/mitchelldurbincs/abalone/internal/game/core"
)

// InitializingState represents an engine waiting for its board to be set up
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() GamePhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(ctx *GameContext) error {
	return nil
}

// RunningState represents active gameplay
type RunningState struct{}

func NewRunningState() State {
	return &RunningState{}
}

func (s *RunningState) Phase() GamePhase {
	return PhaseRunning
}

func (s *RunningState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.MovesPlayed = 0
	ctx.Logger.Info().
		Time("start_time", ctx.StartTime).
		Msg("Game started")
	return nil
}

func (s *RunningState) Exit(ctx *GameContext) error {
	ctx.Logger.Info().
		Dur("elapsed", ctx.GetElapsedTime()).
		Int("moves_played", ctx.MovesPlayed).
		Msg("Exiting running state")
	return nil
}

func (s *RunningState) Validate(ctx *GameContext) error {
	if ctx.HasWinner() {
		return errors.New("cannot run a game that already has a winner")
	}
	return nil
}

// EndedState represents a game with a declared winner
type EndedState struct{}

func NewEndedState() State {
	return &EndedState{}
}

func (s *EndedState) Phase() GamePhase {
	return PhaseEnded
}

func (s *EndedState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Str("winner", ctx.Winner.Label()).
		Int("moves_played", ctx.MovesPlayed).
		Dur("game_duration", ctx.GetElapsedTime()).
		Msg("Game ended")
	return nil
}

func (s *EndedState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting ended state")
	return nil
}

func (s *EndedState) Validate(ctx *GameContext) error {
	if !ctx.HasWinner() {
		return errors.New("ended state requires a winner")
	}
	return nil
}

// ResetState represents game reset
type ResetState struct{}

func NewResetState() State {
	return &ResetState{}
}

func (s *ResetState) Phase() GamePhase {
	return PhaseReset
}

func (s *ResetState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Msg("Resetting game")

	ctx.StartTime = time.Time{}
	ctx.Winner = core.Empty
	ctx.MovesPlayed = 0

	// Clear metadata but keep the map allocated
	for k := range ctx.Metadata {
		delete(ctx.Metadata, k)
	}

	return nil
}

func (s *ResetState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Game reset complete")
	return nil
}

func (s *ResetState) Validate(ctx *GameContext) error {
	return nil
}
