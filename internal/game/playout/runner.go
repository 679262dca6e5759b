// Package playout drives an Engine through random self-play.
package playout

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/abalone/internal/game"
	"github.com/mitchelldurbincs/abalone/internal/game/core"
	"github.com/mitchelldurbincs/abalone/internal/game/rules"
)

// StopReason says why a playout ended
type StopReason string

const (
	StopWinner      StopReason = "winner"
	StopMaxMoves    StopReason = "max_moves"
	StopNoLegalMove StopReason = "no_legal_move"
)

// Step is reported after every applied move
type Step struct {
	Number int
	Player core.Occupant
	Move   rules.Move
	Result game.TurnResult
}

// Outcome summarises a finished playout
type Outcome struct {
	Reason StopReason
	Winner core.Occupant
	Moves  int
	Scores rules.Scores
}

// Config holds the runner settings. MaxMoves must be positive.
type Config struct {
	MaxMoves int
	Logger   zerolog.Logger
	// OnMove is called after each applied move, outside the engine lock
	OnMove func(Step)
}

// Runner plays random legal moves for both sides until the game is won,
// the move limit is hit, or the side to move is stuck.
type Runner struct {
	engine *game.Engine
	rng    *rand.Rand
	config Config
	logger zerolog.Logger
}

// NewRunner creates a runner for e drawing moves from rng
func NewRunner(e *game.Engine, rng *rand.Rand, cfg Config) (*Runner, error) {
	if e == nil {
		return nil, fmt.Errorf("playout needs an engine")
	}
	if rng == nil {
		return nil, fmt.Errorf("playout needs a random source")
	}
	if cfg.MaxMoves <= 0 {
		return nil, fmt.Errorf("max moves must be positive, got %d", cfg.MaxMoves)
	}
	return &Runner{
		engine: e,
		rng:    rng,
		config: cfg,
		logger: cfg.Logger.With().Str("component", "Playout").Str("game_id", e.GameID()).Logger(),
	}, nil
}

// Run plays until the game stops or ctx is cancelled. A cancelled run
// returns the outcome so far together with ctx.Err().
func (r *Runner) Run(ctx context.Context) (Outcome, error) {
	r.logger.Info().Int("max_moves", r.config.MaxMoves).Msg("Playout started")

	played := 0
	for {
		select {
		case <-ctx.Done():
			out := r.outcome("", played)
			r.logger.Warn().Err(ctx.Err()).Int("moves", played).Msg("Playout cancelled")
			return out, ctx.Err()
		default:
		}

		if r.engine.IsGameOver() {
			return r.finish(StopWinner, played), nil
		}
		if played >= r.config.MaxMoves {
			return r.finish(StopMaxMoves, played), nil
		}

		player := r.engine.Turn()
		move, ok := game.RandomMove(r.engine, r.rng)
		if !ok {
			return r.finish(StopNoLegalMove, played), nil
		}

		result := r.engine.ApplyMoves(move.Relocations)
		if !result.Applied {
			// Legal moves always carry relocations
			return r.outcome("", played), fmt.Errorf("move %d for %s was not applied", played+1, player.Label())
		}
		played++

		if r.config.OnMove != nil {
			r.config.OnMove(Step{Number: played, Player: player, Move: move, Result: result})
		}
	}
}

func (r *Runner) finish(reason StopReason, played int) Outcome {
	out := r.outcome(reason, played)
	r.logger.Info().
		Str("reason", string(reason)).
		Str("winner", out.Winner.Label()).
		Int("moves", out.Moves).
		Int("white_score", out.Scores.White).
		Int("black_score", out.Scores.Black).
		Msg("Playout finished")
	return out
}

func (r *Runner) outcome(reason StopReason, played int) Outcome {
	gs := r.engine.State()
	return Outcome{
		Reason: reason,
		Winner: gs.Winner,
		Moves:  played,
		Scores: gs.Scores,
	}
}
