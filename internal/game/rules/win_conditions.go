package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/abalone/internal/game/core"
)

// WinningScore is the number of ejected opponent marbles that wins the game.
const WinningScore = 6

// Scores counts opponent marbles each colour has pushed off the board.
type Scores struct {
	White int
	Black int
}

// Of returns the score of player.
func (s Scores) Of(player core.Occupant) int {
	switch player {
	case core.White:
		return s.White
	case core.Black:
		return s.Black
	}
	return 0
}

// Add returns the scores with one point credited to player.
func (s Scores) Add(player core.Occupant) Scores {
	switch player {
	case core.White:
		s.White++
	case core.Black:
		s.Black++
	}
	return s
}

// WinConditionChecker handles winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckWinner returns the winner after scores changed. Once a winner is
// set it never changes, even if the other side keeps scoring.
func (wc *WinConditionChecker) CheckWinner(current core.Occupant, scores Scores) core.Occupant {
	if current != core.Empty {
		wc.logger.Debug().Str("winner", current.Label()).Msg("Winner already decided")
		return current
	}

	winner := core.Empty
	if scores.White >= WinningScore {
		winner = core.White
	}
	if scores.Black >= WinningScore {
		winner = core.Black
	}

	if winner != core.Empty {
		wc.logger.Info().
			Str("winner", winner.Label()).
			Int("white_score", scores.White).
			Int("black_score", scores.Black).
			Msg("Winner determined")
	}
	return winner
}
