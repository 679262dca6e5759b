package game

import (
	"github.com/mitchelldurbincs/abalone/internal/game/core"
)

// PlayerStats summarises one side of the board
type PlayerStats struct {
	Player  core.Occupant
	OnBoard int
	// Lost counts marbles pushed off the board, which is the opponent's score
	Lost  int
	Score int
}

// GameStats is a summary of the game so far
type GameStats struct {
	MoveCount int
	Turn      core.Occupant
	Winner    core.Occupant
	White     PlayerStats
	Black     PlayerStats
}

// Stats computes the game summary from a state
func (s State) Stats() GameStats {
	return GameStats{
		MoveCount: s.MoveCount,
		Turn:      s.Turn,
		Winner:    s.Winner,
		White:     s.playerStats(core.White),
		Black:     s.playerStats(core.Black),
	}
}

func (s State) playerStats(p core.Occupant) PlayerStats {
	return PlayerStats{
		Player:  p,
		OnBoard: s.Board.Count(p),
		Lost:    s.Scores.Of(p.Opponent()),
		Score:   s.Scores.Of(p),
	}
}

// Stats returns the summary of the engine's current game
func (e *Engine) Stats() GameStats {
	stats := e.snapshot().Stats()
	e.logger.Debug().
		Int("move", stats.MoveCount).
		Int("white_on_board", stats.White.OnBoard).
		Int("black_on_board", stats.Black.OnBoard).
		Msg("Computed game stats")
	return stats
}
