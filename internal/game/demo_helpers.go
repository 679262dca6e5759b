package game

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/abalone/internal/game/rules"
)

// RandomMove picks one legal move for the player to move. It reports false
// when that player has no legal move. This is a helper intended for demos,
// testing, or simple baseline agents.
func RandomMove(g *Engine, rng *rand.Rand) (rules.Move, bool) {
	moves := g.LegalMoves()
	if len(moves) == 0 {
		return rules.Move{}, false
	}
	chosen := moves[rng.Intn(len(moves))]
	log.Debug().
		Str("player", g.Turn().Label()).
		Stringer("selection", chosen.Selection).
		Stringer("direction", chosen.Direction).
		Stringer("kind", chosen.Kind).
		Int("candidates", len(moves)).
		Msg("Generated random move")
	return chosen, true
}
