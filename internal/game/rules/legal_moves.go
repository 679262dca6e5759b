package rules

import "github.com/mitchelldurbincs/abalone/internal/game/core"

// lineAxes are three of the six directions, one per lattice axis, so each
// pair or triple is generated once.
var lineAxes = [3]core.Coordinate{{Q: 1, R: 0}, {Q: 0, R: 1}, {Q: -1, R: 1}}

// Move is a fully resolved legal move for one selection and direction.
type Move struct {
	Selection   core.Selection
	Direction   core.Coordinate
	Kind        core.MoveKind
	Relocations []core.Relocation
}

// Ejections counts relocations whose destination is off the board.
func (m Move) Ejections(b *core.Board) int {
	n := 0
	for _, r := range m.Relocations {
		if !b.Contains(r.To) {
			n++
		}
	}
	return n
}

// LegalMoveCalculator enumerates the moves available to a player.
type LegalMoveCalculator struct{}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// Groups returns every selection the player could build: each own marble,
// each adjacent own pair and each straight own triple.
func (lmc *LegalMoveCalculator) Groups(b *core.Board, player core.Occupant) []core.Selection {
	var groups []core.Selection
	for _, c := range b.Pieces(player) {
		groups = append(groups, core.NewSelection(c))
		for _, axis := range lineAxes {
			second := c.Add(axis)
			if b.At(second) != player {
				continue
			}
			groups = append(groups, core.NewSelection(c, second))

			third := second.Add(axis)
			if b.At(third) == player {
				groups = append(groups, core.NewSelection(c, second, third))
			}
		}
	}
	return groups
}

// LegalMoves resolves every group against every direction reported by
// ValidMoveDirections. Directions that resolve to no relocation are dropped.
func (lmc *LegalMoveCalculator) LegalMoves(b *core.Board, player core.Occupant) []Move {
	var moves []Move
	for _, sel := range lmc.Groups(b, player) {
		for _, dir := range ValidMoveDirections(b, player, sel) {
			rels := MovesForDirection(b, player, sel, dir)
			if len(rels) == 0 {
				continue
			}
			moves = append(moves, Move{
				Selection:   sel,
				Direction:   dir,
				Kind:        ClassifyDirection(sel, dir),
				Relocations: rels,
			})
		}
	}
	return moves
}

// HasLegalMove reports whether the player can move at all.
func (lmc *LegalMoveCalculator) HasLegalMove(b *core.Board, player core.Occupant) bool {
	for _, sel := range lmc.Groups(b, player) {
		for _, dir := range ValidMoveDirections(b, player, sel) {
			if len(MovesForDirection(b, player, sel, dir)) > 0 {
				return true
			}
		}
	}
	return false
}
