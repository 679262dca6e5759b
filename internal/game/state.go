package game

import (
	"github.com/mitchelldurbincs/abalone/internal/game/core"
	"github.com/mitchelldurbincs/abalone/internal/game/rules"
)

// State is a snapshot of one game. Transitions return a new State and never
// write to the Board they were given, so a published board can be read
// without locking.
type State struct {
	Board     *core.Board
	Turn      core.Occupant
	Scores    rules.Scores
	Winner    core.Occupant
	Selection core.Selection
	// Message is an advisory for the player. It stays set until cleared.
	Message   string
	MoveCount int
}

// NewState returns the opening position with White to move.
func NewState() State {
	return State{
		Board: core.NewBoard(),
		Turn:  core.White,
	}
}

// HasWinner reports whether either side has reached the winning score.
func (s State) HasWinner() bool { return s.Winner != core.Empty }

// ToggleSelection applies one click on c to the selection.
func (s State) ToggleSelection(c core.Coordinate) (State, rules.ToggleOutcome) {
	sel, outcome := rules.Toggle(s.Board, s.Turn, s.Selection, c)
	s.Selection = sel
	if outcome == rules.ToggleOverflow {
		s.Message = rules.OverflowMessage
	}
	return s, outcome
}

func (s State) ClearSelection() State {
	s.Selection = core.Selection{}
	return s
}

func (s State) ClearMessage() State {
	s.Message = ""
	return s
}

// ValidMoveDirections lists the directions the current selection may move in.
func (s State) ValidMoveDirections() []core.Coordinate {
	return rules.ValidMoveDirections(s.Board, s.Turn, s.Selection)
}

func (s State) SingleMarbleMove(to core.Coordinate) []core.Relocation {
	return rules.SingleMarbleMove(s.Board, s.Selection, to)
}

func (s State) InLineMove(to core.Coordinate) []core.Relocation {
	return rules.InLineMove(s.Board, s.Turn, s.Selection, to)
}

func (s State) BroadsideMove(dir core.Coordinate) []core.Relocation {
	return rules.BroadsideMove(s.Board, s.Selection, dir)
}

func (s State) MovesForCell(cell core.Coordinate) []core.Relocation {
	return rules.MovesForCell(s.Board, s.Turn, s.Selection, cell)
}

func (s State) MovesForDirection(dir core.Coordinate) []core.Relocation {
	return rules.MovesForDirection(s.Board, s.Turn, s.Selection, dir)
}
