package rules

import "github.com/mitchelldurbincs/abalone/internal/game/core"

// SingleMarbleMove moves the only selected marble to a neighbouring cell.
// Emptiness of the target is the caller's concern; see MovesForCell.
func SingleMarbleMove(b *core.Board, sel core.Selection, to core.Coordinate) []core.Relocation {
	if sel.Len() != 1 {
		return nil
	}
	from := sel.First()
	if !from.IsNeighbor(to) {
		return nil
	}
	return []core.Relocation{{From: from, To: to, Occupant: b.At(from)}}
}

// ComputeVector returns the step from whichever end of the selection
// touches to, checking the first end before the last.
func ComputeVector(sel core.Selection, to core.Coordinate) (core.Coordinate, bool) {
	if sel.IsEmpty() {
		return core.Coordinate{}, false
	}
	if sel.First().IsNeighbor(to) {
		return to.Subtract(sel.First()), true
	}
	if sel.Last().IsNeighbor(to) {
		return to.Subtract(sel.Last()), true
	}
	return core.Coordinate{}, false
}

// InLineMove pushes the selection into to. Contiguous opponent marbles
// starting at to are the defenders; an own marble among them blocks the
// push. The attackers must outnumber the defenders. Defenders are listed
// first, each shifted one step; a defender shifted off the board leaves play.
func InLineMove(b *core.Board, turn core.Occupant, sel core.Selection, to core.Coordinate) []core.Relocation {
	dir, ok := ComputeVector(sel, to)
	if !ok {
		return nil
	}

	var defenders []core.Relocation
	for next := to; b.IsOccupied(next); next = next.Add(dir) {
		o := b.At(next)
		if o == turn {
			return nil
		}
		defenders = append(defenders, core.Relocation{From: next, To: next.Add(dir), Occupant: o})
	}

	if sel.Len() <= len(defenders) {
		return nil
	}

	moves := make([]core.Relocation, 0, len(defenders)+sel.Len())
	moves = append(moves, defenders...)
	for _, c := range sel.Coords() {
		moves = append(moves, core.Relocation{From: c, To: c.Add(dir), Occupant: b.At(c)})
	}
	return moves
}

// BroadsideMove shifts every selected marble by dir when the broadside
// check passes.
func BroadsideMove(b *core.Board, sel core.Selection, dir core.Coordinate) []core.Relocation {
	if sel.IsEmpty() || !IsBroadsideMoveValid(b, sel, dir) {
		return nil
	}
	moves := make([]core.Relocation, 0, sel.Len())
	for _, c := range sel.Coords() {
		moves = append(moves, core.Relocation{From: c, To: c.Add(dir), Occupant: b.At(c)})
	}
	return moves
}

// ClassifyDirection tells how the selection would travel along dir.
func ClassifyDirection(sel core.Selection, dir core.Coordinate) core.MoveKind {
	switch {
	case sel.IsEmpty() || !dir.IsDirection():
		return core.MoveNone
	case sel.Len() == 1:
		return core.MoveSingle
	}
	line, _ := sel.LineDirection()
	if dir == line || dir == line.Negate() {
		return core.MoveInLine
	}
	return core.MoveBroadside
}

// MovesForDirection resolves a chosen direction (a move arrow) into
// relocations. In-line moves target the cell beyond the leading end. A
// single marble only steps onto an empty on-board cell.
func MovesForDirection(b *core.Board, turn core.Occupant, sel core.Selection, dir core.Coordinate) []core.Relocation {
	switch ClassifyDirection(sel, dir) {
	case core.MoveSingle:
		to := sel.First().Add(dir)
		if o, onBoard := b.Get(to); !onBoard || o != core.Empty {
			return nil
		}
		return SingleMarbleMove(b, sel, to)
	case core.MoveInLine:
		line, _ := sel.LineDirection()
		if dir == line {
			return InLineMove(b, turn, sel, sel.Last().Add(dir))
		}
		return InLineMove(b, turn, sel, sel.First().Add(dir))
	case core.MoveBroadside:
		return BroadsideMove(b, sel, dir)
	}
	return nil
}

// MovesForCell resolves a click on a board cell. A single marble may step
// onto an empty cell; a line may only be pushed into one of the two cells
// beyond its ends.
func MovesForCell(b *core.Board, turn core.Occupant, sel core.Selection, cell core.Coordinate) []core.Relocation {
	switch {
	case sel.IsEmpty():
		return nil
	case sel.Len() == 1:
		if o, onBoard := b.Get(cell); onBoard && o == core.Empty {
			return SingleMarbleMove(b, sel, cell)
		}
		return nil
	}

	before, after, _ := NextCoordinates(sel)
	if cell != before && cell != after {
		return nil
	}
	return InLineMove(b, turn, sel, cell)
}
