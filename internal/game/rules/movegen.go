package rules

import (
	"math"

	"github.com/mitchelldurbincs/abalone/internal/game/core"
)

// IsBroadsideMoveValid rejects the move only when some target cell is on
// the board and occupied. Off-board targets pass.
func IsBroadsideMoveValid(b *core.Board, sel core.Selection, dir core.Coordinate) bool {
	for _, c := range sel.Coords() {
		if b.IsOccupied(c.Add(dir)) {
			return false
		}
	}
	return true
}

// FrontMarble is the selected coordinate with the largest projection on
// dir. Ties keep the first one in selection order.
func FrontMarble(sel core.Selection, dir core.Coordinate) core.Coordinate {
	front := sel.First()
	maxDot := math.MinInt
	for _, c := range sel.Coords() {
		if dot := c.Dot(dir); dot > maxDot {
			maxDot = dot
			front = c
		}
	}
	return front
}

// IsInlineMoveValid walks from the front marble along dir. Leaving the
// board or reaching an empty cell ends a legal push; an own marble blocks;
// opponent marbles are counted as defenders and must stay fewer than the
// attackers and fewer than three.
func IsInlineMoveValid(b *core.Board, turn core.Occupant, sel core.Selection, dir core.Coordinate) bool {
	if sel.IsEmpty() {
		return false
	}

	next := FrontMarble(sel, dir).Add(dir)
	defenders := 0
	for {
		o, onBoard := b.Get(next)
		switch {
		case !onBoard:
			return true
		case o == core.Empty:
			return true
		case o == turn:
			return false
		}

		defenders++
		if defenders >= sel.Len() || defenders >= core.MaxSelection {
			return false
		}
		next = next.Add(dir)
	}
}

// ValidMoveDirections lists every direction the selection may move in.
// A single marble may only step onto an empty on-board neighbour. A line
// tests its own axis (forward, then backward) as in-line pushes and the
// remaining four directions as broadside moves, in Directions order.
func ValidMoveDirections(b *core.Board, turn core.Occupant, sel core.Selection) []core.Coordinate {
	var directions []core.Coordinate

	switch sel.Len() {
	case 0:
		return directions
	case 1:
		from := sel.First()
		for _, n := range from.Neighbors() {
			if o, onBoard := b.Get(n); onBoard && o == core.Empty {
				directions = append(directions, n.Subtract(from))
			}
		}
		return directions
	}

	line, _ := sel.LineDirection()
	opposite := line.Negate()
	if IsInlineMoveValid(b, turn, sel, line) {
		directions = append(directions, line)
	}
	if IsInlineMoveValid(b, turn, sel, opposite) {
		directions = append(directions, opposite)
	}
	for _, d := range core.Directions {
		if d == line || d == opposite {
			continue
		}
		if IsBroadsideMoveValid(b, sel, d) {
			directions = append(directions, d)
		}
	}
	return directions
}
