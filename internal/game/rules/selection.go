package rules

import "github.com/mitchelldurbincs/abalone/internal/game/core"

// ToggleOutcome reports what Toggle did to the selection.
type ToggleOutcome int

const (
	// ToggleIgnored means the click was not a legal addition or removal.
	ToggleIgnored ToggleOutcome = iota
	ToggleAdded
	ToggleRemoved
	// ToggleCleared means the clicked cell did not hold the mover's colour.
	ToggleCleared
	// ToggleOverflow means a fourth marble was requested.
	ToggleOverflow
)

func (o ToggleOutcome) String() string {
	switch o {
	case ToggleAdded:
		return "added"
	case ToggleRemoved:
		return "removed"
	case ToggleCleared:
		return "cleared"
	case ToggleOverflow:
		return "overflow"
	default:
		return "ignored"
	}
}

// OverflowMessage is shown when a player tries to select a fourth marble.
const OverflowMessage = "Cannot select more than 3 marbles. You greedy!"

// Toggle applies one click on c to the selection of the player whose turn it is.
func Toggle(b *core.Board, turn core.Occupant, sel core.Selection, c core.Coordinate) (core.Selection, ToggleOutcome) {
	if o, _ := b.Get(c); o != turn {
		return core.Selection{}, ToggleCleared
	}

	if idx := sel.IndexOf(c); idx >= 0 {
		// The middle of a full line is list index 1 after the canonical sort.
		if sel.Len() == core.MaxSelection && idx == 1 {
			return sel, ToggleIgnored
		}
		return sel.Without(idx), ToggleRemoved
	}

	if sel.Len() >= core.MaxSelection {
		return sel, ToggleOverflow
	}
	if !IsValidNewSelection(sel, c) {
		return sel, ToggleIgnored
	}
	return sel.With(c), ToggleAdded
}

// IsValidNewSelection checks that c touches the current selection and, for
// a pair, extends its line.
func IsValidNewSelection(sel core.Selection, c core.Coordinate) bool {
	if sel.IsEmpty() {
		return true
	}

	adjacent := false
	for _, s := range sel.Coords() {
		if s.IsNeighbor(c) {
			adjacent = true
			break
		}
	}
	if !adjacent {
		return false
	}

	if sel.Len() == 2 {
		before, after, _ := NextCoordinates(sel)
		return c == before || c == after
	}
	return true
}

// NextCoordinates returns the cells one step beyond each end of the line:
// first - dir and last + dir, with dir = selection[1] - selection[0].
func NextCoordinates(sel core.Selection) (before, after core.Coordinate, ok bool) {
	dir, ok := sel.LineDirection()
	if !ok {
		return core.Coordinate{}, core.Coordinate{}, false
	}
	return sel.First().Subtract(dir), sel.Last().Add(dir), true
}
