package core

import "fmt"

// MoveKind classifies how a group moves.
type MoveKind int

const (
	MoveNone MoveKind = iota
	MoveSingle
	MoveInLine
	MoveBroadside
)

func (k MoveKind) String() string {
	switch k {
	case MoveSingle:
		return "single"
	case MoveInLine:
		return "in-line"
	case MoveBroadside:
		return "broadside"
	default:
		return "none"
	}
}

// Relocation moves one marble from From to To. A To that is off the board
// means the marble leaves play.
type Relocation struct {
	From     Coordinate
	To       Coordinate
	Occupant Occupant
}

func (r Relocation) String() string {
	return fmt.Sprintf("%s %s -> %s", r.Occupant, r.From, r.To)
}

// Direction is the step vector of the relocation.
func (r Relocation) Direction() Coordinate { return r.To.Subtract(r.From) }
