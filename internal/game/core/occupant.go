package core

import "fmt"

// Occupant is the content of a board cell. White moves first.
type Occupant int8

const (
	Empty Occupant = iota
	White
	Black
)

// Opponent returns the other colour; Empty has no opponent.
func (o Occupant) Opponent() Occupant {
	switch o {
	case White:
		return Black
	case Black:
		return White
	}
	return Empty
}

func (o Occupant) IsPlayer() bool { return o == White || o == Black }

func (o Occupant) String() string {
	switch o {
	case Empty:
		return "empty"
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return fmt.Sprintf("occupant(%d)", int8(o))
	}
}

// Label is the capitalised player name shown to users ("White", "Black").
func (o Occupant) Label() string {
	switch o {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return ""
}
