package core

import "errors"

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrOffBoard          = errors.New("coordinate is off the board")
	ErrInvalidOccupant   = errors.New("invalid occupant")
)
