package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate is an axial (q, r) point on the hex lattice.
type Coordinate struct {
	Q, R int
}

// Directions are the six unit step vectors of the lattice.
var Directions = [6]Coordinate{
	{1, 0}, {-1, 0},
	{0, 1}, {0, -1},
	{-1, 1}, {1, -1},
}

// NewCoordinate creates a new coordinate with the given q and r values
func NewCoordinate(q, r int) Coordinate {
	return Coordinate{Q: q, R: r}
}

func (c Coordinate) Equals(other Coordinate) bool {
	return c.Q == other.Q && c.R == other.R
}

func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{Q: c.Q + other.Q, R: c.R + other.R}
}

func (c Coordinate) Subtract(other Coordinate) Coordinate {
	return Coordinate{Q: c.Q - other.Q, R: c.R - other.R}
}

// Negate returns the opposite vector.
func (c Coordinate) Negate() Coordinate {
	return Coordinate{Q: -c.Q, R: -c.R}
}

// Dot is the projection used to find the leading marble of a line.
func (c Coordinate) Dot(other Coordinate) int {
	return c.Q*other.Q + c.R*other.R
}

// Neighbors returns the six adjacent coordinates. The order is fixed and
// callers that enumerate moves rely on it.
func (c Coordinate) Neighbors() [6]Coordinate {
	return [6]Coordinate{
		{c.Q - 1, c.R},
		{c.Q + 1, c.R},
		{c.Q, c.R - 1},
		{c.Q, c.R + 1},
		{c.Q - 1, c.R + 1},
		{c.Q + 1, c.R - 1},
	}
}

// IsNeighbor checks if other is one step away on the lattice
func (c Coordinate) IsNeighbor(other Coordinate) bool {
	return other.Subtract(c).IsDirection()
}

// IsDirection reports whether c is one of the six unit vectors.
func (c Coordinate) IsDirection() bool {
	for _, d := range Directions {
		if d == c {
			return true
		}
	}
	return false
}

// DistanceTo calculates the hex distance to another coordinate
func (c Coordinate) DistanceTo(other Coordinate) int {
	dq := abs(c.Q - other.Q)
	dr := abs(c.R - other.R)
	ds := abs((c.Q + c.R) - (other.Q + other.R))
	return max(dq, dr, ds)
}

// Less orders coordinates top to bottom, then left to right.
func (c Coordinate) Less(other Coordinate) bool {
	if c.R != other.R {
		return c.R > other.R
	}
	return c.Q < other.Q
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(q=%d, r=%d)", c.Q, c.R)
}

// ParseCoordinate accepts either "q,r" or the String form "(q=1, r=-2)".
func ParseCoordinate(s string) (Coordinate, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")

	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("%q: %w", s, ErrInvalidCoordinate)
	}

	values := [2]int{}
	for i, part := range parts {
		part = strings.TrimSpace(part)
		part = strings.TrimPrefix(part, [2]string{"q=", "r="}[i])
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Coordinate{}, fmt.Errorf("%q: %w", s, ErrInvalidCoordinate)
		}
		values[i] = n
	}
	return Coordinate{Q: values[0], R: values[1]}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
