package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/abalone/internal/game/core"
)

// C is shorthand for core.NewCoordinate in table-driven tests.
func C(q, r int) core.Coordinate {
	return core.NewCoordinate(q, r)
}

// Coords builds coordinates from flattened (q, r) pairs.
func Coords(qr ...int) []core.Coordinate {
	if len(qr)%2 != 0 {
		panic("testutil.Coords needs an even number of values")
	}
	out := make([]core.Coordinate, 0, len(qr)/2)
	for i := 0; i < len(qr); i += 2 {
		out = append(out, core.NewCoordinate(qr[i], qr[i+1]))
	}
	return out
}

// Pieces is a placement builder: Pieces().Add(core.White, c1, c2).Add(core.Black, c3).
type Pieces map[core.Coordinate]core.Occupant

// NewPieces creates an empty placement.
func NewPieces() Pieces {
	return make(Pieces)
}

// Add places o on every coordinate.
func (p Pieces) Add(o core.Occupant, coords ...core.Coordinate) Pieces {
	for _, c := range coords {
		p[c] = o
	}
	return p
}

// CreateTestBoard creates an otherwise empty board with the given pieces
func CreateTestBoard(t testing.TB, pieces Pieces) *core.Board {
	t.Helper()
	b, err := core.NewBoardFromPieces(pieces)
	require.NoError(t, err)
	return b
}

// Selection builds a canonical selection from coordinates.
func Selection(coords ...core.Coordinate) core.Selection {
	return core.NewSelection(coords...)
}
