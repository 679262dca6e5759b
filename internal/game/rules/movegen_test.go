package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/abalone/internal/game/core"
	"github.com/mitchelldurbincs/abalone/internal/testutil"
)

var (
	c      = testutil.C
	coords = testutil.Coords
	selOf  = testutil.Selection
)

func TestValidMoveDirections_SingleMarble(t *testing.T) {
	tests := []struct {
		name     string
		board    func(t *testing.T) *core.Board
		from     core.Coordinate
		expected []core.Coordinate
	}{
		{
			name:     "front marble of the opening position",
			board:    func(t *testing.T) *core.Board { return core.NewBoard() },
			from:     c(0, -2),
			expected: coords(-1, 0, 0, 1, -1, 1),
		},
		{
			name: "corner marble skips off-board neighbours",
			board: func(t *testing.T) *core.Board {
				return testutil.CreateTestBoard(t, testutil.NewPieces().Add(core.White, c(4, -4)))
			},
			from:     c(4, -4),
			expected: coords(-1, 0, 0, 1, -1, 1),
		},
		{
			name: "lone centre marble has all six",
			board: func(t *testing.T) *core.Board {
				return testutil.CreateTestBoard(t, testutil.NewPieces().Add(core.White, c(0, 0)))
			},
			from:     c(0, 0),
			expected: coords(-1, 0, 1, 0, 0, -1, 0, 1, -1, 1, 1, -1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidMoveDirections(tt.board(t), core.White, selOf(tt.from))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidMoveDirections_EmptySelection(t *testing.T) {
	assert.Empty(t, ValidMoveDirections(core.NewBoard(), core.White, core.Selection{}))
}

func TestValidMoveDirections_Line(t *testing.T) {
	line := coords(-1, 0, 0, 0, 1, 0)

	t.Run("open board", func(t *testing.T) {
		b := testutil.CreateTestBoard(t, testutil.NewPieces().Add(core.White, line...))
		got := ValidMoveDirections(b, core.White, selOf(line...))
		assert.Equal(t, coords(1, 0, -1, 0, 0, 1, 0, -1, -1, 1, 1, -1), got)
	})

	t.Run("marble above the middle blocks two broadsides", func(t *testing.T) {
		b := testutil.CreateTestBoard(t, testutil.NewPieces().
			Add(core.White, line...).
			Add(core.Black, c(0, 1)))
		got := ValidMoveDirections(b, core.White, selOf(line...))
		assert.Equal(t, coords(1, 0, -1, 0, 0, -1, 1, -1), got)
	})

	t.Run("in-line blocked by own marble", func(t *testing.T) {
		b := testutil.CreateTestBoard(t, testutil.NewPieces().
			Add(core.White, line...).
			Add(core.White, c(2, 0)))
		got := ValidMoveDirections(b, core.White, selOf(line...))
		assert.NotContains(t, got, c(1, 0))
		assert.Contains(t, got, c(-1, 0))
	})
}

func TestFrontMarble(t *testing.T) {
	vertical := selOf(c(0, 1), c(0, 0), c(0, -1))

	assert.Equal(t, c(0, -1), FrontMarble(vertical, c(0, -1)), "front may be the last listed")
	assert.Equal(t, c(0, 1), FrontMarble(vertical, c(0, 1)))
	assert.Equal(t, c(0, 1), FrontMarble(vertical, c(1, 0)), "ties keep the first listed")

	horizontal := selOf(c(1, 0), c(-1, 0), c(0, 0))
	assert.Equal(t, c(-1, 0), FrontMarble(horizontal, c(-1, 0)))
	assert.Equal(t, c(1, 0), FrontMarble(horizontal, c(1, 0)))
}

func TestIsInlineMoveValid(t *testing.T) {
	east := c(1, 0)
	three := coords(-1, 0, 0, 0, 1, 0)
	two := coords(0, 0, 1, 0)

	tests := []struct {
		name     string
		white    []core.Coordinate
		black    []core.Coordinate
		extra    []core.Coordinate // additional white marbles outside the selection
		dir      core.Coordinate
		expected bool
	}{
		{"empty cell ahead", three, nil, nil, east, true},
		{"three push two", three, coords(2, 0, 3, 0), nil, east, true},
		{"three cannot push three", three, coords(2, 0, 3, 0, 4, 0), nil, east, false},
		{"defender backed by own marble", three, coords(2, 0), coords(3, 0), east, false},
		{"two push one", two, coords(2, 0), nil, east, true},
		{"two cannot push two", two, coords(2, 0, 3, 0), nil, east, false},
		{"one cannot push one", coords(0, 0), coords(1, 0), nil, east, false},
		{"push defenders off the board", coords(0, 0, 1, 0, 2, 0), coords(3, 0, 4, 0), nil, east, true},
		{"own front marble off the board", coords(3, 0, 4, 0), nil, nil, east, true},
		{"backwards along the line", three, coords(-2, 0), nil, c(-1, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces := testutil.NewPieces().
				Add(core.White, tt.white...).
				Add(core.White, tt.extra...).
				Add(core.Black, tt.black...)
			b := testutil.CreateTestBoard(t, pieces)
			assert.Equal(t, tt.expected, IsInlineMoveValid(b, core.White, selOf(tt.white...), tt.dir))
		})
	}
}

func TestIsInlineMoveValid_EmptySelection(t *testing.T) {
	assert.False(t, IsInlineMoveValid(core.NewBoard(), core.White, core.Selection{}, c(1, 0)))
}

func TestIsBroadsideMoveValid(t *testing.T) {
	pair := coords(3, -4, 4, -4)
	b := testutil.CreateTestBoard(t, testutil.NewPieces().
		Add(core.White, pair...).
		Add(core.Black, c(3, -3)))

	assert.True(t, IsBroadsideMoveValid(b, selOf(pair...), c(0, -1)), "off-board targets are allowed")
	assert.False(t, IsBroadsideMoveValid(b, selOf(pair...), c(0, 1)), "occupied target blocks")
	assert.False(t, IsBroadsideMoveValid(b, selOf(pair...), c(-1, 1)), "one of two targets occupied")
}
