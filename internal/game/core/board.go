package core

import "fmt"

const (
	// CellCount is the number of playable cells.
	CellCount = 61
	// PiecesPerSide is the number of marbles each colour starts with.
	PiecesPerSide = 14
)

// RowLengths describes the layout from the top row (row 0) down.
var RowLengths = [9]int{5, 6, 7, 8, 9, 8, 7, 6, 5}

// initialMarbles holds the starting position keyed by (row, col).
var initialMarbles = map[[2]int]Occupant{
	{0, 0}: Black, {0, 1}: Black, {0, 2}: Black, {0, 3}: Black, {0, 4}: Black,
	{1, 0}: Black, {1, 1}: Black, {1, 2}: Black, {1, 3}: Black, {1, 4}: Black, {1, 5}: Black,
	{2, 2}: Black, {2, 3}: Black, {2, 4}: Black,
	{8, 0}: White, {8, 1}: White, {8, 2}: White, {8, 3}: White, {8, 4}: White,
	{7, 0}: White, {7, 1}: White, {7, 2}: White, {7, 3}: White, {7, 4}: White, {7, 5}: White,
	{6, 2}: White, {6, 3}: White, {6, 4}: White,
}

// ToAxial converts a (row, col) layout index into an axial coordinate.
// Row 4 is the equator; rows below it start further right in q.
func ToAxial(row, col int) Coordinate {
	r := 4 - row
	if row <= 4 {
		return Coordinate{Q: col - 4, R: r}
	}
	return Coordinate{Q: col + (row - 4) - 4, R: r}
}

// Board maps every playable cell to its occupant. A coordinate that is not
// a key is off the board. The key set never changes after construction.
type Board struct {
	cells map[Coordinate]Occupant
	order []Coordinate // layout order, shared between clones
}

// NewEmptyBoard creates the 61-cell layout with no marbles on it.
func NewEmptyBoard() *Board {
	b := &Board{
		cells: make(map[Coordinate]Occupant, CellCount),
		order: make([]Coordinate, 0, CellCount),
	}
	for row, length := range RowLengths {
		for col := 0; col < length; col++ {
			c := ToAxial(row, col)
			b.cells[c] = Empty
			b.order = append(b.order, c)
		}
	}
	return b
}

// NewBoard creates a board in the standard 14 versus 14 starting position.
func NewBoard() *Board {
	b := NewEmptyBoard()
	for rc, o := range initialMarbles {
		b.cells[ToAxial(rc[0], rc[1])] = o
	}
	return b
}

// NewBoardFromPieces creates an otherwise empty board holding the given pieces.
func NewBoardFromPieces(pieces map[Coordinate]Occupant) (*Board, error) {
	b := NewEmptyBoard()
	for c, o := range pieces {
		if !b.Contains(c) {
			return nil, fmt.Errorf("place %s at %s: %w", o, c, ErrOffBoard)
		}
		if o != Empty && !o.IsPlayer() {
			return nil, fmt.Errorf("place %s at %s: %w", o, c, ErrInvalidOccupant)
		}
		b.cells[c] = o
	}
	return b, nil
}

// Contains is the board membership test: false means off-board.
func (b *Board) Contains(c Coordinate) bool {
	_, ok := b.cells[c]
	return ok
}

// Get returns the occupant and whether c is on the board.
func (b *Board) Get(c Coordinate) (Occupant, bool) {
	o, ok := b.cells[c]
	return o, ok
}

// At returns the occupant of c, or Empty when c is off the board.
func (b *Board) At(c Coordinate) Occupant {
	return b.cells[c]
}

// IsOccupied reports an on-board cell holding a marble of either colour.
func (b *Board) IsOccupied(c Coordinate) bool {
	o, ok := b.cells[c]
	return ok && o != Empty
}

// Set changes the occupant of an on-board cell. It is only meant for boards
// that have not been published yet (fresh clones); off-board writes are
// ignored so the key set stays fixed.
func (b *Board) Set(c Coordinate, o Occupant) bool {
	if !b.Contains(c) {
		return false
	}
	b.cells[c] = o
	return true
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	cells := make(map[Coordinate]Occupant, len(b.cells))
	for c, o := range b.cells {
		cells[c] = o
	}
	return &Board{cells: cells, order: b.order}
}

func (b *Board) Len() int { return len(b.cells) }

// Count returns how many cells hold o.
func (b *Board) Count(o Occupant) int {
	n := 0
	for _, occ := range b.cells {
		if occ == o {
			n++
		}
	}
	return n
}

// Cells returns every on-board coordinate in layout order (row by row).
func (b *Board) Cells() []Coordinate {
	out := make([]Coordinate, len(b.order))
	copy(out, b.order)
	return out
}

// Rows returns the layout grouped by row, top row first.
func (b *Board) Rows() [][]Coordinate {
	rows := make([][]Coordinate, 0, len(RowLengths))
	i := 0
	for _, length := range RowLengths {
		row := make([]Coordinate, length)
		copy(row, b.order[i:i+length])
		rows = append(rows, row)
		i += length
	}
	return rows
}

// Pieces returns the coordinates held by o in layout order.
func (b *Board) Pieces(o Occupant) []Coordinate {
	var out []Coordinate
	for _, c := range b.order {
		if b.cells[c] == o {
			out = append(out, c)
		}
	}
	return out
}

// Equal reports whether both boards have identical occupants.
func (b *Board) Equal(other *Board) bool {
	if other == nil || len(b.cells) != len(other.cells) {
		return false
	}
	for c, o := range b.cells {
		if other.cells[c] != o {
			return false
		}
	}
	return true
}
