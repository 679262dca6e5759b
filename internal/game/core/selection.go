package core

import "sort"

// MaxSelection is the largest group that may move together.
const MaxSelection = 3

// Selection is an ordered set of up to three coordinates. It is a value:
// every mutating helper returns a new Selection. Coordinates are kept in
// canonical order (descending r, then ascending q) after each addition.
type Selection struct {
	coords []Coordinate
}

// NewSelection builds a selection from coords in canonical order. It does
// not check colour, adjacency or size; rules.Toggle enforces those.
func NewSelection(coords ...Coordinate) Selection {
	s := Selection{coords: append([]Coordinate(nil), coords...)}
	s.sort()
	return s
}

func (s Selection) Len() int      { return len(s.coords) }
func (s Selection) IsEmpty() bool { return len(s.coords) == 0 }

// At returns the i-th coordinate in canonical order.
func (s Selection) At(i int) Coordinate { return s.coords[i] }

// First and Last are the two ends of the line in list order.
func (s Selection) First() Coordinate { return s.coords[0] }
func (s Selection) Last() Coordinate  { return s.coords[len(s.coords)-1] }

// Coords returns a copy of the coordinates.
func (s Selection) Coords() []Coordinate {
	return append([]Coordinate(nil), s.coords...)
}

// IndexOf returns the list position of c or -1.
func (s Selection) IndexOf(c Coordinate) int {
	for i, sc := range s.coords {
		if sc == c {
			return i
		}
	}
	return -1
}

func (s Selection) Contains(c Coordinate) bool { return s.IndexOf(c) >= 0 }

// With returns a new selection with c added and resorted.
func (s Selection) With(c Coordinate) Selection {
	out := Selection{coords: make([]Coordinate, 0, len(s.coords)+1)}
	out.coords = append(out.coords, s.coords...)
	out.coords = append(out.coords, c)
	out.sort()
	return out
}

// Without returns a new selection with the element at index i removed.
func (s Selection) Without(i int) Selection {
	out := Selection{coords: make([]Coordinate, 0, len(s.coords))}
	out.coords = append(out.coords, s.coords[:i]...)
	out.coords = append(out.coords, s.coords[i+1:]...)
	return out
}

// LineDirection is selection[1] - selection[0]; ok is false below two members.
func (s Selection) LineDirection() (Coordinate, bool) {
	if len(s.coords) < 2 {
		return Coordinate{}, false
	}
	return s.coords[1].Subtract(s.coords[0]), true
}

func (s Selection) Equal(other Selection) bool {
	if len(s.coords) != len(other.coords) {
		return false
	}
	for i := range s.coords {
		if s.coords[i] != other.coords[i] {
			return false
		}
	}
	return true
}

func (s Selection) String() string {
	out := "["
	for i, c := range s.coords {
		if i > 0 {
			out += " "
		}
		out += c.String()
	}
	return out + "]"
}

func (s Selection) sort() {
	sort.SliceStable(s.coords, func(i, j int) bool {
		return s.coords[i].Less(s.coords[j])
	})
}
