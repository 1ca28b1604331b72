package board

import (
	"fmt"
	"math"
	"strconv"
)

// Wall is a wall on a cell edge. Coordinates are stored in half units so that exactly one
// of R2, C2 is odd: a wall between column 3 and 4 of row 4 is (4, 3.5), stored as {8, 7}.
type Wall struct {
	R2, C2 int
}

// ParseWall converts the half-integer (row, col) edge encoding into a Wall.
func ParseWall(row, col float64) (Wall, error) {
	r2, c2 := row*2, col*2
	if r2 != math.Trunc(r2) || c2 != math.Trunc(c2) || math.IsInf(r2, 0) || math.IsInf(c2, 0) {
		return Wall{}, fmt.Errorf("%w: (%g, %g) is not on a cell edge", ErrInvalidWall, row, col)
	}
	w := Wall{R2: int(r2), C2: int(c2)}
	if _, _, ok := w.Cells(); !ok {
		return Wall{}, fmt.Errorf("%w: (%g, %g) is not on a cell edge", ErrInvalidWall, row, col)
	}
	return w, nil
}

// WallBetween returns the wall separating the adjacent cells a and b.
func WallBetween(a, b Cell) (Wall, bool) {
	if _, ok := a.DirectionTo(b); !ok {
		return Wall{}, false
	}
	return Wall{R2: a.Row + b.Row, C2: a.Col + b.Col}, true
}

func odd(i int) bool { return i%2 != 0 }

func (w Wall) separatesColumns() bool { return odd(w.C2) }

// Cells returns the two cells separated by the wall, the north or west one first.
// ok is false if the wall does not lie on exactly one cell edge.
func (w Wall) Cells() (a, b Cell, ok bool) {
	switch {
	case odd(w.R2) && !odd(w.C2):
		a = Cell{Row: (w.R2 - 1) / 2, Col: w.C2 / 2}
		return a, a.Step(South), true
	case odd(w.C2) && !odd(w.R2):
		a = Cell{Row: w.R2 / 2, Col: (w.C2 - 1) / 2}
		return a, a.Step(East), true
	default:
		return Cell{}, Cell{}, false
	}
}

// Coords returns the half-integer (row, col) encoding of the wall.
func (w Wall) Coords() (row, col float64) { return float64(w.R2) / 2, float64(w.C2) / 2 }

func (w Wall) String() string {
	row, col := w.Coords()
	return "(" + strconv.FormatFloat(row, 'f', -1, 64) + ", " + strconv.FormatFloat(col, 'f', -1, 64) + ")"
}
