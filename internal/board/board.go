// Package board provides the grid geometry and wall model of a ricochet robots board.
package board

import (
	"errors"
	"fmt"
)

// Size is the edge length of the standard board.
const Size = 16

// MaxSize is the largest board edge length a cell can be packed for.
const MaxSize = 16

var (
	ErrInvalidSize = errors.New("invalid board size")
	ErrInvalidWall = errors.New("invalid wall")
	ErrInvalidGoal = errors.New("invalid goal")
)

// Cell is a board cell addressed by row and column (row 0 is the top row).
type Cell struct {
	Row, Col int
}

// Step returns the neighbour cell in direction d. The result may lie outside the grid.
func (c Cell) Step(d Direction) Cell {
	switch d {
	case North:
		c.Row--
	case South:
		c.Row++
	case West:
		c.Col--
	case East:
		c.Col++
	}
	return c
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Board is an immutable square grid with walls on cell edges.
// A Board is safe for concurrent read-only use.
type Board struct {
	size  int
	cells []Direction // blocked directions per cell
	walls []Wall
	goals map[string]Cell
}

// New returns a board of the given size. Walls on the outer frame are accepted and ignored,
// the grid bounds always block.
func New(size int, walls []Wall, goals map[string]Cell) (*Board, error) {
	if size < 1 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	b := &Board{
		size:  size,
		cells: make([]Direction, size*size),
		walls: make([]Wall, 0, len(walls)),
		goals: make(map[string]Cell, len(goals)),
	}
	for _, w := range walls {
		if err := b.addWall(w); err != nil {
			return nil, err
		}
	}
	for name, c := range goals {
		if !b.Inside(c) {
			return nil, fmt.Errorf("%w: %s at %s", ErrInvalidGoal, name, c)
		}
		b.goals[name] = c
	}
	return b, nil
}

func (b *Board) addWall(w Wall) error {
	a, c, ok := w.Cells()
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidWall, w)
	}
	// both sides outside: the wall is not on the grid at all
	if !b.Inside(a) && !b.Inside(c) {
		return fmt.Errorf("%w: %s off board", ErrInvalidWall, w)
	}
	// a lies north or west of c
	d := South
	if w.separatesColumns() {
		d = East
	}
	if b.Inside(a) {
		b.cells[b.index(a)] |= d
	}
	if b.Inside(c) {
		b.cells[b.index(c)] |= d.Reverse()
	}
	b.walls = append(b.walls, w)
	return nil
}

func (b *Board) index(c Cell) int { return c.Row*b.size + c.Col }

// Size returns the edge length of the board.
func (b *Board) Size() int { return b.size }

// Inside reports whether c lies on the grid.
func (b *Board) Inside(c Cell) bool {
	return c.Row >= 0 && c.Row < b.size && c.Col >= 0 && c.Col < b.size
}

// HasWall reports whether leaving cell c in direction d is blocked by a wall or the grid bounds.
func (b *Board) HasWall(c Cell, d Direction) bool {
	if !b.Inside(c) || !b.Inside(c.Step(d)) {
		return true
	}
	return b.cells[b.index(c)]&d != 0
}

// Blocked reports whether movement between the adjacent cells a and b is blocked.
// Cells that are not adjacent are never blocked.
func (b *Board) Blocked(a, c Cell) bool {
	d, ok := a.DirectionTo(c)
	if !ok {
		return false
	}
	return b.HasWall(a, d)
}

// Walls returns the walls the board was built from, boundary walls included.
func (b *Board) Walls() []Wall {
	walls := make([]Wall, len(b.walls))
	copy(walls, b.walls)
	return walls
}

// Goal returns the named goal cell.
func (b *Board) Goal(name string) (Cell, bool) {
	c, ok := b.goals[name]
	return c, ok
}

// Goals returns a copy of the named goal cells.
func (b *Board) Goals() map[string]Cell {
	goals := make(map[string]Cell, len(b.goals))
	for name, c := range b.goals {
		goals[name] = c
	}
	return goals
}

// DirectionTo returns the direction leading from c to the adjacent cell o.
func (c Cell) DirectionTo(o Cell) (Direction, bool) {
	for _, d := range Directions {
		if c.Step(d) == o {
			return d, true
		}
	}
	return 0, false
}
