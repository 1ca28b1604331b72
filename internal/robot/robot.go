// Package robot names the four robots and holds their board positions.
package robot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-ricrob/game/types"

	"github.com/go-ricrob/photosolver/internal/board"
)

// Num is the number of robots on the board.
const Num = 4

var (
	ErrUnknown   = errors.New("unknown robot")
	ErrMissing   = errors.New("missing robot")
	ErrDuplicate = errors.New("duplicate robot position")
	ErrOffBoard  = errors.New("robot off board")
)

// Colors lists the robots in index order. The index is the robot's slot in Positions
// and in packed states.
var Colors = [Num]types.Color{types.Yellow, types.Red, types.Green, types.Blue}

var names = [Num]string{"yellow", "red", "green", "blue"}

// Index returns the slot of robot c.
func Index(c types.Color) (int, bool) {
	for i, color := range Colors {
		if color == c {
			return i, true
		}
	}
	return 0, false
}

// Parse returns the robot of the given color name.
func Parse(name string) (types.Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return Colors[i], nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Name returns the color name of robot c.
func Name(c types.Color) string {
	if i, ok := Index(c); ok {
		return names[i]
	}
	return "unknown"
}

// Positions holds the cell of every robot, indexed like Colors.
type Positions [Num]board.Cell

// FromMap builds positions from a name keyed map. All four robots are required.
func FromMap(m map[string]board.Cell) (Positions, error) {
	var p Positions
	seen := [Num]bool{}
	for name, c := range m {
		color, err := Parse(name)
		if err != nil {
			return p, err
		}
		i, _ := Index(color)
		if seen[i] {
			return p, fmt.Errorf("%w: %s given twice", ErrDuplicate, name)
		}
		seen[i] = true
		p[i] = c
	}
	for i, ok := range seen {
		if !ok {
			return p, fmt.Errorf("%w: %s", ErrMissing, names[i])
		}
	}
	return p, nil
}

// Map returns the positions keyed by color name.
func (p Positions) Map() map[string]board.Cell {
	m := make(map[string]board.Cell, Num)
	for i, c := range p {
		m[names[i]] = c
	}
	return m
}

// Cell returns the position of robot c.
func (p Positions) Cell(c types.Color) (board.Cell, bool) {
	i, ok := Index(c)
	if !ok {
		return board.Cell{}, false
	}
	return p[i], true
}

// Validate checks that all robots stand on distinct cells of b.
func (p Positions) Validate(b *board.Board) error {
	for i, c := range p {
		if !b.Inside(c) {
			return fmt.Errorf("%w: %s at %s", ErrOffBoard, names[i], c)
		}
		for j := 0; j < i; j++ {
			if p[j] == c {
				return fmt.Errorf("%w: %s and %s at %s", ErrDuplicate, names[j], names[i], c)
			}
		}
	}
	return nil
}
