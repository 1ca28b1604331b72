package solver

import (
	"github.com/go-ricrob/game/types"

	"github.com/go-ricrob/photosolver/internal/board"
	"github.com/go-ricrob/photosolver/internal/packed"
	"github.com/go-ricrob/photosolver/internal/robot"
)

// slide moves robot idx in direction d until a wall, the grid bounds or another robot
// stops it. ok is false if the robot cannot move at all.
func slide(b *board.Board, p packed.P4, idx int, d board.Direction) (c board.Cell, ok bool) {
	from := p.Robot(idx)
	c = from
	for !b.HasWall(c, d) {
		next := c.Step(d)
		if p.Occupied(packed.Ctob(next)) {
			break
		}
		c = next
	}
	return c, c != from
}

// Slide returns the destination of robot c sliding in direction d.
// ok is false if the robot is unknown or immediately blocked.
func Slide(b *board.Board, pos robot.Positions, c types.Color, d board.Direction) (board.Cell, bool) {
	idx, ok := robot.Index(c)
	if !ok {
		return board.Cell{}, false
	}
	return slide(b, packed.Pack(pos), idx, d)
}
