// Package packed provides a memory efficient representation of the robot positions.
package packed

import (
	"hash/maphash"

	"github.com/go-ricrob/game/coord"

	"github.com/go-ricrob/photosolver/internal/board"
	"github.com/go-ricrob/photosolver/internal/robot"
)

// P4 is a compressed representation of 4 robots: one byte per robot, row in the high
// and column in the low nibble. The zero value is never a valid state as robots
// occupy distinct cells.
type P4 [robot.Num]byte

// Hash returns a hash value of p.
func (p P4) Hash(seed maphash.Seed) uint64 { return maphash.Bytes(seed, p[:]) }

// Ctob packs a cell into one byte, the row taking the place of the game's x coordinate.
func Ctob(c board.Cell) byte { return byte(c.Row<<4) | byte(c.Col) }

// Btoc unpacks one byte into a cell.
func Btoc(b byte) board.Cell {
	x, y := coord.Btoc(b)
	return board.Cell{Row: int(x), Col: int(y)}
}

// Pack returns the packed representation of the robot positions.
func Pack(pos robot.Positions) P4 {
	var p P4
	for i, c := range pos {
		p[i] = Ctob(c)
	}
	return p
}

// Unpack stores the packed representation into pos.
func Unpack(p P4, pos *robot.Positions) {
	for i, b := range p {
		pos[i] = Btoc(b)
	}
}

// SetRobot returns p with the robot at index idx moved to c.
func SetRobot(p P4, idx int, c board.Cell) P4 { p[idx] = Ctob(c); return p }

// Robot returns the cell of the robot at index idx.
func (p P4) Robot(idx int) board.Cell { return Btoc(p[idx]) }

// Occupied reports whether any robot stands on the packed cell b.
func (p P4) Occupied(b byte) bool {
	for _, r := range p {
		if r == b {
			return true
		}
	}
	return false
}
