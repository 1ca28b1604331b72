// Package puzzle implements the JSON format of recognized boards, solve requests and moves.
//
// A board document looks like
//
//	{
//	  "walls":  [[6, 5.5], [8.5, 5]],
//	  "goals":  {"rt": [8, 5]},
//	  "robots": {"red": [3, 7], "green": [4, 12], "yellow": [6, 4], "blue": [12, 2]}
//	}
//
// Cells are [row, col] pairs, walls use a half-integer component for the edge they lie on.
package puzzle

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-ricrob/game/types"

	"github.com/go-ricrob/photosolver/internal/board"
	"github.com/go-ricrob/photosolver/internal/robot"
)

// ErrMalformed is returned for documents that do not describe a solvable request.
var ErrMalformed = errors.New("malformed request")

var errPair = errors.New("want [row, col]")

func decodePair(data []byte) ([2]float64, error) {
	var v []float64
	if err := json.Unmarshal(data, &v); err != nil {
		return [2]float64{}, err
	}
	if len(v) != 2 {
		return [2]float64{}, errPair
	}
	return [2]float64{v[0], v[1]}, nil
}

// Cell is a board cell encoded as [row, col].
type Cell board.Cell

// MarshalJSON implements json.Marshaler.
func (c Cell) MarshalJSON() ([]byte, error) { return json.Marshal([2]int{c.Row, c.Col}) }

// UnmarshalJSON implements json.Unmarshaler. Integral floats are accepted.
func (c *Cell) UnmarshalJSON(data []byte) error {
	v, err := decodePair(data)
	if err != nil {
		return fmt.Errorf("%w: cell %s: %w", ErrMalformed, data, err)
	}
	for _, f := range v {
		if f != math.Trunc(f) {
			return fmt.Errorf("%w: cell %s is not integral", ErrMalformed, data)
		}
	}
	c.Row, c.Col = int(v[0]), int(v[1])
	return nil
}

// Wall is a wall encoded as [row, col] with one half-integer component.
type Wall board.Wall

// MarshalJSON implements json.Marshaler.
func (w Wall) MarshalJSON() ([]byte, error) {
	row, col := board.Wall(w).Coords()
	return json.Marshal([2]float64{row, col})
}

// UnmarshalJSON implements json.Unmarshaler.
func (w *Wall) UnmarshalJSON(data []byte) error {
	v, err := decodePair(data)
	if err != nil {
		return fmt.Errorf("%w: wall %s: %w", ErrMalformed, data, err)
	}
	bw, err := board.ParseWall(v[0], v[1])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	*w = Wall(bw)
	return nil
}

// Board is a recognized board.
type Board struct {
	Size   int             `json:"size,omitempty"` // defaults to 16
	Walls  []Wall          `json:"walls"`
	Goals  map[string]Cell `json:"goals,omitempty"`
	Robots map[string]Cell `json:"robots"`
}

// Build returns the board model and robot positions of the document.
func (b *Board) Build() (*board.Board, robot.Positions, error) {
	size := b.Size
	if size == 0 {
		size = board.Size
	}
	walls := make([]board.Wall, len(b.Walls))
	for i, w := range b.Walls {
		walls[i] = board.Wall(w)
	}
	goals := make(map[string]board.Cell, len(b.Goals))
	for name, c := range b.Goals {
		goals[name] = board.Cell(c)
	}
	bb, err := board.New(size, walls, goals)
	if err != nil {
		return nil, robot.Positions{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	cells := make(map[string]board.Cell, len(b.Robots))
	for name, c := range b.Robots {
		cells[name] = board.Cell(c)
	}
	pos, err := robot.FromMap(cells)
	if err != nil {
		return nil, robot.Positions{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := pos.Validate(bb); err != nil {
		return nil, robot.Positions{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return bb, pos, nil
}

// FromBoard returns the document of a board model and robot positions.
func FromBoard(b *board.Board, pos robot.Positions) *Board {
	doc := &Board{
		Size:   b.Size(),
		Walls:  make([]Wall, 0, len(b.Walls())),
		Goals:  map[string]Cell{},
		Robots: map[string]Cell{},
	}
	for _, w := range b.Walls() {
		doc.Walls = append(doc.Walls, Wall(w))
	}
	for name, c := range b.Goals() {
		doc.Goals[name] = Cell(c)
	}
	for name, c := range pos.Map() {
		doc.Robots[name] = Cell(c)
	}
	return doc
}

// Goal is either a [row, col] cell or the name of a board goal.
type Goal struct {
	Name string
	Cell *Cell
}

// MarshalJSON implements json.Marshaler.
func (g Goal) MarshalJSON() ([]byte, error) {
	if g.Cell != nil {
		return json.Marshal(g.Cell)
	}
	return json.Marshal(g.Name)
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Goal) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*g = Goal{Name: name}
		return nil
	}
	c := new(Cell)
	if err := json.Unmarshal(data, c); err != nil {
		return err
	}
	*g = Goal{Cell: c}
	return nil
}

// Request asks to bring Robot to Goal on Board.
type Request struct {
	Board Board  `json:"board"`
	Robot string `json:"robot"`
	Goal  Goal   `json:"goal"`
}

// Problem is a validated request.
type Problem struct {
	Board  *board.Board
	Robots robot.Positions
	Target types.Color
	Goal   board.Cell
}

// Problem validates the request.
func (r *Request) Problem() (*Problem, error) {
	b, pos, err := r.Board.Build()
	if err != nil {
		return nil, err
	}
	target, err := robot.Parse(r.Robot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var goal board.Cell
	switch {
	case r.Goal.Cell != nil:
		goal = board.Cell(*r.Goal.Cell)
	case r.Goal.Name != "":
		c, ok := b.Goal(r.Goal.Name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown goal %q", ErrMalformed, r.Goal.Name)
		}
		goal = c
	default:
		return nil, fmt.Errorf("%w: missing goal", ErrMalformed)
	}
	if !b.Inside(goal) {
		return nil, fmt.Errorf("%w: goal %s off board", ErrMalformed, goal)
	}
	return &Problem{Board: b, Robots: pos, Target: target, Goal: goal}, nil
}

// ReadRequest decodes a solve request.
func ReadRequest(r io.Reader) (*Request, error) {
	req := new(Request)
	if err := json.NewDecoder(r).Decode(req); err != nil {
		if errors.Is(err, ErrMalformed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return req, nil
}

// ReadBoard decodes a board document.
func ReadBoard(r io.Reader) (*Board, error) {
	b := new(Board)
	if err := json.NewDecoder(r).Decode(b); err != nil {
		if errors.Is(err, ErrMalformed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return b, nil
}
