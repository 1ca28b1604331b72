package puzzle

import (
	"encoding/json"
	"fmt"

	"github.com/go-ricrob/photosolver/internal/board"
	"github.com/go-ricrob/photosolver/internal/robot"
	"github.com/go-ricrob/photosolver/internal/solver"
)

// Move is a slide encoded as the tuple [robot, [row, col] destination, [row, col] origin].
type Move solver.Move

// MarshalJSON implements json.Marshaler.
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{robot.Name(m.Robot), Cell(m.To), Cell(m.From)})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Move) UnmarshalJSON(data []byte) error {
	var v [3]json.RawMessage
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: move %s: %w", ErrMalformed, data, err)
	}
	var name string
	if err := json.Unmarshal(v[0], &name); err != nil {
		return fmt.Errorf("%w: move robot %s: %w", ErrMalformed, v[0], err)
	}
	color, err := robot.Parse(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	var to, from Cell
	if err := json.Unmarshal(v[1], &to); err != nil {
		return err
	}
	if err := json.Unmarshal(v[2], &from); err != nil {
		return err
	}
	*m = Move{Robot: color, To: board.Cell(to), From: board.Cell(from)}
	return nil
}

// Moves converts solver moves keeping their order.
func Moves(moves []solver.Move) []Move {
	ms := make([]Move, len(moves))
	for i, m := range moves {
		ms[i] = Move(m)
	}
	return ms
}

// SolverMoves converts decoded moves back, keeping their order.
func SolverMoves(moves []Move) []solver.Move {
	ms := make([]solver.Move, len(moves))
	for i, m := range moves {
		ms[i] = solver.Move(m)
	}
	return ms
}
