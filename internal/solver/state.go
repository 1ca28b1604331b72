package solver

import (
	"errors"
	"fmt"

	"github.com/go-ricrob/game/types"

	"github.com/go-ricrob/photosolver/internal/board"
	"github.com/go-ricrob/photosolver/internal/packed"
	"github.com/go-ricrob/photosolver/internal/robot"
)

// ErrInconsistentState reports a broken predecessor chain.
var ErrInconsistentState = errors.New("inconsistent state")

// Move is a single ricochet slide of one robot.
type Move struct {
	Robot    types.Color
	To, From board.Cell
}

func (m Move) String() string { return fmt.Sprintf("%s %s->%s", robot.Name(m.Robot), m.From, m.To) }

type node struct {
	p      packed.P4
	parent int32 // -1 for the initial state
	moves  int32
}

// arena stores the states of one search. Parents always precede their children.
type arena struct {
	nodes []node
}

func newArena(start packed.P4) *arena {
	a := &arena{}
	a.add(start, -1)
	return a
}

func (a *arena) add(p packed.P4, parent int32) int32 {
	var moves int32
	if parent >= 0 {
		moves = a.nodes[parent].moves + 1
	}
	a.nodes = append(a.nodes, node{p: p, parent: parent, moves: moves})
	return int32(len(a.nodes) - 1)
}

// State is a handle to a search state: the positions of all robots, the number of
// moves made and the state it was reached from.
type State struct {
	a   *arena
	idx int32
}

// IsZero reports whether s refers to no state.
func (s State) IsZero() bool { return s.a == nil }

func (s State) node() node { return s.a.nodes[s.idx] }

// Robots returns the robot positions of s.
func (s State) Robots() robot.Positions {
	var pos robot.Positions
	packed.Unpack(s.node().p, &pos)
	return pos
}

// Moves returns the number of moves leading to s.
func (s State) Moves() int { return int(s.node().moves) }

// Parent returns the predecessor of s. ok is false for the initial state.
func (s State) Parent() (parent State, ok bool) {
	n := s.node()
	if n.parent < 0 {
		return State{}, false
	}
	return State{a: s.a, idx: n.parent}, true
}

func moveIdx(from, to packed.P4) (int, error) {
	idx := -1
	for i := 0; i < len(from); i++ {
		if from[i] != to[i] {
			if idx >= 0 {
				return 0, fmt.Errorf("%w: robots %d and %d moved in one step", ErrInconsistentState, idx, i)
			}
			idx = i
		}
	}
	if idx < 0 {
		return 0, fmt.Errorf("%w: no robot moved", ErrInconsistentState)
	}
	return idx, nil
}

// Reconstruct walks the predecessors of s back to the initial state and returns one move
// per step. The list is reverse-chronological: the first entry is the move reaching s,
// the last one the first move made from the initial state.
func Reconstruct(s State) ([]Move, error) {
	if s.IsZero() {
		return nil, fmt.Errorf("%w: no state", ErrInconsistentState)
	}
	moves := make([]Move, 0, s.Moves())
	for {
		parent, ok := s.Parent()
		if !ok {
			if s.Moves() != 0 {
				return nil, fmt.Errorf("%w: initial state after %d moves", ErrInconsistentState, s.Moves())
			}
			return moves, nil
		}
		if parent.idx >= s.idx {
			return nil, fmt.Errorf("%w: predecessor %d not before %d", ErrInconsistentState, parent.idx, s.idx)
		}
		if s.Moves() != parent.Moves()+1 {
			return nil, fmt.Errorf("%w: move count %d after %d", ErrInconsistentState, s.Moves(), parent.Moves())
		}
		from, to := parent.node().p, s.node().p
		idx, err := moveIdx(from, to)
		if err != nil {
			return nil, err
		}
		moves = append(moves, Move{Robot: robot.Colors[idx], To: to.Robot(idx), From: from.Robot(idx)})
		s = parent
	}
}

// Forward returns a copy of the reverse-chronological moves in playing order.
func Forward(moves []Move) []Move {
	fwd := make([]Move, len(moves))
	for i, m := range moves {
		fwd[len(moves)-1-i] = m
	}
	return fwd
}
