package solver

import (
	"errors"
	"testing"

	"github.com/go-ricrob/game/types"
	"golang.org/x/exp/slices"

	"github.com/go-ricrob/photosolver/internal/board"
	"github.com/go-ricrob/photosolver/internal/packed"
)

func TestReconstruct(t *testing.T) {
	start := packed.P4{0x00, 0x03, 0x30, 0x33}
	a := newArena(start)
	s1 := a.add(packed.SetRobot(start, 0, board.Cell{Row: 2, Col: 0}), 0)
	s2 := a.add(packed.SetRobot(a.nodes[s1].p, 3, board.Cell{Row: 3, Col: 1}), s1)

	want := []Move{
		{Robot: types.Blue, To: board.Cell{Row: 3, Col: 1}, From: board.Cell{Row: 3, Col: 3}},
		{Robot: types.Yellow, To: board.Cell{Row: 2, Col: 0}, From: board.Cell{Row: 0, Col: 0}},
	}

	state := State{a: a, idx: s2}
	if state.Moves() != 2 {
		t.Fatalf("got %d moves, want 2", state.Moves())
	}
	first, err := Reconstruct(state)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(first, want) {
		t.Fatalf("got %v, want %v", first, want)
	}
	second, err := Reconstruct(state)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(first, second) {
		t.Fatalf("reconstruction not idempotent: %v != %v", first, second)
	}

	fwd := Forward(first)
	if fwd[0] != want[1] || fwd[1] != want[0] {
		t.Fatalf("got forward moves %v", fwd)
	}
}

func TestReconstructInconsistent(t *testing.T) {
	start := packed.P4{0x00, 0x03, 0x30, 0x33}

	tests := []struct {
		name  string
		build func() State
	}{
		{"zero state", func() State { return State{} }},
		{"two robots moved", func() State {
			a := newArena(start)
			p := packed.SetRobot(start, 0, board.Cell{Row: 1, Col: 0})
			p = packed.SetRobot(p, 1, board.Cell{Row: 1, Col: 3})
			return State{a: a, idx: a.add(p, 0)}
		}},
		{"no robot moved", func() State {
			a := newArena(start)
			return State{a: a, idx: a.add(start, 0)}
		}},
		{"move count mismatch", func() State {
			a := newArena(start)
			idx := a.add(packed.SetRobot(start, 2, board.Cell{Row: 1, Col: 0}), 0)
			a.nodes[idx].moves = 5
			return State{a: a, idx: idx}
		}},
		{"initial state with moves", func() State {
			a := newArena(start)
			a.nodes[0].moves = 1
			return State{a: a, idx: 0}
		}},
	}
	for _, test := range tests {
		if _, err := Reconstruct(test.build()); !errors.Is(err, ErrInconsistentState) {
			t.Errorf("%s: got error %v, want %v", test.name, err, ErrInconsistentState)
		}
	}
}

func TestSlide(t *testing.T) {
	b := mustBoard(t, 4, [][2]float64{{1, 1.5}})
	pos := positions(
		board.Cell{Row: 1, Col: 0}, // yellow
		board.Cell{Row: 3, Col: 0}, // red
		board.Cell{Row: 0, Col: 3}, // green
		board.Cell{Row: 0, Col: 0}, // blue
	)

	tests := []struct {
		color types.Color
		dir   board.Direction
		want  board.Cell
		ok    bool
	}{
		{types.Yellow, board.East, board.Cell{Row: 1, Col: 1}, true}, // wall
		{types.Yellow, board.North, board.Cell{Row: 1, Col: 0}, false}, // robot
		{types.Yellow, board.South, board.Cell{Row: 2, Col: 0}, true},  // robot
		{types.Yellow, board.West, board.Cell{Row: 1, Col: 0}, false},  // bound
		{types.Red, board.East, board.Cell{Row: 3, Col: 3}, true},
		{types.Green, board.West, board.Cell{Row: 0, Col: 1}, true},
		{types.Green, board.South, board.Cell{Row: 3, Col: 3}, true},
	}
	for _, test := range tests {
		c, ok := Slide(b, pos, test.color, test.dir)
		if ok != test.ok || (ok && c != test.want) {
			t.Errorf("slide %v %s: got %s %t, want %s %t", test.color, test.dir, c, ok, test.want, test.ok)
		}
	}

	// approaching the wall from the other side
	pos[0] = board.Cell{Row: 1, Col: 3}
	if c, ok := Slide(b, pos, types.Yellow, board.West); !ok || c != (board.Cell{Row: 1, Col: 2}) {
		t.Errorf("got %s %t, want (1,2) true", c, ok)
	}
}
