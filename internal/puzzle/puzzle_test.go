package puzzle

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-ricrob/game/types"

	"github.com/go-ricrob/photosolver/internal/board"
	"github.com/go-ricrob/photosolver/internal/solver"
)

const scenario = `{
	"board": {
		"walls": [[6, 5.5], [8.5, 5], [-0.5, 3]],
		"goals": {"rt": [8.0, 5.0]},
		"robots": {"red": [3, 7], "green": [4, 12], "yellow": [6, 4], "blue": [12, 2]}
	},
	"robot": "yellow",
	"goal": %s
}`

func TestSolveRequest(t *testing.T) {
	for _, goal := range []string{`[8, 5]`, `"rt"`} {
		req, err := ReadRequest(strings.NewReader(strings.Replace(scenario, "%s", goal, 1)))
		if err != nil {
			t.Fatal(err)
		}
		p, err := req.Problem()
		if err != nil {
			t.Fatal(err)
		}
		if p.Target != types.Yellow || p.Goal != (board.Cell{Row: 8, Col: 5}) {
			t.Fatalf("got target %v goal %s", p.Target, p.Goal)
		}

		s, err := solver.New(p.Board, p.Robots, p.Target, p.Goal)
		if err != nil {
			t.Fatal(err)
		}
		res, err := s.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		data, err := json.Marshal(Moves(res.Moves))
		if err != nil {
			t.Fatal(err)
		}
		if want := `[["yellow",[8,5],[6,5]],["yellow",[6,5],[6,4]]]`; string(data) != want {
			t.Fatalf("got %s, want %s", data, want)
		}

		var moves []Move
		if err := json.Unmarshal(data, &moves); err != nil {
			t.Fatal(err)
		}
		if got := SolverMoves(moves); len(got) != 2 || got[0] != res.Moves[0] || got[1] != res.Moves[1] {
			t.Fatalf("got %v, want %v", got, res.Moves)
		}
	}
}

func TestMalformedRequest(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"three robots", `{"board": {"walls": [], "robots": {"red": [0,0], "green": [0,1], "blue": [0,2]}}, "robot": "red", "goal": [5,5]}`},
		{"duplicate position", `{"board": {"walls": [], "robots": {"red": [0,0], "green": [0,0], "yellow": [1,1], "blue": [0,2]}}, "robot": "red", "goal": [5,5]}`},
		{"goal off board", `{"board": {"walls": [], "robots": {"red": [0,0], "green": [0,1], "yellow": [1,1], "blue": [0,2]}}, "robot": "red", "goal": [16,5]}`},
		{"unknown goal", `{"board": {"walls": [], "robots": {"red": [0,0], "green": [0,1], "yellow": [1,1], "blue": [0,2]}}, "robot": "red", "goal": "rt"}`},
		{"missing goal", `{"board": {"walls": [], "robots": {"red": [0,0], "green": [0,1], "yellow": [1,1], "blue": [0,2]}}, "robot": "red"}`},
		{"unknown robot", `{"board": {"walls": [], "robots": {"red": [0,0], "green": [0,1], "yellow": [1,1], "blue": [0,2]}}, "robot": "silver", "goal": [5,5]}`},
		{"robot off board", `{"board": {"walls": [], "robots": {"red": [0,20], "green": [0,1], "yellow": [1,1], "blue": [0,2]}}, "robot": "red", "goal": [5,5]}`},
		{"wall on corner", `{"board": {"walls": [[1.5, 1.5]], "robots": {"red": [0,0], "green": [0,1], "yellow": [1,1], "blue": [0,2]}}, "robot": "red", "goal": [5,5]}`},
		{"fractional cell", `{"board": {"walls": [], "robots": {"red": [0.5,0], "green": [0,1], "yellow": [1,1], "blue": [0,2]}}, "robot": "red", "goal": [5,5]}`},
		{"three component cell", `{"board": {"walls": [], "robots": {"red": [0,0,7], "green": [0,1], "yellow": [1,1], "blue": [0,2]}}, "robot": "red", "goal": [5,5]}`},
		{"single component goal", `{"board": {"walls": [], "robots": {"red": [0,0], "green": [0,1], "yellow": [1,1], "blue": [0,2]}}, "robot": "red", "goal": [5]}`},
		{"three component wall", `{"board": {"walls": [[1, 1.5, 2]], "robots": {"red": [0,0], "green": [0,1], "yellow": [1,1], "blue": [0,2]}}, "robot": "red", "goal": [5,5]}`},
		{"not json", `{"board": `},
	}
	for _, test := range tests {
		req, err := ReadRequest(strings.NewReader(test.doc))
		if err == nil {
			_, err = req.Problem()
		}
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: got error %v, want %v", test.name, err, ErrMalformed)
		}
	}
}

func TestFromBoard(t *testing.T) {
	b, err := ReadBoard(strings.NewReader(`{"walls": [[6, 5.5]], "goals": {"rt": [8, 5]}, "robots": {"red": [3, 7], "green": [4, 12], "yellow": [6, 4], "blue": [12, 2]}}`))
	if err != nil {
		t.Fatal(err)
	}
	bb, pos, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(FromBoard(bb, pos))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"size":16,"walls":[[6,5.5]],"goals":{"rt":[8,5]},"robots":{"blue":[12,2],"green":[4,12],"red":[3,7],"yellow":[6,4]}}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}
}
