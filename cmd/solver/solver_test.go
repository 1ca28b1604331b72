package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-ricrob/photosolver/internal/solver"
)

const request = `{
	"board": {
		"walls": [[6, 5.5], [8.5, 5]],
		"goals": {"rt": [8, 5]},
		"robots": {"red": [3, 7], "green": [4, 12], "yellow": [6, 4], "blue": [12, 2]}
	},
	"robot": "red",
	"goal": [0, 0]
}`

func TestSolver(t *testing.T) {
	gif := filepath.Join(t.TempDir(), "solution.gif")

	tests := []struct {
		args     *args
		numMoves int
		wantErr  bool
	}{
		{&args{request: "-", robot: "yellow", goal: "8,5", workers: 1}, 2, false},
		{&args{request: "-", robot: "yellow", goal: "rt", workers: 2, gif: gif}, 2, false},
		{&args{request: "-", goal: "0,7", workers: 1}, 1, false},
		{&args{request: "-", robot: "yellow", goal: "16,0", workers: 1}, 0, true},
	}

	for i, test := range tests {
		var out bytes.Buffer
		err := solve(test.args, strings.NewReader(request), &out)
		if test.wantErr {
			if err == nil {
				t.Fatalf("test %d: expected error", i)
			}
			continue
		}
		if err != nil {
			t.Fatal(err)
		}
		var o output
		if err := json.Unmarshal(out.Bytes(), &o); err != nil {
			t.Fatal(err)
		}
		if o.NumMoves != test.numMoves || len(o.Moves) != test.numMoves {
			t.Fatalf("test %d: got %d moves, want %d", i, o.NumMoves, test.numMoves)
		}
	}

	if fi, err := os.Stat(gif); err != nil || fi.Size() == 0 {
		t.Fatalf("no gif written: %v", err)
	}
}

func TestSolverNoSolution(t *testing.T) {
	req := `{"board": {"size": 4, "walls": [[0.5, 1], [1.5, 1], [1, 0.5], [1, 1.5]],
		"robots": {"yellow": [3, 3], "red": [3, 0], "green": [0, 3], "blue": [0, 0]}}, "robot": "yellow", "goal": [1, 1]}`
	var out bytes.Buffer
	if err := solve(&args{request: "-", workers: 1}, strings.NewReader(req), &out); !errors.Is(err, solver.ErrNoSolution) {
		t.Fatalf("got error %v, want %v", err, solver.ErrNoSolution)
	}
}
