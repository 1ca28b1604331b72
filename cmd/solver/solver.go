package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-ricrob/photosolver/internal/puzzle"
	"github.com/go-ricrob/photosolver/internal/render"
	"github.com/go-ricrob/photosolver/internal/solver"
)

type args struct {
	request   string
	robot     string
	goal      string
	gif       string
	workers   int
	maxStates int
	timeout   time.Duration
	verbose   bool
}

type output struct {
	Moves       []puzzle.Move `json:"moves"` // reverse-chronological
	NumMoves    int           `json:"num_moves"`
	NumCalcMove int           `json:"num_calc_move"`
}

// parseGoal accepts "row,col" or a board goal name.
func parseGoal(s string) puzzle.Goal {
	if parts := strings.Split(s, ","); len(parts) == 2 {
		row, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		col, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 == nil && err2 == nil {
			return puzzle.Goal{Cell: &puzzle.Cell{Row: row, Col: col}}
		}
	}
	return puzzle.Goal{Name: s}
}

func readRequest(a *args, stdin io.Reader) (*puzzle.Request, error) {
	r := stdin
	if a.request != "-" {
		f, err := os.Open(a.request)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	req, err := puzzle.ReadRequest(r)
	if err != nil {
		return nil, err
	}
	if a.robot != "" {
		req.Robot = a.robot
	}
	if a.goal != "" {
		req.Goal = parseGoal(a.goal)
	}
	return req, nil
}

func solve(a *args, stdin io.Reader, stdout io.Writer) error {
	req, err := readRequest(a, stdin)
	if err != nil {
		return err
	}
	p, err := req.Problem()
	if err != nil {
		return err
	}

	s, err := solver.New(p.Board, p.Robots, p.Target, p.Goal,
		solver.WithWorkers(a.workers),
		solver.WithMaxStates(a.maxStates),
		solver.WithProgress(func(level, numStates int) {
			log.Debug().Int("level", level).Int("numStates", numStates).Msg("level")
		}),
	)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	result, err := s.Run(ctx)
	if err != nil {
		return err
	}
	for i, m := range solver.Forward(result.Moves) {
		log.Info().Int("move", i+1).Msg(m.String())
	}

	if a.gif != "" {
		f, err := os.Create(a.gif)
		if err != nil {
			return err
		}
		if err := render.GIF(f, p.Board, p.Robots, result.Moves, p.Goal, render.Options{}); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output{Moves: puzzle.Moves(result.Moves), NumMoves: result.NumMoves, NumCalcMove: result.NumCalcMove})
}

func main() {
	a := new(args)
	flag.StringVar(&a.request, "request", "-", "solve request JSON file (- for stdin)")
	flag.StringVar(&a.robot, "robot", "", "target robot, overrides the request")
	flag.StringVar(&a.goal, "goal", "", "goal as row,col or goal name, overrides the request")
	flag.StringVar(&a.gif, "gif", "", "write the solution animation to this file")
	flag.IntVar(&a.workers, "workers", 1, "number of search workers")
	flag.IntVar(&a.maxStates, "max-states", 0, "bound the number of explored states (0: unbounded)")
	flag.DurationVar(&a.timeout, "timeout", 0, "search timeout (0: none)")
	flag.BoolVar(&a.verbose, "v", false, "verbose logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if a.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := solve(a, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
