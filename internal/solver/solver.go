// Package solver implements a breadth first solver for ricochet robots boards.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-ricrob/game/types"
	"github.com/rs/zerolog/log"

	"github.com/go-ricrob/photosolver/internal/board"
	"github.com/go-ricrob/photosolver/internal/packed"
	"github.com/go-ricrob/photosolver/internal/robot"
)

var (
	// ErrMalformed is returned by New for inputs the search cannot start from.
	ErrMalformed = errors.New("malformed board")
	// ErrNoSolution is returned when the reachable states are exhausted without reaching the goal.
	ErrNoSolution = errors.New("no solution found")
	// ErrSearchLimit is returned when the explored states exceed the configured limit.
	ErrSearchLimit = errors.New("search limit reached")
)

// ctx is checked every checkEvery expanded states.
const checkEvery = 1 << 14

// ProgressFunc is called when the search starts a new level with the level (number of
// moves of the states expanded next) and the number of states found so far.
type ProgressFunc func(level, numStates int)

type options struct {
	workers   int
	maxStates int
	progress  ProgressFunc
}

// Option configures a Solver.
type Option func(*options)

// WithWorkers sets the number of goroutines expanding states. Values below 2 select the
// sequential engine.
func WithWorkers(n int) Option { return func(o *options) { o.workers = n } }

// WithMaxStates bounds the number of explored states: finding more than n states stops
// the search. Zero means unbounded.
func WithMaxStates(n int) Option { return func(o *options) { o.maxStates = n } }

// WithProgress registers a level progress callback.
func WithProgress(fn ProgressFunc) Option { return func(o *options) { o.progress = fn } }

// Result is the outcome of a successful search.
type Result struct {
	// Moves in reverse-chronological order, see Reconstruct.
	Moves       []Move
	NumMoves    int
	NumCalcMove int // number of states found
	State       State
}

// Solver searches the shortest sequence of slides bringing the target robot to the goal.
// A Solver owns no mutable state: Run may be called concurrently.
type Solver struct {
	board       *board.Board
	start       packed.P4
	targetIdx   int
	targetCoord byte
	opts        options
}

// New validates the inputs and returns a solver.
func New(b *board.Board, pos robot.Positions, target types.Color, goal board.Cell, opts ...Option) (*Solver, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: no board", ErrMalformed)
	}
	if err := pos.Validate(b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	targetIdx, ok := robot.Index(target)
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, robot.ErrUnknown)
	}
	if !b.Inside(goal) {
		return nil, fmt.Errorf("%w: goal %s off board", ErrMalformed, goal)
	}

	s := &Solver{
		board:       b,
		start:       packed.Pack(pos),
		targetIdx:   targetIdx,
		targetCoord: packed.Ctob(goal),
		opts:        options{workers: 1},
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s, nil
}

func (s *Solver) isSolution(p packed.P4) bool { return p[s.targetIdx] == s.targetCoord }

func (s *Solver) level(level, numStates int) {
	if s.opts.progress != nil {
		s.opts.progress(level, numStates)
	}
}

func (s *Solver) limitReached(numStates int) bool {
	return s.opts.maxStates > 0 && numStates > s.opts.maxStates
}

// Run searches the state graph. It returns ErrNoSolution if the goal cannot be reached,
// ErrSearchLimit if the state limit was hit and the context error if ctx is done.
func (s *Solver) Run(ctx context.Context) (*Result, error) {
	started := time.Now()

	var (
		state     State
		numStates int
		err       error
	)
	if s.opts.workers > 1 {
		state, numStates, err = s.runParallel(ctx)
	} else {
		state, numStates, err = s.runSequential(ctx)
	}
	if err != nil {
		log.Debug().Err(err).Int("numCalcMove", numStates).Dur("took", time.Since(started)).Msg("search failed")
		return nil, err
	}

	moves, err := Reconstruct(state)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("numMoves", len(moves)).
		Int("numCalcMove", numStates).
		Int("workers", s.opts.workers).
		Dur("took", time.Since(started)).
		Msg("search finished")

	return &Result{Moves: moves, NumMoves: len(moves), NumCalcMove: numStates, State: state}, nil
}

// runSequential is a plain FIFO breadth first search. The arena doubles as the queue:
// states are appended in discovery order and expanded from head on.
func (s *Solver) runSequential(ctx context.Context) (State, int, error) {
	a := newArena(s.start)
	if s.isSolution(s.start) {
		return State{a: a, idx: 0}, 1, nil
	}

	visited := map[packed.P4]struct{}{s.start: {}}
	level := int32(-1)

	for head := 0; head < len(a.nodes); head++ {
		n := a.nodes[head]
		if n.moves != level {
			level = n.moves
			s.level(int(level), len(visited))
		}
		if head%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return State{}, len(visited), err
			}
		}

		for idx := 0; idx < len(n.p); idx++ {
			for _, d := range board.Directions {
				c, ok := slide(s.board, n.p, idx, d)
				if !ok {
					continue
				}
				to := packed.SetRobot(n.p, idx, c)
				if _, ok := visited[to]; ok {
					continue
				}
				visited[to] = struct{}{}
				i := a.add(to, int32(head))
				// only a move of the target robot can reach the goal
				if idx == s.targetIdx && s.isSolution(to) {
					return State{a: a, idx: i}, len(visited), nil
				}
			}
		}

		if s.limitReached(len(visited)) {
			return State{}, len(visited), ErrSearchLimit
		}
	}
	return State{}, len(visited), ErrNoSolution
}
