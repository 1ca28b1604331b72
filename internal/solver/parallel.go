package solver

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-ricrob/photosolver/internal/board"
	"github.com/go-ricrob/photosolver/internal/packed"
	"github.com/go-ricrob/photosolver/internal/partmap"
)

const (
	numCh          = 1000
	partsPerWorker = 64
)

type nextLevel struct {
	wg       *sync.WaitGroup
	workerCh <-chan packed.P4
}

// solution records the first goal state found by any worker.
type solution struct {
	found atomic.Bool
	to    packed.P4 // written once by the worker winning found
}

func (s *Solver) worker(pm *partmap.Map, sol *solution, wg *sync.WaitGroup, nextLevelCh <-chan *nextLevel) {
	defer wg.Done()

	for nextLevel := range nextLevelCh {
		for p := range nextLevel.workerCh {
			for idx := 0; idx < len(p); idx++ {
				for _, d := range board.Directions {
					c, ok := slide(s.board, p, idx, d)
					if !ok {
						continue
					}
					to := packed.SetRobot(p, idx, c)
					if pm.StoreTarget(to, p) && idx == s.targetIdx && s.isSolution(to) {
						if sol.found.CompareAndSwap(false, true) {
							sol.to = to
						}
					}
				}
			}
		}
		nextLevel.wg.Done()
	}
}

// runParallel expands one BFS level at a time with a pool of workers. All states of a
// level are discovered before the next level starts, so the first level containing a
// goal state yields a minimal move count.
func (s *Solver) runParallel(ctx context.Context) (State, int, error) {
	if s.isSolution(s.start) {
		return State{a: newArena(s.start), idx: 0}, 1, nil
	}

	numWorker := s.opts.workers
	pm := partmap.New(s.start, uint64(numWorker*partsPerWorker))
	sol := new(solution)

	// spin up workers
	workerWg := new(sync.WaitGroup)
	workerWg.Add(numWorker)
	var nextLevelChs []chan *nextLevel
	for i := 0; i < numWorker; i++ {
		nextLevelCh := make(chan *nextLevel, 1)
		go s.worker(pm, sol, workerWg, nextLevelCh)
		nextLevelChs = append(nextLevelChs, nextLevelCh)
	}
	defer func() {
		for _, nextLevelCh := range nextLevelChs {
			close(nextLevelCh)
		}
		workerWg.Wait()
	}()

	for level := 0; ; level++ {
		s.level(level, pm.Size())
		if err := ctx.Err(); err != nil {
			return State{}, pm.Size(), err
		}

		workerCh := make(chan packed.P4, numCh)
		nextLevelWg := new(sync.WaitGroup)
		nextLevelWg.Add(numWorker)
		next := &nextLevel{wg: nextLevelWg, workerCh: workerCh}
		for _, nextLevelCh := range nextLevelChs {
			nextLevelCh <- next
		}

	feed:
		for i := 0; i < pm.NumPart(); i++ {
			for _, p := range pm.Source(i) {
				if sol.found.Load() {
					break feed
				}
				workerCh <- p
			}
		}
		// wait for level to be finalized
		close(workerCh)
		nextLevelWg.Wait()

		if sol.found.Load() {
			state, err := chain(pm, s.start, sol.to)
			return state, pm.Size(), err
		}
		if pm.NumTarget() == 0 {
			return State{}, pm.Size(), ErrNoSolution
		}
		if s.limitReached(pm.Size()) {
			return State{}, pm.Size(), ErrSearchLimit
		}

		pm.SwapTargets()
	}
}

// chain copies the path from start to the state to out of the to/from map into an arena.
func chain(pm *partmap.Map, start, to packed.P4) (State, error) {
	path := []packed.P4{to}
	for p := to; p != start; {
		from, ok := pm.Load(p)
		if !ok {
			return State{}, fmt.Errorf("%w: state %v has no predecessor", ErrInconsistentState, p)
		}
		if len(path) > pm.Size() {
			return State{}, fmt.Errorf("%w: predecessor cycle", ErrInconsistentState)
		}
		path = append(path, from)
		p = from
	}

	a := newArena(start)
	var idx int32
	for i := len(path) - 2; i >= 0; i-- {
		idx = a.add(path[i], idx)
	}
	return State{a: a, idx: idx}, nil
}
