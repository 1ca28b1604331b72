package httpserver

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/go-ricrob/photosolver/internal/puzzle"
	"github.com/go-ricrob/photosolver/internal/render"
	"github.com/go-ricrob/photosolver/internal/robot"
	"github.com/go-ricrob/photosolver/internal/solver"
	"github.com/go-ricrob/photosolver/internal/store"
)

const (
	idLen        = 12
	maxImageSize = 32 << 20
)

var errInvalidID = errors.New("invalid solution id")

// classify maps an error to a HTTP status and an error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, puzzle.ErrMalformed), errors.Is(err, solver.ErrMalformed):
		return http.StatusBadRequest, "malformed"
	case errors.Is(err, errInvalidID):
		return http.StatusBadRequest, "invalid_id"
	case errors.Is(err, solver.ErrNoSolution):
		return http.StatusUnprocessableEntity, "no_solution"
	case errors.Is(err, solver.ErrSearchLimit), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "search_limit"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "canceled"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

type solveRes struct {
	Msg         string        `json:"msg"`
	SolutionID  string        `json:"solution_id"`
	Moves       []puzzle.Move `json:"moves"` // reverse-chronological
	NumMoves    int           `json:"num_moves"`
	NumCalcMove int           `json:"num_calc_move,omitempty"`
}

// newID returns a random alphabetic solution id.
func newID() (string, error) {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, idLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = letters[int(b[i])%len(letters)]
	}
	return string(b), nil
}

func validID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// solve runs the solver for req, renders and stores the solution.
func (s *Server) solve(ctx context.Context, req *puzzle.Request, progress solver.ProgressFunc) (*solveRes, error) {
	p, err := req.Problem()
	if err != nil {
		return nil, err
	}

	opts := []solver.Option{solver.WithWorkers(s.opts.Workers), solver.WithMaxStates(s.opts.MaxStates)}
	if progress != nil {
		opts = append(opts, solver.WithProgress(progress))
	}
	sv, err := solver.New(p.Board, p.Robots, p.Target, p.Goal, opts...)
	if err != nil {
		return nil, err
	}

	solveCtx, cancel := context.WithTimeout(ctx, s.opts.SolveTimeout)
	defer cancel()
	res, err := sv.Run(solveCtx)
	if err != nil {
		return nil, err
	}

	var gif bytes.Buffer
	if err := render.GIF(&gif, p.Board, p.Robots, res.Moves, p.Goal, render.Options{Delay: s.opts.FrameDelay}); err != nil {
		return nil, fmt.Errorf("render solution: %w", err)
	}
	moves := puzzle.Moves(res.Moves)
	movesJSON, err := json.Marshal(moves)
	if err != nil {
		return nil, err
	}
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	id, err := newID()
	if err != nil {
		return nil, err
	}

	sol := &store.Solution{
		ID:          id,
		Robot:       robot.Name(p.Target),
		Request:     reqJSON,
		Moves:       movesJSON,
		NumMoves:    res.NumMoves,
		NumCalcMove: res.NumCalcMove,
		GIF:         gif.Bytes(),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Save(ctx, sol); err != nil {
		return nil, err
	}
	log.Info().
		Str("solutionId", id).
		Str("robot", sol.Robot).
		Int("numMoves", res.NumMoves).
		Int("numCalcMove", res.NumCalcMove).
		Msg("solved")

	return &solveRes{Msg: "success", SolutionID: id, Moves: moves, NumMoves: res.NumMoves, NumCalcMove: res.NumCalcMove}, nil
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	req, err := puzzle.ReadRequest(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.solve(r.Context(), req, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) lookup(r *http.Request) (*store.Solution, error) {
	id := chi.URLParam(r, "id")
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", errInvalidID, id)
	}
	return s.store.Get(r.Context(), id)
}

func (s *Server) handleSolutionGIF(w http.ResponseWriter, r *http.Request) {
	sol, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/gif")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(sol.GIF); err != nil {
		log.Warn().Err(err).Str("solutionId", sol.ID).Msg("write gif")
	}
}

func (s *Server) handleSolutionMoves(w http.ResponseWriter, r *http.Request) {
	sol, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Msg        string          `json:"msg"`
		SolutionID string          `json:"solution_id"`
		Robot      string          `json:"robot"`
		Moves      json.RawMessage `json:"moves"`
		NumMoves   int             `json:"num_moves"`
	}{"success", sol.ID, sol.Robot, sol.Moves, sol.NumMoves})
}

func (s *Server) handleImageSize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, fmt.Errorf("%w: %w", puzzle.ErrMalformed, err))
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %w", puzzle.ErrMalformed, err))
		return
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %w", puzzle.ErrMalformed, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"msg": "success", "size": [2]int{cfg.Width, cfg.Height}})
}
