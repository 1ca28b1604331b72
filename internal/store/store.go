// Package store persists solved requests so their moves and animation can be fetched later.
package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by Get for unknown ids.
var ErrNotFound = errors.New("solution not found")

// Solution is a stored solve result.
type Solution struct {
	ID          string
	Robot       string
	Request     []byte // solve request document
	Moves       []byte // JSON move list, reverse-chronological
	NumMoves    int
	NumCalcMove int
	GIF         []byte
	CreatedAt   time.Time
}

// Store defines the persistence interface for solutions.
type Store interface {
	// Save persists or replaces a solution.
	Save(ctx context.Context, s *Solution) error
	// Get retrieves a solution by id, ErrNotFound if missing.
	Get(ctx context.Context, id string) (*Solution, error)
}

type memory struct {
	mu        sync.RWMutex
	solutions map[string]*Solution
}

// NewMemoryStore returns a Store keeping solutions in memory until the process exits.
func NewMemoryStore() Store {
	return &memory{solutions: make(map[string]*Solution)}
}

func (m *memory) Save(ctx context.Context, s *Solution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *s
	m.solutions[s.ID] = &c
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Solution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.solutions[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, ErrNotFound
}
