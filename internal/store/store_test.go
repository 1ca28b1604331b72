package store

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T, s Store) {
	ctx := context.Background()
	want := &Solution{
		ID:          "abcdef",
		Robot:       "yellow",
		Request:     []byte(`{"robot":"yellow"}`),
		Moves:       []byte(`[["yellow",[8,5],[6,5]],["yellow",[6,5],[6,4]]]`),
		NumMoves:    2,
		NumCalcMove: 120,
		GIF:         []byte("GIF89a"),
		CreatedAt:   time.Date(2024, 4, 15, 10, 26, 19, 0, time.UTC),
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, want.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Robot != want.Robot || got.NumMoves != want.NumMoves || got.NumCalcMove != want.NumCalcMove ||
		!bytes.Equal(got.Moves, want.Moves) || !bytes.Equal(got.GIF, want.GIF) ||
		!bytes.Equal(got.Request, want.Request) || !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got error %v, want %v", err, ErrNotFound)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	s, closeDB, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "solutions.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	defer closeDB()
	testStore(t, s)
}
