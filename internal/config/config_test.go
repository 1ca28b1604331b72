package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SOLVER_WORKERS", "4")
	t.Setenv("SOLVE_TIMEOUT", "")
	t.Setenv("SOLVER_MAX_STATES", "")
	t.Setenv("DB_PATH", "")

	env := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(env, []byte("SOLVE_TIMEOUT=5s\nSOLVER_WORKERS=8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables set in the environment
	os.Unsetenv("SOLVE_TIMEOUT")

	c, err := Load(env)
	if err != nil {
		t.Fatal(err)
	}
	if c.Port != "5000" || c.Workers != 4 || c.SolveTimeout != 5*time.Second || c.MaxStates != 0 || c.DBPath != "" {
		t.Fatalf("got %+v", c)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("SOLVER_MAX_STATES", "many")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error")
	}
}
