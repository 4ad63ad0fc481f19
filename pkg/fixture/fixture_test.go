package fixture

import (
	"path/filepath"
	"strings"
	"testing"
)

const fixtureDir = "../../_fixtures"

func TestRepoLoad(t *testing.T) {
	repo, err := NewRepo(fixtureDir, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trace, err := repo.Load("basic.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trace.Stops()) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(trace.Stops()))
	}

	// The second load must be served from the cache.
	again, err := repo.Load("basic.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != trace {
		t.Fatalf("expected the cached trace to be returned")
	}

	repo.Clear()
	cleared, err := repo.Load("basic.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cleared == trace {
		t.Fatalf("expected a fresh parse after Clear")
	}
}

func TestRepoLoadMalformed(t *testing.T) {
	repo, err := NewRepo(fixtureDir, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = repo.Load("unterminated.txt")
	if err == nil {
		t.Fatalf("expected error for malformed fixture")
	}
	if !strings.Contains(err.Error(), filepath.Join(fixtureDir, "unterminated.txt")) {
		t.Fatalf("expected error to name the fixture, got %v", err)
	}
}

func TestRepoLoadMissing(t *testing.T) {
	repo, err := NewRepo(fixtureDir, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = repo.Load("no_such_trace.txt")
	if err == nil || !strings.Contains(err.Error(), "no_such_trace.txt") {
		t.Fatalf("expected error naming the missing fixture, got %v", err)
	}
}

func TestNewRepoMissingDir(t *testing.T) {
	if _, err := NewRepo("no_such_dir", 4); err == nil {
		t.Fatalf("expected error for missing fixture directory")
	}
}
