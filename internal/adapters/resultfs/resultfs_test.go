package resultfs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sanitaravel/starship-analyzer-sub000/internal/domain"
)

func TestSaveWritesResultsUnderLaunchDir(t *testing.T) {
	root := t.TempDir()
	repo := NewRepository(root, nil)

	speed := 120
	records := []domain.FrameRecord{
		{FrameNumber: 0, Superheavy: domain.VehicleTelemetry{Speed: &speed}, Clock: domain.ZeroClock()},
		{FrameNumber: 30},
	}

	path, err := repo.Save(context.Background(), "7", records)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if want := filepath.Join(root, "launch_7", "results.json"); path != want {
		t.Fatalf("Save() path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading results: %v", err)
	}
	var got []domain.FrameRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("results file is not valid JSON: %v", err)
	}
	if len(got) != 2 || got[0].FrameNumber != 0 || got[1].FrameNumber != 30 {
		t.Fatalf("round-tripped records = %+v", got)
	}
	if got[0].Superheavy.Speed == nil || *got[0].Superheavy.Speed != 120 {
		t.Fatal("superheavy speed lost in round trip")
	}
}

func TestSaveLeavesNoTempFileBehind(t *testing.T) {
	root := t.TempDir()
	repo := NewRepository(root, nil)

	if _, err := repo.Save(context.Background(), "1", nil); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "launch_1"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "results.json" {
		t.Fatalf("launch dir entries = %v, want only results.json", entries)
	}
}

func TestSaveFallsBackWhenRootUnwritable(t *testing.T) {
	root := t.TempDir()
	blocked := filepath.Join(root, "blocked")
	if err := os.WriteFile(blocked, []byte("not a directory"), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := NewRepository(blocked, nil)
	repo.fallback = filepath.Join(root, "fallback")

	path, err := repo.Save(context.Background(), "2", nil)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if want := filepath.Join(repo.fallback, "launch_2", "results.json"); path != want {
		t.Fatalf("Save() path = %q, want fallback %q", path, want)
	}
}
