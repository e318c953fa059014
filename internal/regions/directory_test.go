package regions

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sanitaravel/starship-analyzer-sub000/internal/domain"
	"github.com/sanitaravel/starship-analyzer-sub000/pkg/log"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "regions.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `{
  "version": "ift-6",
  "time_unit": "frames",
  "regions": [
    {"id": "r1", "label": "SH speed", "x": 360, "y": 980, "w": 120, "h": 40, "start_time": null, "end_time": null, "match_to_role": "sh_speed"},
    {"id": "r2", "label": "clock early", "x": 900, "y": 980, "w": 120, "h": 40, "start_time": 0, "end_time": 100, "match_to_role": "time"},
    {"id": "r3", "label": "clock late", "x": 910, "y": 980, "w": 120, "h": 40, "start_time": 100, "end_time": null, "match_to_role": "time"}
  ]
}`

func newLoaded(t *testing.T, content string) *Directory {
	t.Helper()
	path := writeConfig(t, t.TempDir(), content)
	d := NewDirectory(path, log.NewNoopLogger())
	if err := d.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	return d
}

func TestReloadMissingFile(t *testing.T) {
	d := NewDirectory(filepath.Join(t.TempDir(), "absent.json"), log.NewNoopLogger())
	if err := d.Reload(); !errors.Is(err, domain.ErrConfigMissing) {
		t.Fatalf("expected ErrConfigMissing, got %v", err)
	}
}

func TestReloadKeepsPriorSetOnFailure(t *testing.T) {
	path := writeConfig(t, t.TempDir(), validConfig)
	d := NewDirectory(path, log.NewNoopLogger())
	if err := d.Reload(); err != nil {
		t.Fatalf("initial Reload: %v", err)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("overwrite config: %v", err)
	}
	if err := d.Reload(); !errors.Is(err, domain.ErrConfigMalformed) {
		t.Fatalf("expected ErrConfigMalformed, got %v", err)
	}
	if got := len(d.ActiveRegions(nil)); got != 3 {
		t.Fatalf("prior set not retained: %d regions", got)
	}
}

func TestReloadRejectsUnknownTimeUnit(t *testing.T) {
	d := NewDirectory(writeConfig(t, t.TempDir(),
		`{"version":"x","time_unit":"seconds","regions":[]}`), log.NewNoopLogger())
	if err := d.Reload(); !errors.Is(err, domain.ErrConfigMalformed) {
		t.Fatalf("expected ErrConfigMalformed, got %v", err)
	}
}

func TestReloadSkipsMalformedEntries(t *testing.T) {
	d := newLoaded(t, `{
	  "version": "x",
	  "time_unit": "frames",
	  "regions": [
	    {"id": "good", "x": 1, "y": 2, "w": 3, "h": 4, "match_to_role": "time"},
	    {"label": "no id", "x": 1, "y": 2, "w": 3, "h": 4},
	    {"id": "flat", "x": 1, "y": 2, "w": 0, "h": 4},
	    {"id": "bad type", "x": "left", "y": 2, "w": 3, "h": 4}
	  ]
	}`)

	got := d.ActiveRegions(nil)
	if len(got) != 1 || got[0].ID != "good" {
		t.Fatalf("expected only the valid entry, got %+v", got)
	}
}

func TestActiveRegionsWindow(t *testing.T) {
	d := newLoaded(t, validConfig)

	idx := func(i int) *int { return &i }
	tests := []struct {
		name  string
		frame *int
		want  int
	}{
		{"nil index returns all", nil, 3},
		{"start inclusive", idx(0), 2},
		{"inside first window", idx(99), 2},
		{"end exclusive, next start inclusive", idx(100), 2},
		{"open-ended window", idx(100000), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(d.ActiveRegions(tt.frame)); got != tt.want {
				t.Fatalf("got %d active regions, want %d", got, tt.want)
			}
		})
	}
}

func TestRegionForRole(t *testing.T) {
	d := newLoaded(t, validConfig)
	idx := func(i int) *int { return &i }

	r, err := d.RegionForRole(domain.RoleTime, idx(50))
	if err != nil {
		t.Fatalf("RegionForRole: %v", err)
	}
	if r.ID != "r2" {
		t.Fatalf("expected r2 active at frame 50, got %s", r.ID)
	}

	r, err = d.RegionForRole(domain.RoleTime, idx(250))
	if err != nil {
		t.Fatalf("RegionForRole: %v", err)
	}
	if r.ID != "r3" {
		t.Fatalf("expected r3 active at frame 250, got %s", r.ID)
	}

	if _, err := d.RegionForRole("ss_speed", idx(50)); !errors.Is(err, domain.ErrRegionNotFound) {
		t.Fatalf("expected ErrRegionNotFound, got %v", err)
	}
}

func TestRegionForRoleAmbiguous(t *testing.T) {
	d := newLoaded(t, `{
	  "version": "x",
	  "time_unit": "frames",
	  "regions": [
	    {"id": "a", "x": 1, "y": 2, "w": 3, "h": 4, "start_time": 0, "end_time": 100, "match_to_role": "time"},
	    {"id": "b", "x": 5, "y": 6, "w": 3, "h": 4, "start_time": 50, "end_time": 150, "match_to_role": "time"}
	  ]
	}`)

	idx := 75
	if _, err := d.RegionForRole(domain.RoleTime, &idx); !errors.Is(err, domain.ErrAmbiguousRole) {
		t.Fatalf("expected ErrAmbiguousRole, got %v", err)
	}

	// Outside the overlap the lookup is unambiguous again.
	idx = 10
	r, err := d.RegionForRole(domain.RoleTime, &idx)
	if err != nil || r.ID != "a" {
		t.Fatalf("expected region a, got %v (%v)", r.ID, err)
	}
}
