// Package resultfs persists run results as JSON under a results directory,
// one subdirectory per launch.
package resultfs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sanitaravel/starship-analyzer-sub000/internal/domain"
	"github.com/sanitaravel/starship-analyzer-sub000/pkg/log"
)

const resultsFileName = "results.json"

// Repository writes results to <root>/launch_<runID>/results.json. When the
// primary root is unwritable it falls back to a directory under the user
// cache dir so a long run never loses its output at the last step.
type Repository struct {
	root     string
	fallback string
	logger   log.Logger
}

// NewRepository creates a repository rooted at root.
func NewRepository(root string, logger log.Logger) *Repository {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	fallback := ""
	if cache, err := os.UserCacheDir(); err == nil {
		fallback = filepath.Join(cache, "starship-analyzer", "results")
	}
	return &Repository{root: root, fallback: fallback, logger: logger}
}

// Save writes the records and returns the path of the written file. The
// write goes through a temp file and a rename so readers never observe a
// partially written results file.
func (r *Repository) Save(ctx context.Context, runID string, records []domain.FrameRecord) (string, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}

	path, err := r.write(r.root, runID, data)
	if err == nil {
		return path, nil
	}
	if r.fallback == "" {
		return "", err
	}

	r.logger.Warn("results directory unwritable, using fallback",
		log.String("root", r.root), log.String("fallback", r.fallback), log.Err(err))
	return r.write(r.fallback, runID, data)
}

func (r *Repository) write(root, runID string, data []byte) (string, error) {
	dir := filepath.Join(root, "launch_"+runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, resultsFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	return path, nil
}
