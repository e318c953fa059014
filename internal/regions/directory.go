// Package regions loads and serves the calibrated overlay regions used by
// the per-frame extractor. Region coordinates shift between broadcast
// overlay revisions, so the set lives in a JSON config file keyed by
// revision and can be reloaded at runtime.
package regions

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/sanitaravel/starship-analyzer-sub000/internal/domain"
	"github.com/sanitaravel/starship-analyzer-sub000/pkg/log"
)

// timeUnitFrames is the only activation-window unit ever shipped in a
// region config. Anything else is rejected at parse time.
const timeUnitFrames = "frames"

// Directory serves named regions with per-frame activation windows.
// Reads are concurrent (one per worker, every frame); reloads are rare.
type Directory struct {
	mu     sync.RWMutex
	path   string
	logger log.Logger
	set    domain.RegionSet
}

// NewDirectory creates a directory reading from the given config path.
// The set is empty until the first Reload.
func NewDirectory(path string, logger log.Logger) *Directory {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Directory{path: path, logger: logger}
}

// fileRegion is the on-disk shape of one region entry. The config uses
// start_time/end_time for historical reasons; with time_unit "frames" they
// are frame indices.
type fileRegion struct {
	ID        *string `json:"id"`
	Label     string  `json:"label"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	W         *int    `json:"w"`
	H         *int    `json:"h"`
	StartTime *int    `json:"start_time"`
	EndTime   *int    `json:"end_time"`
	Role      string  `json:"match_to_role"`
}

// Reload re-parses the configuration source. On failure the prior set is
// retained and an error wrapping ErrConfigMissing or ErrConfigMalformed is
// returned. Individual malformed entries are skipped with a warning.
func (d *Directory) Reload() error {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrConfigMissing, d.path, err)
	}

	var raw struct {
		Version  string            `json:"version"`
		TimeUnit string            `json:"time_unit"`
		Regions  []json.RawMessage `json:"regions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrConfigMalformed, d.path, err)
	}
	if raw.TimeUnit != "" && raw.TimeUnit != timeUnitFrames {
		return fmt.Errorf("%w: unsupported time_unit %q", domain.ErrConfigMalformed, raw.TimeUnit)
	}

	parsed := make([]domain.Region, 0, len(raw.Regions))
	for i, entry := range raw.Regions {
		region, err := parseRegion(entry)
		if err != nil {
			d.logger.Warn("skipping malformed region entry",
				log.Int("index", i), log.Err(err))
			continue
		}
		parsed = append(parsed, region)
	}

	d.mu.Lock()
	d.set = domain.RegionSet{
		Version:  raw.Version,
		TimeUnit: raw.TimeUnit,
		Regions:  parsed,
	}
	d.mu.Unlock()

	d.logger.Info("region config loaded",
		log.String("path", d.path),
		log.String("version", raw.Version),
		log.Int("regions", len(parsed)))
	return nil
}

func parseRegion(entry json.RawMessage) (domain.Region, error) {
	var fr fileRegion
	if err := json.Unmarshal(entry, &fr); err != nil {
		return domain.Region{}, err
	}
	if fr.ID == nil || *fr.ID == "" {
		return domain.Region{}, fmt.Errorf("missing id")
	}
	if fr.W == nil || fr.H == nil {
		return domain.Region{}, fmt.Errorf("region %s: missing w/h", *fr.ID)
	}
	if *fr.W <= 0 || *fr.H <= 0 {
		return domain.Region{}, fmt.Errorf("region %s: non-positive size %dx%d", *fr.ID, *fr.W, *fr.H)
	}
	return domain.Region{
		ID:         *fr.ID,
		Label:      fr.Label,
		X:          fr.X,
		Y:          fr.Y,
		W:          *fr.W,
		H:          *fr.H,
		StartFrame: fr.StartTime,
		EndFrame:   fr.EndTime,
		Role:       fr.Role,
	}, nil
}

// ActiveRegions returns every region whose activation window contains
// frameIdx, or all regions when frameIdx is nil.
func (d *Directory) ActiveRegions(frameIdx *int) []domain.Region {
	d.mu.RLock()
	defer d.mu.RUnlock()

	active := make([]domain.Region, 0, len(d.set.Regions))
	for _, r := range d.set.Regions {
		if r.ActiveAt(frameIdx) {
			active = append(active, r)
		}
	}
	return active
}

// RegionForRole returns the active region carrying the given role.
//
// With a concrete frame index, two active regions sharing a role are
// invalid configuration and yield ErrAmbiguousRole. With a nil index every
// region counts as active, so the first match in file order is returned;
// that case is only used for listing and calibration tooling.
func (d *Directory) RegionForRole(role string, frameIdx *int) (domain.Region, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var (
		found domain.Region
		n     int
	)
	for _, r := range d.set.Regions {
		if r.Role != role || !r.ActiveAt(frameIdx) {
			continue
		}
		if frameIdx == nil {
			return r, nil
		}
		if n == 0 {
			found = r
		}
		n++
	}
	switch {
	case n == 0:
		return domain.Region{}, fmt.Errorf("%w: %s", domain.ErrRegionNotFound, role)
	case n > 1:
		return domain.Region{}, fmt.Errorf("%w: %s at frame %d", domain.ErrAmbiguousRole, role, *frameIdx)
	}
	return found, nil
}

// Set returns a copy of the current region set.
func (d *Directory) Set() domain.RegionSet {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := d.set
	out.Regions = append([]domain.Region(nil), d.set.Regions...)
	return out
}

// Path returns the configuration source path.
func (d *Directory) Path() string {
	return d.path
}
