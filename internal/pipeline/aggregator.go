package pipeline

import (
	"sort"
	"sync"

	"github.com/sanitaravel/starship-analyzer-sub000/internal/domain"
	"github.com/sanitaravel/starship-analyzer-sub000/pkg/log"
)

// Aggregator merges batch outputs arriving in arbitrary completion order
// and resolves the run's single zero-time anchor: the lowest frame number
// anywhere whose clock reads exactly 00:00:00.
type Aggregator struct {
	mu      sync.Mutex
	records []domain.FrameRecord
	anchor  *int
	logger  log.Logger
}

// NewAggregator creates an empty aggregator.
func NewAggregator(logger log.Logger) *Aggregator {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Aggregator{logger: logger}
}

// Collect absorbs one completed batch. Within a batch frames are in order,
// so the first zero-clock record is also the batch's lowest candidate.
func (a *Aggregator) Collect(batch []domain.FrameRecord) {
	var candidate *int
	for i := range batch {
		if batch[i].Clock != nil && batch[i].Clock.IsZero() {
			candidate = &batch[i].FrameNumber
			break
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.records = append(a.records, batch...)
	if candidate != nil && (a.anchor == nil || *candidate < *a.anchor) {
		frame := *candidate
		a.anchor = &frame
		a.logger.Info("zero-time anchor candidate", log.Int("frame", frame))
	}
}

// Anchor returns the resolved zero-time frame, if any batch carried one.
func (a *Aggregator) Anchor() (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.anchor == nil {
		return 0, false
	}
	return *a.anchor, true
}

// Finalize back-fills mission-elapsed time on every record and returns the
// full set sorted by frame number. Without an anchor the records keep
// their frame numbers and simply lack real-time fields; that is degraded
// output, not a failure. Finalize is a pure function of the collected
// records, the anchor and fps, so re-running it yields identical results.
func (a *Aggregator) Finalize(fps float64) []domain.FrameRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.anchor == nil {
		a.logger.Warn("no zero-time anchor found; records carry frame numbers only",
			log.Err(domain.ErrNoAnchor))
	} else if fps > 0 {
		anchor := *a.anchor
		for i := range a.records {
			if a.records[i].Error != "" {
				continue
			}
			seconds := float64(a.records[i].FrameNumber-anchor) / fps
			decomposed := domain.DecomposeSeconds(seconds)
			a.records[i].RealTimeSeconds = &seconds
			a.records[i].RealTime = &decomposed
		}
	}

	// Batches complete out of order; sort so downstream consumers never
	// have to reason about completion order.
	sort.Slice(a.records, func(i, j int) bool {
		return a.records[i].FrameNumber < a.records[j].FrameNumber
	})
	return a.records
}
