package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sanitaravel/starship-analyzer-sub000/pkg/log"
)

// Progress is the one piece of state shared by every worker: a monotonic
// counter of frames attempted so far, safe for concurrent increment.
type Progress struct {
	done  atomic.Int64
	total int64
}

// NewProgress creates a counter expecting total frames.
func NewProgress(total int) *Progress {
	return &Progress{total: int64(total)}
}

// Increment records one attempted frame.
func (p *Progress) Increment() {
	p.done.Add(1)
}

// Done returns the number of frames attempted so far.
func (p *Progress) Done() int64 {
	return p.done.Load()
}

// Total returns the expected frame count.
func (p *Progress) Total() int64 {
	return p.total
}

// Report logs progress at the given interval until the context is
// canceled. Meant to run as a goroutine alongside the worker pool.
func (p *Progress) Report(ctx context.Context, logger log.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			done := p.Done()
			pct := 0.0
			if p.total > 0 {
				pct = float64(done) / float64(p.total) * 100
			}
			logger.Info("processing frames",
				log.Any("done", done),
				log.Any("total", p.total),
				log.Float64("percent", pct))
		}
	}
}
