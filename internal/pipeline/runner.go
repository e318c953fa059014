package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"golang.org/x/sync/errgroup"

	"github.com/sanitaravel/starship-analyzer-sub000/internal/ports"
	"github.com/sanitaravel/starship-analyzer-sub000/pkg/log"
)

// progressInterval is how often the supervisor logs frame progress.
const progressInterval = 5 * time.Second

// Config holds the knobs of one processing run.
type Config struct {
	// VideoPath is the source recording.
	VideoPath string

	// RunID keys the persisted results, typically the launch number.
	RunID string

	// BatchSize is the maximum number of sampled frames per batch.
	BatchSize int

	// SampleRate processes every Nth frame; 1 processes all of them.
	SampleRate int

	// Workers sets the pool size; 0 sizes it from the core count.
	Workers int

	// AcceleratorShared halves the automatic pool size, trading
	// throughput for bounded pressure on the recognition accelerator.
	AcceleratorShared bool

	// StartFrame/EndFrame bound the processed window. EndFrame 0 means
	// the end of the video. MaxFrames additionally caps the window.
	StartFrame int
	EndFrame   int
	MaxFrames  int
}

// Runner supervises a full extraction run: validate the source, partition
// the frame range, fan batches out to the worker pool, aggregate, persist.
type Runner struct {
	cfg       Config
	opener    ports.FrameOpener
	extractor Extractor
	rec       ports.Recognizer
	results   ports.ResultRepository
	logger    log.Logger
}

// NewRunner wires a runner from its collaborators.
func NewRunner(cfg Config, opener ports.FrameOpener, extractor Extractor, rec ports.Recognizer, results ports.ResultRepository, logger log.Logger) *Runner {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Runner{
		cfg:       cfg,
		opener:    opener,
		extractor: extractor,
		rec:       rec,
		results:   results,
		logger:    logger,
	}
}

// Run executes the pipeline and returns the path results were written to.
// Only up-front precondition failures abort the run; everything after
// validation degrades per frame or per batch and still produces output.
func (r *Runner) Run(ctx context.Context) (string, error) {
	frameCount, fps, err := ValidateSource(r.opener, r.cfg.VideoPath)
	if err != nil {
		return "", err
	}

	start, end := r.window(frameCount)
	batches := CreateBatchesWindow(start, end, r.cfg.BatchSize, r.cfg.SampleRate)
	total := 0
	for _, b := range batches {
		total += len(b)
	}

	workers := r.poolSize()
	r.logger.Info("starting extraction run",
		log.String("video", r.cfg.VideoPath),
		log.String("run_id", r.cfg.RunID),
		log.Int("frames", total),
		log.Int("batches", len(batches)),
		log.Int("workers", workers),
		log.Float64("fps", fps))

	progress := NewProgress(total)
	reportCtx, stopReport := context.WithCancel(ctx)
	defer stopReport()
	go progress.Report(reportCtx, r.logger, progressInterval)

	agg := NewAggregator(r.logger)
	worker := NewWorker(r.opener, r.cfg.VideoPath, r.extractor, r.rec, progress, r.logger)

	// Workers never return errors: batch failures degrade to error
	// records inside ProcessBatch. The group only bounds parallelism.
	var g errgroup.Group
	g.SetLimit(workers)
	for _, batch := range batches {
		batch := batch
		g.Go(func() error {
			agg.Collect(worker.ProcessBatch(ctx, batch))
			return nil
		})
	}
	g.Wait()

	if anchor, ok := agg.Anchor(); ok {
		r.logger.Info("zero-time anchor resolved", log.Int("frame", anchor))
	}
	records := agg.Finalize(fps)

	path, err := r.results.Save(ctx, r.cfg.RunID, records)
	if err != nil {
		return "", fmt.Errorf("save results: %w", err)
	}
	r.logger.Info("extraction run complete",
		log.Int("records", len(records)), log.String("results", path))
	return path, nil
}

// window clamps the configured frame window to the source length.
func (r *Runner) window(frameCount int) (start, end int) {
	start = r.cfg.StartFrame
	if start < 0 {
		start = 0
	}
	if start > frameCount {
		start = frameCount
	}

	end = r.cfg.EndFrame
	if end <= 0 || end > frameCount {
		end = frameCount
	}
	if end < start {
		end = start
	}

	if r.cfg.MaxFrames > 0 && end > start+r.cfg.MaxFrames {
		end = start + r.cfg.MaxFrames
	}
	return start, end
}

// poolSize picks the worker count: the configured value when set, else the
// logical core count, halved when the recognition accelerator is shared.
func (r *Runner) poolSize() int {
	if r.cfg.Workers > 0 {
		return r.cfg.Workers
	}
	cores, err := cpu.Counts(true)
	if err != nil || cores < 1 {
		cores = 1
	}
	if r.cfg.AcceleratorShared {
		cores /= 2
	}
	if cores < 1 {
		cores = 1
	}
	return cores
}
