package pipeline

import (
	"context"
	"fmt"
	"image"

	"github.com/sanitaravel/starship-analyzer-sub000/internal/domain"
	"github.com/sanitaravel/starship-analyzer-sub000/internal/extract"
	"github.com/sanitaravel/starship-analyzer-sub000/internal/ports"
	"github.com/sanitaravel/starship-analyzer-sub000/pkg/log"
)

// Extractor is the per-frame extraction the worker drives. Satisfied by
// *extract.Extractor; tests substitute fakes.
type Extractor interface {
	Extract(ctx context.Context, frame image.Image, frameNumber int, state extract.ClockState) domain.FrameRecord
}

// Worker processes batches of frame indices. Each ProcessBatch call opens
// its own frame-source handle; nothing about the worker is shared between
// batches except the injected dependencies and the progress counter.
type Worker struct {
	opener    ports.FrameOpener
	path      string
	extractor Extractor
	rec       ports.Recognizer
	progress  *Progress
	logger    log.Logger
}

// NewWorker creates a worker reading frames from path.
func NewWorker(opener ports.FrameOpener, path string, extractor Extractor, rec ports.Recognizer, progress *Progress, logger log.Logger) *Worker {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Worker{
		opener:    opener,
		path:      path,
		extractor: extractor,
		rec:       rec,
		progress:  progress,
		logger:    logger,
	}
}

// ProcessBatch extracts telemetry for every frame in the batch, in order.
// A single frame's decode failure drops that frame; a batch-level failure
// degrades every frame to an error-tagged record. The batch is never lost.
func (w *Worker) ProcessBatch(ctx context.Context, batch []int) (records []domain.FrameRecord) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("batch processing panicked", log.Any("panic", r))
			records = errorRecords(batch, fmt.Errorf("batch failed: %v", r))
		}
	}()

	// Release shared accelerator state on both sides of the batch so peak
	// usage stays bounded no matter how batches interleave across workers.
	w.rec.Release()
	defer w.rec.Release()

	src, err := w.opener.Open(w.path)
	if err != nil {
		w.logger.Error("worker failed to open frame source", log.Err(err))
		return errorRecords(batch, err)
	}
	defer src.Release()

	records = make([]domain.FrameRecord, 0, len(batch))
	state := extract.ClockSearching

	for _, frameNumber := range batch {
		frame, err := readFrame(src, frameNumber)
		w.progress.Increment()
		if err != nil {
			w.logger.Debug("dropping unreadable frame",
				log.Int("frame", frameNumber), log.Err(err))
			continue
		}

		record := w.extractor.Extract(ctx, frame, frameNumber, state)
		records = append(records, record)

		if record.Clock != nil && record.Clock.IsZero() {
			state = extract.ClockFound
		}
	}
	return records
}

func readFrame(src ports.FrameSource, frameNumber int) (image.Image, error) {
	if err := src.Seek(frameNumber); err != nil {
		return nil, err
	}
	return src.ReadNext()
}

func errorRecords(batch []int, err error) []domain.FrameRecord {
	records := make([]domain.FrameRecord, len(batch))
	for i, frameNumber := range batch {
		records[i] = domain.ErrorRecord(frameNumber, err)
	}
	return records
}
