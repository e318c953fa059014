// Package extract turns a single decoded video frame into telemetry for
// both vehicles: OCR'd speed/altitude readouts, pixel-sampled engine
// states, gauge-strip propellant levels and an optional mission-clock
// reading.
//
// Every step degrades independently. A failed region lookup, an empty
// recognition result or an out-of-bounds crop null the affected field and
// nothing else; the extractor always returns a record carrying the frame
// number.
package extract

import (
	"context"
	"image"

	"github.com/sanitaravel/starship-analyzer-sub000/internal/domain"
	"github.com/sanitaravel/starship-analyzer-sub000/internal/ports"
	"github.com/sanitaravel/starship-analyzer-sub000/internal/regions"
	"github.com/sanitaravel/starship-analyzer-sub000/pkg/log"
)

// ClockState tracks whether a worker's batch has already passed T-0. Once
// the clock reads zero it cannot return there, so later frames of the same
// batch skip clock recognition entirely and take a synthetic zero reading.
// The state never crosses batch boundaries.
type ClockState int

const (
	// ClockSearching means the batch has not yet seen a zero reading.
	ClockSearching ClockState = iota

	// ClockFound means a zero reading was seen earlier in this batch.
	ClockFound
)

// Extractor runs the full per-frame extraction against a region directory
// and a recognition service. It is stateless across frames and safe for
// concurrent use as long as the recognizer is.
type Extractor struct {
	regions *regions.Directory
	rec     ports.Recognizer
	logger  log.Logger
}

// NewExtractor creates an extractor. A nil logger disables logging.
func NewExtractor(dir *regions.Directory, rec ports.Recognizer, logger log.Logger) *Extractor {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Extractor{regions: dir, rec: rec, logger: logger}
}

// Extract produces the telemetry record for one frame.
func (e *Extractor) Extract(ctx context.Context, frame image.Image, frameNumber int, state ClockState) domain.FrameRecord {
	record := domain.FrameRecord{FrameNumber: frameNumber}

	record.Superheavy.Speed = e.readNumeric(ctx, frame, domain.RoleSuperheavySpeed, frameNumber)
	record.Superheavy.Altitude = e.readNumeric(ctx, frame, domain.RoleSuperheavyAltitude, frameNumber)
	record.Starship.Speed = e.readNumeric(ctx, frame, domain.RoleStarshipSpeed, frameNumber)
	record.Starship.Altitude = e.readNumeric(ctx, frame, domain.RoleStarshipAltitude, frameNumber)

	// The ship's readouts drop off the overlay more often than the
	// booster's. A copied booster value is a rough doubled reading, but a
	// wrong point beats a missing one: downstream smoothing corrects it.
	// Copy field by field; engines and clock are never substituted.
	if record.Starship.Speed == nil {
		record.Starship.Speed = copyInt(record.Superheavy.Speed)
	}
	if record.Starship.Altitude == nil {
		record.Starship.Altitude = copyInt(record.Superheavy.Altitude)
	}

	record.Clock = e.readClock(ctx, frame, frameNumber, state)

	record.Superheavy.Engines = EngineStatus(frame, SuperheavyEngines, WhiteThreshold)
	record.Starship.Engines = EngineStatus(frame, StarshipEngines, WhiteThreshold)

	gray := grayscale(frame)
	record.Superheavy.Fuel, record.Starship.Fuel = ReadFuelLevels(gray)

	return record
}

// readNumeric OCRs one speed/altitude region in digits-only mode. Any
// failure along the way nulls the field.
func (e *Extractor) readNumeric(ctx context.Context, frame image.Image, role string, frameNumber int) *int {
	region, err := e.regions.RegionForRole(role, &frameNumber)
	if err != nil {
		e.logger.Debug("no region for role", log.String("role", role),
			log.Int("frame", frameNumber), log.Err(err))
		return nil
	}

	crop := cropClamped(frame, region.Rect())
	if crop == nil {
		return nil
	}

	text, err := e.rec.Recognize(ctx, crop, ports.CharsetDigits)
	if err != nil {
		e.logger.Debug("recognition failed", log.String("role", role),
			log.Int("frame", frameNumber), log.Err(err))
		return nil
	}
	return parseReadout(text)
}

// readClock OCRs the mission clock, or substitutes a synthetic zero once
// the batch has passed T-0.
func (e *Extractor) readClock(ctx context.Context, frame image.Image, frameNumber int, state ClockState) *domain.ClockReading {
	if state == ClockFound {
		return domain.ZeroClock()
	}

	region, err := e.regions.RegionForRole(domain.RoleTime, &frameNumber)
	if err != nil {
		e.logger.Debug("no region for clock", log.Int("frame", frameNumber), log.Err(err))
		return nil
	}

	crop := cropClamped(frame, region.Rect())
	if crop == nil {
		return nil
	}

	text, err := e.rec.Recognize(ctx, crop, ports.CharsetClock)
	if err != nil {
		e.logger.Debug("clock recognition failed", log.Int("frame", frameNumber), log.Err(err))
		return nil
	}
	return parseClock(text)
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
