package domain

import "errors"

// Sentinel errors returned by the analyzer's components. Callers check them
// with errors.Is; adapters wrap them with context at the call site.
var (
	// ErrConfigMissing is returned when the region configuration source
	// does not exist or cannot be read.
	ErrConfigMissing = errors.New("analyzer: region config missing")

	// ErrConfigMalformed is returned when the region configuration source
	// cannot be parsed as a whole. Individual bad entries are skipped and
	// do not trigger this error.
	ErrConfigMalformed = errors.New("analyzer: region config malformed")

	// ErrRegionNotFound is returned when no active region matches a
	// requested role at a given frame index.
	ErrRegionNotFound = errors.New("analyzer: no active region for role")

	// ErrAmbiguousRole is returned when two active regions claim the same
	// role at the same frame index. Overlapping activation windows for one
	// role are invalid configuration, not a tie to break silently.
	ErrAmbiguousRole = errors.New("analyzer: ambiguous region role")

	// ErrInvalidVideo is returned when the frame source fails up-front
	// validation. This is fatal for the whole run.
	ErrInvalidVideo = errors.New("analyzer: invalid video source")

	// ErrNoFrames is returned when the frame source reports zero frames.
	ErrNoFrames = errors.New("analyzer: video contains no frames")

	// ErrNoAnchor is reported (not fatal) when no frame in the whole run
	// carried a 00:00:00 clock reading; records then keep frame numbers
	// but lack real-time fields.
	ErrNoAnchor = errors.New("analyzer: zero-time anchor not found")
)
