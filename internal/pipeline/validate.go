package pipeline

import (
	"fmt"

	"github.com/sanitaravel/starship-analyzer-sub000/internal/domain"
	"github.com/sanitaravel/starship-analyzer-sub000/internal/ports"
)

// validationProbes is how many positions across the video must seek and
// decode before a run is allowed to start.
const validationProbes = 3

// ValidateSource checks the video upfront so a bad path or a corrupt file
// fails the run immediately instead of producing thousands of error
// records. It probes evenly spaced positions across the full range with
// independent seeks, mirroring the random access the workers rely on.
func ValidateSource(opener ports.FrameOpener, path string) (frameCount int, fps float64, err error) {
	src, err := opener.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrInvalidVideo, err)
	}
	defer src.Release()

	frameCount = src.FrameCount()
	if frameCount <= 0 {
		return 0, 0, domain.ErrNoFrames
	}
	fps = src.FPS()
	if fps <= 0 {
		return 0, 0, fmt.Errorf("%w: fps %v", domain.ErrInvalidVideo, fps)
	}

	for _, pos := range probePositions(frameCount) {
		if err := src.Seek(pos); err != nil {
			return 0, 0, fmt.Errorf("%w: seek to frame %d: %v", domain.ErrInvalidVideo, pos, err)
		}
		if _, err := src.ReadNext(); err != nil {
			return 0, 0, fmt.Errorf("%w: decode frame %d: %v", domain.ErrInvalidVideo, pos, err)
		}
	}
	return frameCount, fps, nil
}

// probePositions spreads validationProbes positions over [0, frameCount),
// always including the first and last frame.
func probePositions(frameCount int) []int {
	if frameCount <= validationProbes {
		positions := make([]int, frameCount)
		for i := range positions {
			positions[i] = i
		}
		return positions
	}
	positions := make([]int, validationProbes)
	step := (frameCount - 1) / (validationProbes - 1)
	for i := range positions {
		positions[i] = i * step
	}
	positions[validationProbes-1] = frameCount - 1
	return positions
}
