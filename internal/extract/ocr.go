package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sanitaravel/starship-analyzer-sub000/internal/domain"
)

var (
	digitRunRe = regexp.MustCompile(`\d+`)
	clockRe    = regexp.MustCompile(`^[+-]\d{2}:\d{2}:\d{2}$`)
)

// parseReadout extracts the first digit run from recognized text as an
// integer. Recognition output is noisy; anything around the digits is
// ignored, and no digits at all yields nil.
func parseReadout(text string) *int {
	run := digitRunRe.FindString(text)
	if run == "" {
		return nil
	}
	v, err := strconv.Atoi(run)
	if err != nil {
		// Digit runs long enough to overflow int are garbage reads.
		return nil
	}
	return &v
}

// parseClock parses recognized text as a signed hh:mm:ss mission clock.
// The whole trimmed text must match; partial or garbled reads yield nil
// and are smoothed over downstream.
func parseClock(text string) *domain.ClockReading {
	text = strings.TrimSpace(text)
	if !clockRe.MatchString(text) {
		return nil
	}
	h, _ := strconv.Atoi(text[1:3])
	m, _ := strconv.Atoi(text[4:6])
	s, _ := strconv.Atoi(text[7:9])
	return &domain.ClockReading{
		Sign:    string(text[0]),
		Hours:   h,
		Minutes: m,
		Seconds: s,
	}
}
