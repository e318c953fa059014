package domain

import "fmt"

// ClockReading is one mission-clock sample as read off the broadcast
// overlay, e.g. "-00:00:12" shortly before liftoff.
type ClockReading struct {
	Sign    string `json:"sign"` // "+" or "-"
	Hours   int    `json:"hours"`
	Minutes int    `json:"minutes"`
	Seconds int    `json:"seconds"`
}

// ZeroClock is the synthetic reading substituted once a batch has passed
// T-0; the clock cannot return to zero, so further recognition is skipped.
func ZeroClock() *ClockReading {
	return &ClockReading{Sign: "+"}
}

// IsZero reports whether the reading is exactly 00:00:00 regardless of sign.
// The lowest frame number with a zero reading becomes the run's anchor.
func (c ClockReading) IsZero() bool {
	return c.Hours == 0 && c.Minutes == 0 && c.Seconds == 0
}

// String renders the reading in the overlay's format.
func (c ClockReading) String() string {
	return fmt.Sprintf("%s%02d:%02d:%02d", c.Sign, c.Hours, c.Minutes, c.Seconds)
}

// RealTime is a signed decomposition of mission-elapsed seconds, attached to
// records once the zero-time anchor is known.
type RealTime struct {
	Sign         string `json:"sign"`
	Hours        int    `json:"hours"`
	Minutes      int    `json:"minutes"`
	Seconds      int    `json:"seconds"`
	Milliseconds int    `json:"milliseconds"`
}

// DecomposeSeconds splits signed elapsed seconds into a RealTime. The
// magnitude is decomposed; the sign is carried separately so that -3.5s
// becomes {-, 0h 0m 3s 500ms}.
func DecomposeSeconds(seconds float64) RealTime {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	whole := int(seconds)
	return RealTime{
		Sign:         sign,
		Hours:        whole / 3600,
		Minutes:      (whole % 3600) / 60,
		Seconds:      whole % 60,
		Milliseconds: int((seconds - float64(whole)) * 1000),
	}
}
