package ports

import (
	"context"
	"image"
)

// Character whitelists handed to the recognition service. Restricting the
// alphabet is what makes noisy overlay crops readable at all.
const (
	// CharsetDigits is used for speed and altitude readouts.
	CharsetDigits = "0123456789"

	// CharsetClock covers the signed hh:mm:ss mission clock.
	CharsetClock = "0123456789+-:"
)

// Recognizer turns a cropped overlay image into text. Empty or garbled text
// is an expected outcome, not an error; errors mean the service itself
// failed after its internal fallback.
type Recognizer interface {
	Recognize(ctx context.Context, crop image.Image, whitelist string) (string, error)

	// Release frees any shared accelerator state held by the service.
	// Workers call it at both ends of a batch to bound peak shared memory.
	Release()
}
