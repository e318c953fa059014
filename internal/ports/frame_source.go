package ports

import "image"

// FrameSource is one open handle onto a video file. Handles are not shared:
// every worker opens its own source and releases it when its batch is done.
type FrameSource interface {
	// FrameCount returns the total number of frames in the source.
	FrameCount() int

	// FPS returns the source frame rate.
	FPS() float64

	// Bounds returns the pixel dimensions of decoded frames.
	Bounds() image.Rectangle

	// Seek positions the source at the given frame index. Sources must
	// support random seeks; batches are not contiguous when sampling.
	Seek(index int) error

	// ReadNext decodes and returns the frame at the current position,
	// advancing past it. A decode failure returns a non-nil error; the
	// caller drops that frame and moves on.
	ReadNext() (image.Image, error)

	// Release frees the handle and any decoder resources.
	Release() error
}

// FrameOpener opens independent FrameSource handles for a path. The runner
// validates the path once through an opener, then hands the same opener to
// each worker.
type FrameOpener interface {
	Open(path string) (FrameSource, error)
}
