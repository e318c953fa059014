// Package ports defines the interfaces that connect the extraction pipeline
// to the outside world.
//
// The pipeline core depends only on these interfaces; infrastructure
// adapters (internal/adapters) provide concrete implementations backed by
// ffmpeg, tesseract and the local filesystem. Tests substitute in-memory
// fakes.
//
//   - [FrameSource] / [FrameOpener]: random-access decoded video frames
//   - [Recognizer]: character recognition over a cropped region
//   - [ResultRepository]: persistence of the per-run record set
package ports
