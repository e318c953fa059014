// Package domain holds the core entities of the launch telemetry extractor:
// calibrated screen regions, per-frame telemetry records, clock readings and
// the sentinel errors shared across the pipeline.
//
// Entities here are plain data with validation; they carry no I/O and no
// dependency on adapters. A FrameRecord is created exactly once by a worker
// and only gains its real-time fields later, during aggregation.
package domain
