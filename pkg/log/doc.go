// Package log defines the logging abstraction shared by the analyzer's
// components.
//
// The Logger interface decouples the extraction pipeline from any concrete
// logging library. A zerolog-backed adapter is provided for production use
// and a no-op logger for tests:
//
//	logger := log.NewConsole(false)
//	...
//	logger := log.NewNoopLogger()
//
// Workers run in parallel and share a single Logger instance; adapters must
// therefore be safe for concurrent use (zerolog is).
package log
