// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Rise/transit/set windows, BSC5 ingest, Prometheus metrics
// 0.2.0 - VSOP87 ephemeris, batched scheduler, sky view
// 0.1.0 - Initial release: position pipeline, TUI table, headless modes
