// Package logging builds the slog loggers used across tunetrace and defines
// the standardized attribute keys components log with.
//
// Two output formats are supported: a compact console format for interactive
// batch runs and JSON for machine consumption. NewFromConfig tees output to
// stdout and a log file under the configured log directory.
package logging
