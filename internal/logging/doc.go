// Package logging constructs the slog loggers used across UFM. It supports
// a human-oriented console format and a machine-oriented JSON format, and
// duplicates output into the configured log directory.
package logging
