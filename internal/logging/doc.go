// Package logging provides structured logging for voysave built on log/slog.
//
// Console output uses a TTY-optimized text handler with colorized levels
// (disabled automatically for non-TTY writers, NO_COLOR, and TERM=dumb).
// A MultiHandler allows simultaneous console and JSON file logging.
//
// Verbosity flags map to levels via [LevelFromVerbosity]; a custom
// [LevelTrace] below Debug carries per-file transfer and watcher events.
package logging
