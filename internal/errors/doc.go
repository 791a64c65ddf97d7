// Package errors provides error handling conventions for the voysave CLI.
//
// This package defines sentinel errors for the engine's failure conditions,
// an ExitError type for CLI exit code handling, and exit code constants
// following standard Unix conventions. It also re-exports the constructors
// from github.com/cockroachdb/errors so the rest of the repository imports
// a single errors package.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific conditions using
// [Is]:
//
//	if errors.Is(err, errors.ErrBusy) {
//	    // another operation is running; try again later
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
package errors
