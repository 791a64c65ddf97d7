package engine

import (
	"time"

	"github.com/tavisk/voysave/internal/errors"
)

// Op identifies which engine operation produced a Result.
type Op string

const (
	OpBackup  Op = "backup"
	OpRestore Op = "restore"
)

// Severity classifies a status message for display.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// StatusRevertAfter is how long a transient status message should stay on
// screen before the display reverts to its idle state.
const StatusRevertAfter = 5 * time.Second

// StatusReporter receives the single status message every operation ends
// with. revertAfter is a display hint; zero means the message is sticky.
type StatusReporter interface {
	ReportStatus(message string, severity Severity, revertAfter time.Duration)
}

// Result is the outcome of one Backup or Restore call. Every call produces
// exactly one Result.
type Result struct {
	Op         Op
	SnapshotID string

	// Items is the number of direct children transferred.
	Items int

	// Err is nil on success. A nothing-to-back-up outcome carries
	// ErrNothingToBackUp but is a no-op, not a failure.
	Err error

	Message  string
	Severity Severity
}

// Failed reports whether the operation actually went wrong. An empty
// backup source is reported but does not count as a failure.
func (r Result) Failed() bool {
	return r.Err != nil && !errors.Is(r.Err, errors.ErrNothingToBackUp)
}
