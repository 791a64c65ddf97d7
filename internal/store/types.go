package store

import (
	"time"
)

// IDFormat is the timestamp layout used for snapshot directory names.
// It sorts lexicographically in chronological order and contains no
// characters that are unsafe in file names.
const IDFormat = "2006-01-02_15-04-05"

// displayFormat is how recognized snapshot timestamps are rendered.
const displayFormat = "2006-01-02 15:04:05"

// Snapshot describes one immutable snapshot directory under the store root.
type Snapshot struct {
	// ID is the directory name (timestamp, optionally suffixed _N on
	// collision). Snapshots are totally ordered by ID.
	ID string

	// CreatedAt is the creation time parsed from the ID.
	// Zero when the name does not parse as a timestamp.
	CreatedAt time.Time

	// ItemCount is the number of direct entries inside the snapshot
	// (files plus top-level directories). Display only.
	ItemCount int

	// Path is the snapshot directory's absolute path.
	Path string
}

// DisplayTime renders the snapshot's creation time, falling back to the raw
// ID for names that do not parse as timestamps.
func (s Snapshot) DisplayTime() string {
	if s.CreatedAt.IsZero() {
		return s.ID
	}
	return s.CreatedAt.Format(displayFormat)
}

// parseID extracts the creation time from a snapshot ID.
// Collision-suffixed IDs ("2024-01-01_00-00-00_1") parse by their
// timestamp prefix.
func parseID(id string) (time.Time, bool) {
	if t, err := time.ParseInLocation(IDFormat, id, time.Local); err == nil {
		return t, true
	}
	if len(id) > len(IDFormat) && id[len(IDFormat)] == '_' {
		if t, err := time.ParseInLocation(IDFormat, id[:len(IDFormat)], time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
