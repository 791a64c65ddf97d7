// Package engine orchestrates backup and restore of the live save
// directory.
//
// Backup captures the live directory's direct children into a fresh
// timestamped snapshot; Restore wipes the live directory and repopulates it
// from a chosen snapshot. The two never overlap: both operations take the
// shared guard up front and reject, rather than queue, a concurrent caller.
// Every call ends in exactly one Result carrying a user-facing status
// message.
package engine
