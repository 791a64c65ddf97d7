// Package store manages the on-disk collection of save-state snapshots.
//
// Each snapshot is an immutable directory under the store root, named by a
// sortable timestamp (2006-01-02_15-04-05, suffixed _N on collision). The
// directory listing itself is the index; there is no manifest file. The
// newest snapshot is simply the lexicographically greatest name.
package store
