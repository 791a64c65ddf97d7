package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/tavisk/voysave/internal/errors"
	"github.com/tavisk/voysave/internal/paths"
)

// Store manages the on-disk collection of snapshots.
// The root directory is created lazily on first write.
type Store struct {
	root   string
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithRoot sets the snapshot root directory.
func WithRoot(dir string) Option {
	return func(s *Store) {
		s.root = dir
	}
}

// WithClock overrides the time source. Used by tests to force ID collisions.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a Store with the given options.
func New(opts ...Option) *Store {
	s := &Store{
		root: paths.SnapshotRoot(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Root returns the snapshot root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the directory path for a snapshot ID.
func (s *Store) Path(id string) string {
	return filepath.Join(s.root, id)
}

// Exists reports whether a snapshot is present on disk.
func (s *Store) Exists(id string) bool {
	info, err := os.Stat(s.Path(id))
	return err == nil && info.IsDir()
}

// List enumerates all snapshots, newest first.
//
// Entries whose name does not parse as a timestamp are still listed (the
// raw name becomes the display) and sort by raw name. A single unreadable
// entry never fails the whole listing; it is skipped with a warning.
// A missing root directory yields an empty list, not an error.
func (s *Store) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading snapshot root")
	}

	snapshots := make([]Snapshot, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		id := entry.Name()
		snap := Snapshot{
			ID:   id,
			Path: s.Path(id),
		}
		if t, ok := parseID(id); ok {
			snap.CreatedAt = t
		}

		// Item count is display-only; an unreadable snapshot still lists.
		n, err := s.Count(id)
		if err != nil {
			s.logger.Warn("skipping unreadable snapshot entry", "id", id, "error", err)
		}
		snap.ItemCount = n

		snapshots = append(snapshots, snap)
	}

	// Newest first. Timestamp IDs sort chronologically as strings, and a
	// collision suffix sorts after its base, so plain byte order works for
	// recognized and unrecognized names alike.
	slices.SortFunc(snapshots, func(a, b Snapshot) int {
		return strings.Compare(b.ID, a.ID)
	})

	return snapshots, nil
}

// Latest returns the newest snapshot, or nil if the store is empty.
func (s *Store) Latest() (*Snapshot, error) {
	snapshots, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, nil
	}
	return &snapshots[0], nil
}

// NewID formats the current instant as a fresh snapshot identifier.
// If a snapshot with that name already exists (two operations within the
// same second), an incrementing numeric suffix is appended until a free
// name is found.
func (s *Store) NewID() string {
	base := s.now().Format(IDFormat)

	id := base
	for counter := 1; s.Exists(id); counter++ {
		id = fmt.Sprintf("%s_%d", base, counter)
	}
	return id
}

// Get returns a snapshot by ID, or ErrSnapshotNotFound if it is not on disk.
func (s *Store) Get(id string) (*Snapshot, error) {
	if !s.Exists(id) {
		return nil, errors.Wrapf(errors.ErrSnapshotNotFound, "snapshot %s", id)
	}

	snap := Snapshot{
		ID:   id,
		Path: s.Path(id),
	}
	if t, ok := parseID(id); ok {
		snap.CreatedAt = t
	}
	n, err := s.Count(id)
	if err != nil {
		return nil, err
	}
	snap.ItemCount = n
	return &snap, nil
}

// Count returns the number of direct entries inside a snapshot.
func (s *Store) Count(id string) (int, error) {
	entries, err := os.ReadDir(s.Path(id))
	if err != nil {
		return 0, errors.Wrapf(err, "reading snapshot %s", id)
	}
	return len(entries), nil
}

// Delete removes a snapshot's entire subtree. Irreversible; callers must
// obtain explicit user confirmation first.
func (s *Store) Delete(id string) error {
	if !s.Exists(id) {
		return errors.Wrapf(errors.ErrSnapshotNotFound, "snapshot %s", id)
	}
	if err := os.RemoveAll(s.Path(id)); err != nil {
		return errors.Wrapf(err, "deleting snapshot %s", id)
	}
	s.logger.Info("snapshot deleted", "id", id)
	return nil
}

// Prune removes the oldest snapshots beyond keep. keep <= 0 disables
// pruning. Returns the IDs that were removed.
func (s *Store) Prune(keep int) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}

	snapshots, err := s.List()
	if err != nil {
		return nil, err
	}

	var removed []string
	for i := keep; i < len(snapshots); i++ {
		if err := s.Delete(snapshots[i].ID); err != nil {
			return removed, err
		}
		removed = append(removed, snapshots[i].ID)
	}
	return removed, nil
}
