package engine

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tavisk/voysave/internal/errors"
	"github.com/tavisk/voysave/internal/guard"
	"github.com/tavisk/voysave/internal/paths"
	"github.com/tavisk/voysave/internal/progress"
	"github.com/tavisk/voysave/internal/store"
	"github.com/tavisk/voysave/internal/transfer"
)

// Transfer abstracts the tree copy and wipe primitives so tests can inject
// mid-copy failures.
type Transfer interface {
	CopyTree(src, dst string) (int, error)
	WipeTree(dir string) error
}

// diskTransfer is the production Transfer backed by the transfer package.
type diskTransfer struct{}

func (diskTransfer) CopyTree(src, dst string) (int, error) { return transfer.CopyTree(src, dst) }
func (diskTransfer) WipeTree(dir string) error             { return transfer.WipeTree(dir) }

// Engine composes the guard, store and transfer primitives into the two
// user-facing operations, Backup and Restore. At most one operation runs at
// a time; a second caller is rejected, never queued.
type Engine struct {
	guard    *guard.Guard
	store    *store.Store
	transfer Transfer
	logger   *slog.Logger

	// resolveLive returns the live save directory. found=false is a soft
	// condition, not a fault.
	resolveLive func() (path string, found bool)

	// newSignal, when set, creates the visual progress indicator for each
	// operation. The factory owns rendering; the engine only starts the
	// signal and requests its finish.
	newSignal func() *progress.Signal

	reporter StatusReporter
}

// Option configures an Engine.
type Option func(*Engine)

// WithGuard sets the exclusion gate shared with other engine owners.
func WithGuard(g *guard.Guard) Option {
	return func(e *Engine) {
		e.guard = g
	}
}

// WithStore sets the snapshot store.
func WithStore(s *store.Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithTransfer overrides the transfer primitives. Used by tests.
func WithTransfer(t Transfer) Option {
	return func(e *Engine) {
		e.transfer = t
	}
}

// WithLiveDirResolver sets how the live save directory is located.
func WithLiveDirResolver(resolve func() (string, bool)) Option {
	return func(e *Engine) {
		e.resolveLive = resolve
	}
}

// WithLiveDir pins the live save directory to a fixed path.
func WithLiveDir(dir string) Option {
	return func(e *Engine) {
		e.resolveLive = func() (string, bool) {
			return dir, dir != ""
		}
	}
}

// WithProgress sets the factory creating the per-operation progress signal.
func WithProgress(newSignal func() *progress.Signal) Option {
	return func(e *Engine) {
		e.newSignal = newSignal
	}
}

// WithReporter sets the status sink notified at the end of every operation.
func WithReporter(r StatusReporter) Option {
	return func(e *Engine) {
		e.reporter = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine. By default it uses the real filesystem transfer,
// the platform snapshot root and automatic live-directory detection.
func New(opts ...Option) *Engine {
	e := &Engine{
		guard:    guard.New(),
		transfer: diskTransfer{},
		resolveLive: func() (string, bool) {
			return paths.ResolveLiveDirectory(paths.DefaultEnv())
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = store.New()
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Store exposes the snapshot store for listing, deletion and pruning.
func (e *Engine) Store() *store.Store {
	return e.store
}

// LiveDir returns the resolved live save directory.
func (e *Engine) LiveDir() (string, bool) {
	return e.resolveLive()
}

// Latest returns the newest snapshot, or nil if the store is empty.
func (e *Engine) Latest() (*store.Snapshot, error) {
	return e.store.Latest()
}

// Backup captures the live directory into a fresh snapshot.
//
// A partial snapshot never survives: if the copy fails or copies nothing,
// the snapshot directory is removed again. Cleanup is best-effort; a
// failure to remove the partial directory is logged and swallowed.
func (e *Engine) Backup() Result {
	if !e.guard.TryAcquire() {
		return e.report(Result{
			Op:       OpBackup,
			Err:      errors.ErrBusy,
			Message:  "Operation already in progress.",
			Severity: SeverityWarn,
		})
	}
	defer e.guard.Release()
	defer e.startSignal()()

	liveDir, found := e.resolveLive()
	if !found {
		return e.report(Result{
			Op:       OpBackup,
			Err:      errors.ErrSaveDirNotFound,
			Message:  "Save folder not found.",
			Severity: SeverityError,
		})
	}

	id := e.store.NewID()
	snapDir := e.store.Path(id)
	if err := paths.EnsureDir(snapDir, 0); err != nil {
		return e.report(Result{
			Op:       OpBackup,
			Err:      errors.Wrap(err, "creating snapshot directory"),
			Message:  "Backup failed: could not create snapshot directory.",
			Severity: SeverityError,
		})
	}

	n, err := e.transfer.CopyTree(liveDir, snapDir)
	if err != nil {
		e.removeBestEffort(snapDir)
		return e.report(Result{
			Op:         OpBackup,
			SnapshotID: id,
			Err:        errors.Wrap(err, "copying save files"),
			Message:    fmt.Sprintf("Backup failed: %v", err),
			Severity:   SeverityError,
		})
	}

	if n == 0 {
		e.removeBestEffort(snapDir)
		return e.report(Result{
			Op:       OpBackup,
			Err:      errors.ErrNothingToBackUp,
			Message:  "Nothing to back up.",
			Severity: SeverityWarn,
		})
	}

	e.logger.Info("backup complete", "id", id, "items", n)
	return e.report(Result{
		Op:         OpBackup,
		SnapshotID: id,
		Items:      n,
		Message:    fmt.Sprintf("Saved: %s (%d items)", id, n),
		Severity:   SeverityInfo,
	})
}

// Restore wipes the live directory and repopulates it from the snapshot.
//
// The wipe happens before the copy is known to succeed. A mid-copy failure
// therefore leaves the live directory partial; the snapshot itself is
// untouched and the restore can simply be retried.
func (e *Engine) Restore(id string) Result {
	if !e.guard.TryAcquire() {
		return e.report(Result{
			Op:       OpRestore,
			Err:      errors.ErrBusy,
			Message:  "Operation already in progress.",
			Severity: SeverityWarn,
		})
	}
	defer e.guard.Release()
	defer e.startSignal()()

	liveDir, found := e.resolveLive()
	if !found {
		return e.report(Result{
			Op:       OpRestore,
			Err:      errors.ErrSaveDirNotFound,
			Message:  "Save folder not found.",
			Severity: SeverityError,
		})
	}

	// The id may come from a stale listing; re-check the disk before
	// touching the live directory.
	if !e.store.Exists(id) {
		return e.report(Result{
			Op:         OpRestore,
			SnapshotID: id,
			Err:        errors.Wrapf(errors.ErrSnapshotNotFound, "snapshot %s", id),
			Message:    "Backup no longer exists on disk.",
			Severity:   SeverityError,
		})
	}

	if err := e.transfer.WipeTree(liveDir); err != nil {
		return e.report(Result{
			Op:         OpRestore,
			SnapshotID: id,
			Err:        errors.Wrap(err, "clearing save directory"),
			Message:    fmt.Sprintf("Restore failed: %v", err),
			Severity:   SeverityError,
		})
	}

	n, err := e.transfer.CopyTree(e.store.Path(id), liveDir)
	if err != nil {
		return e.report(Result{
			Op:         OpRestore,
			SnapshotID: id,
			Err:        errors.Wrap(err, "copying snapshot files"),
			Message:    fmt.Sprintf("Restore failed: %v", err),
			Severity:   SeverityError,
		})
	}

	e.logger.Info("restore complete", "id", id, "items", n)
	return e.report(Result{
		Op:         OpRestore,
		SnapshotID: id,
		Items:      n,
		Message:    fmt.Sprintf("Restored: %s. Load the save in-game.", id),
		Severity:   SeverityInfo,
	})
}

// BackupAsync runs Backup on its own goroutine and delivers the Result on
// the returned channel, which is closed after the single send.
func (e *Engine) BackupAsync() <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- e.Backup()
	}()
	return ch
}

// RestoreAsync runs Restore on its own goroutine and delivers the Result on
// the returned channel, which is closed after the single send.
func (e *Engine) RestoreAsync(id string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- e.Restore(id)
	}()
	return ch
}

// startSignal creates the progress indicator (if configured) and returns
// the function that requests its fade-out.
func (e *Engine) startSignal() func() {
	if e.newSignal == nil {
		return func() {}
	}
	sig := e.newSignal()
	return sig.RequestFinish
}

// report delivers the result's status message to the reporter, if any, and
// returns the result unchanged.
func (e *Engine) report(r Result) Result {
	if r.Failed() {
		e.logger.Error("operation failed", "op", r.Op, "error", r.Err)
	}
	if e.reporter != nil {
		e.reporter.ReportStatus(r.Message, r.Severity, StatusRevertAfter)
	}
	return r
}

// removeBestEffort deletes a partial snapshot directory, logging but
// otherwise ignoring failures.
func (e *Engine) removeBestEffort(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		e.logger.Warn("could not remove partial snapshot", "dir", dir, "error", err)
	}
}
