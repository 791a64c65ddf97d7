package commands

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/tavisk/voysave/internal/engine"
	"github.com/tavisk/voysave/internal/errors"
	"github.com/tavisk/voysave/internal/store"
)

var (
	restoreLatest bool
	restoreForce  bool
)

func init() {
	restoreCmd.Flags().BoolVar(&restoreLatest, "latest", false,
		"restore the most recent snapshot")
	restoreCmd.Flags().BoolVarP(&restoreForce, "force", "f", false,
		"skip the confirmation prompt")
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [snapshot-id]",
	Short: "Restore a snapshot into the live save directory",
	Long: `Replace the live save directory's contents with a snapshot.

The live directory is cleared first and then repopulated from the
snapshot. Without an id, --latest restores the newest snapshot and the
bare form opens an interactive picker.

The wipe happens before the copy: if the copy fails partway the live
directory is left incomplete, though the snapshot itself is untouched and
the restore can be retried.`,
	Example: `  # Restore the newest snapshot
  voysave restore --latest

  # Restore a specific snapshot
  voysave restore 2024-06-01_18-30-00

  # Pick interactively
  voysave restore`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}

	id, err := restoreTarget(e, args)
	if err != nil {
		return err
	}
	if id == "" {
		// Picker aborted or store empty; nothing to do.
		return nil
	}

	if !restoreForce {
		ok, err := confirm(cmd, fmt.Sprintf(
			"Replace the current save with snapshot %s? This cannot be undone.", id))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	res := runWithProgress(cmd, "restoring...", func() engine.Result {
		return e.Restore(id)
	})

	printResult(cmd.OutOrStdout(), res)
	return resultErr(res)
}

// restoreTarget resolves which snapshot to restore: explicit argument,
// --latest, or interactive selection. An empty id with nil error means the
// user backed out.
func restoreTarget(e *engine.Engine, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	if restoreLatest {
		snap, err := e.Latest()
		if err != nil {
			return "", err
		}
		if snap == nil {
			return "", errors.NewUserError(errors.New("no snapshots exist yet"),
				"run 'voysave save' first")
		}
		return snap.ID, nil
	}

	snapshots, err := e.Store().List()
	if err != nil {
		return "", err
	}
	if len(snapshots) == 0 {
		return "", errors.NewUserError(errors.New("no snapshots exist yet"),
			"run 'voysave save' first")
	}

	return pickSnapshot(snapshots)
}

// pickSnapshot opens a fuzzy finder over the snapshot list.
func pickSnapshot(snapshots []store.Snapshot) (string, error) {
	idx, err := fuzzyfinder.Find(
		snapshots,
		func(i int) string {
			return fmt.Sprintf("%s (%d items)", snapshots[i].DisplayTime(), snapshots[i].ItemCount)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			s := snapshots[i]
			return fmt.Sprintf("Snapshot: %s\nCreated: %s\nItems: %d\nPath: %s",
				s.ID, s.DisplayTime(), s.ItemCount, s.Path)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", errors.Wrap(err, "selecting snapshot")
	}

	return snapshots[idx].ID, nil
}
