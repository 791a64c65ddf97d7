package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tavisk/voysave/internal/errors"
)

var deleteForce bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false,
		"skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:     "delete <snapshot-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a snapshot",
	Long: `Remove a snapshot from disk. This is irreversible.`,
	Example: `  # Delete a snapshot (asks for confirmation)
  voysave delete 2024-06-01_18-30-00

  # Delete without asking
  voysave delete 2024-06-01_18-30-00 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	e, err := newEngine()
	if err != nil {
		return err
	}

	if !e.Store().Exists(id) {
		return errors.NewExitError(
			errors.Wrapf(errors.ErrSnapshotNotFound, "snapshot %s", id),
			errors.ExitUser)
	}

	if !deleteForce {
		ok, err := confirm(cmd, fmt.Sprintf("Delete snapshot %s? This cannot be undone.", id))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := e.Store().Delete(id); err != nil {
		return errors.NewExitError(err, errors.ExitSystem)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s✓ Deleted: %s%s\n", colorGreen, id, colorReset)
	return nil
}
