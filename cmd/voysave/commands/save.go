package commands

import (
	"github.com/spf13/cobra"

	"github.com/tavisk/voysave/internal/engine"
)

func init() {
	rootCmd.AddCommand(saveCmd)
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Snapshot the current save state",
	Long: `Capture the live save directory into a new timestamped snapshot.

The snapshot mirrors the save directory's contents byte for byte, with
file timestamps preserved. An empty save directory produces no snapshot.`,
	Example: `  # Take a snapshot
  voysave save

  See Also:
    voysave list    - List snapshots
    voysave restore - Restore a snapshot`,
	Args: cobra.NoArgs,
	RunE: runSave,
}

func runSave(cmd *cobra.Command, _ []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}

	res := runWithProgress(cmd, "saving...", func() engine.Result {
		return e.Backup()
	})

	printResult(cmd.OutOrStdout(), res)
	return resultErr(res)
}
