package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tavisk/voysave/internal/errors"
)

var pruneKeep int

func init() {
	pruneCmd.Flags().IntVarP(&pruneKeep, "keep", "k", 0,
		"number of newest snapshots to keep (default: retention_count from config)")
	rootCmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old snapshots beyond the retention count",
	Long: `Remove the oldest snapshots, keeping only the newest N.

The count comes from --keep, or from retention_count in the config file.
A count of zero disables pruning.`,
	Example: `  # Keep the 10 newest snapshots
  voysave prune --keep 10

  # Use retention_count from config.yaml
  voysave prune`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func runPrune(cmd *cobra.Command, _ []string) error {
	cfg, err := loadedConfig()
	if err != nil {
		return err
	}

	keep := pruneKeep
	if keep == 0 {
		keep = cfg.RetentionCount
	}
	if keep <= 0 {
		return errors.NewUserError(errors.New("no retention count configured"),
			"pass --keep N or set retention_count in config.yaml")
	}

	e, err := newEngine()
	if err != nil {
		return err
	}

	removed, err := e.Store().Prune(keep)
	if err != nil {
		return errors.Wrap(err, "pruning snapshots")
	}

	out := cmd.OutOrStdout()
	if len(removed) == 0 {
		fmt.Fprintf(out, "Nothing to prune (%d or fewer snapshots).\n", keep)
		return nil
	}

	for _, id := range removed {
		fmt.Fprintf(out, "%s- %s%s\n", colorGray, id, colorReset)
	}
	fmt.Fprintf(out, "%s✓ Pruned %d snapshot(s), kept the newest %d.%s\n",
		colorGreen, len(removed), keep, colorReset)
	return nil
}
