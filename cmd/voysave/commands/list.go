package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tavisk/voysave/internal/errors"
	"github.com/tavisk/voysave/internal/store"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false,
		"output as JSON")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List snapshots, newest first",
	Example: `  # List all snapshots
  voysave list

  # Machine-readable output
  voysave list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}

	snapshots, err := e.Store().List()
	if err != nil {
		return errors.Wrap(err, "listing snapshots")
	}

	return renderList(cmd.OutOrStdout(), snapshots, listJSON)
}

// listEntry is the JSON shape of one snapshot.
type listEntry struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at,omitempty"`
	Items     int    `json:"items"`
	Path      string `json:"path"`
}

func renderList(w io.Writer, snapshots []store.Snapshot, asJSON bool) error {
	if asJSON {
		entries := make([]listEntry, 0, len(snapshots))
		for _, s := range snapshots {
			entry := listEntry{ID: s.ID, Items: s.ItemCount, Path: s.Path}
			if !s.CreatedAt.IsZero() {
				entry.CreatedAt = s.CreatedAt.Format("2006-01-02T15:04:05")
			}
			entries = append(entries, entry)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(entries), "encoding snapshot list")
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(w, "No snapshots yet. Run 'voysave save' to create one.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%sID\tCREATED\tITEMS%s\n", colorBold, colorReset)
	for _, s := range snapshots {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", s.ID, s.DisplayTime(), s.ItemCount)
	}
	return tw.Flush()
}
