package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tavisk/voysave/internal/errors"
	"github.com/tavisk/voysave/internal/watcher"
)

var watchDebounce time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0,
		"quiet period before an automatic snapshot (default: watch_debounce from config)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Snapshot automatically whenever the game saves",
	Long: `Watch the live save directory and take a snapshot after each burst
of save activity.

The game writes several files when it saves; the watcher waits for the
directory to stay quiet for the debounce interval and then takes a single
snapshot. Runs until interrupted with Ctrl-C.`,
	Example: `  # Watch with the configured debounce
  voysave watch

  # Snapshot 30 seconds after each save
  voysave watch --debounce 30s`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadedConfig()
	if err != nil {
		return err
	}

	debounce := watchDebounce
	if debounce <= 0 {
		debounce = cfg.WatchDebounce
	}

	e, err := newEngine()
	if err != nil {
		return err
	}

	liveDir, found := e.LiveDir()
	if !found {
		return errors.NewUserError(errors.ErrSaveDirNotFound,
			"set the save folder manually with 'voysave config set-save-dir <path>'")
	}

	out := cmd.OutOrStdout()
	w, err := watcher.New(liveDir, func() {
		res := e.Backup()
		printResult(out, res)
	}, watcher.WithDebounce(debounce))
	if err != nil {
		return errors.Wrap(err, "starting watcher")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "Watching %s%s%s (snapshot after %s of quiet). Ctrl-C to stop.\n",
		colorCyan, liveDir, colorReset, debounce)

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "watching save directory")
	}
	fmt.Fprintln(out, "Stopped.")
	return nil
}
