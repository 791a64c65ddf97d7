package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tavisk/voysave/internal/config"
	"github.com/tavisk/voysave/internal/engine"
	"github.com/tavisk/voysave/internal/errors"
	"github.com/tavisk/voysave/internal/logging"
	"github.com/tavisk/voysave/internal/paths"
	"github.com/tavisk/voysave/internal/progress"
	"github.com/tavisk/voysave/internal/store"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// loadedConfig returns the active configuration, falling back to defaults
// when no file exists.
func loadedConfig() (*config.Config, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// newEngine builds the backup engine from the active config and settings.
// A save-directory override in settings.toml takes precedence over
// automatic detection.
func newEngine() (*engine.Engine, error) {
	cfg, err := loadedConfig()
	if err != nil {
		return nil, err
	}

	settings, err := config.LoadSettings(paths.SettingsPath())
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithStore(store.New(store.WithRoot(cfg.SnapshotRoot))),
	}
	if settings.SaveDir != "" {
		opts = append(opts, engine.WithLiveDir(settings.SaveDir))
	}

	return engine.New(opts...), nil
}

// spinnerFrames is the indicator cycle rendered while an operation runs.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// runWithProgress executes op on its own goroutine while driving the
// progress indicator on this one. Off a terminal the indicator is skipped
// and op runs inline.
func runWithProgress(cmd *cobra.Command, label string, op func() engine.Result) engine.Result {
	out := cmd.ErrOrStderr()
	if !logging.IsTTY(out) {
		return op()
	}

	sig := progress.New()
	done := make(chan engine.Result, 1)
	go func() {
		r := op()
		sig.RequestFinish()
		done <- r
	}()

	frame := 0
	sig.Run(cmd.Context(), func(phase progress.Phase, _ float64) {
		if phase == progress.PhaseDone {
			fmt.Fprintf(out, "\r%s\r", strings.Repeat(" ", len(label)+4))
			return
		}
		fmt.Fprintf(out, "\r%s%s%s %s", colorCyan, spinnerFrames[frame%len(spinnerFrames)], colorReset, label)
		frame++
	})

	return <-done
}

// printResult renders an operation's status message in its severity color.
func printResult(w io.Writer, r engine.Result) {
	switch r.Severity {
	case engine.SeverityInfo:
		fmt.Fprintf(w, "%s✓ %s%s\n", colorGreen, r.Message, colorReset)
	case engine.SeverityWarn:
		fmt.Fprintf(w, "%s%s%s\n", colorYellow, r.Message, colorReset)
	default:
		fmt.Fprintf(w, "%s✗ %s%s\n", colorRed, r.Message, colorReset)
	}
}

// resultErr converts a Result into the command's error return. No-op
// outcomes (nothing to back up) exit zero.
func resultErr(r engine.Result) error {
	if !r.Failed() {
		return nil
	}
	if errors.Is(r.Err, errors.ErrSaveDirNotFound) {
		return errors.NewUserError(r.Err,
			"set the save folder manually with 'voysave config set-save-dir <path>'")
	}
	if errors.Is(r.Err, errors.ErrBusy) || errors.Is(r.Err, errors.ErrSnapshotNotFound) {
		return errors.NewExitError(r.Err, errors.ExitUser)
	}
	return errors.NewExitError(r.Err, errors.ExitSystem)
}

// confirm asks a y/N question on the command's input stream.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)

	in := cmd.InOrStdin()
	if in == nil {
		in = os.Stdin
	}
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, errors.Wrap(err, "reading confirmation")
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
