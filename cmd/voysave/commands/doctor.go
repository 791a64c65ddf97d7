package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tavisk/voysave/internal/config"
	"github.com/tavisk/voysave/internal/doctor"
	"github.com/tavisk/voysave/internal/errors"
	"github.com/tavisk/voysave/internal/paths"
)

var (
	doctorJSON  bool
	doctorQuiet bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose setup issues",
	Long: `Run diagnostic checks on the voysave setup.

Verifies that the game's save directory can be found, that the snapshot
root is writable, and that the config and settings files parse.

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if doctorJSON && doctorQuiet {
			return errors.NewUserError(nil, "--json and --quiet are mutually exclusive")
		}
		return nil
	},
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadedConfig()
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(paths.SettingsPath())
	if err != nil {
		// Still diagnosable; the settings check reports the parse failure.
		settings = &config.Settings{}
	}

	runner := doctor.NewRunner()
	runner.AddCheck(&doctor.SaveDirCheck{Override: settings.SaveDir})
	runner.AddCheck(&doctor.SnapshotRootCheck{Root: cfg.SnapshotRoot})
	runner.AddCheck(&doctor.ConfigCheck{})
	runner.AddCheck(&doctor.SettingsCheck{Path: paths.SettingsPath()})

	report := runner.Run()

	if !doctorQuiet {
		if doctorJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return errors.Wrap(err, "encoding report")
			}
		} else {
			renderReport(cmd.OutOrStdout(), report)
		}
	}

	switch {
	case report.HasErrors():
		return errors.NewExitError(errors.New("doctor found errors"), errors.ExitSystem)
	case report.HasWarnings():
		return errors.NewExitError(errors.New("doctor found warnings"), errors.ExitUser)
	default:
		return nil
	}
}

func renderReport(w io.Writer, report *doctor.Report) {
	for _, r := range report.Results {
		var mark string
		switch r.Status {
		case doctor.SeverityPass:
			mark = colorGreen + "✓" + colorReset
		case doctor.SeverityInfo:
			mark = colorCyan + "i" + colorReset
		case doctor.SeverityWarning:
			mark = colorYellow + "!" + colorReset
		default:
			mark = colorRed + "✗" + colorReset
		}

		fmt.Fprintf(w, "%s %s%s%s: %s\n", mark, colorBold, r.Name, colorReset, r.Message)
		if path, ok := r.Details["path"]; ok {
			fmt.Fprintf(w, "    %s%v%s\n", colorGray, path, colorReset)
		}
		if r.FixHint != "" {
			fmt.Fprintf(w, "    %shint: %s%s\n", colorGray, r.FixHint, colorReset)
		}
	}

	s := report.Summary
	fmt.Fprintf(w, "\n%d passed, %d info, %d warning(s), %d error(s)\n",
		s.Passed, s.Info, s.Warnings, s.Errors)
}
