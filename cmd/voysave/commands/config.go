package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tavisk/voysave/internal/config"
	"github.com/tavisk/voysave/internal/errors"
	"github.com/tavisk/voysave/internal/paths"
	"github.com/tavisk/voysave/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetSaveDirCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and modify configuration",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadedConfig()
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(paths.SettingsPath())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%sConfig%s (%s)\n", colorBold, colorReset, paths.ConfigDir())
	fmt.Fprintf(out, "  snapshot_root:   %s\n", cfg.SnapshotRoot)
	fmt.Fprintf(out, "  retention_count: %d\n", cfg.RetentionCount)
	fmt.Fprintf(out, "  watch_debounce:  %s\n", cfg.WatchDebounce)

	fmt.Fprintf(out, "%sSettings%s (%s)\n", colorBold, colorReset, paths.SettingsPath())
	if settings.SaveDir != "" {
		fmt.Fprintf(out, "  save_dir: %s\n", settings.SaveDir)
	} else {
		fmt.Fprintf(out, "  save_dir: %s(auto-detect)%s\n", colorGray, colorReset)
	}
	return nil
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Create a config.yaml with the default values so it can be edited.

Fails if a config file already exists.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := filepath.Join(paths.ConfigDir(), "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return errors.NewUserError(errors.Newf("config file already exists: %s", path),
			"edit it directly or delete it first")
	}

	cfg, err := loadedConfig()
	if err != nil {
		return err
	}

	if err := paths.EnsureDir(paths.ConfigDir(), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s✓ Wrote %s%s\n", colorGreen, path, colorReset)
	return nil
}

var configSetSaveDirCmd = &cobra.Command{
	Use:   "set-save-dir <path>",
	Short: "Set the live save directory manually",
	Long: `Pin the live save directory to a fixed path, bypassing automatic
detection. Pass an empty string to go back to auto-detection.`,
	Example: `  # Point voysave at a non-standard install
  voysave config set-save-dir "D:\Games\STVoyager\Saved\SaveGames"

  # Return to auto-detection
  voysave config set-save-dir ""`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetSaveDir,
}

func runConfigSetSaveDir(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return errors.NewUserError(errors.Wrapf(err, "checking %s", dir),
				"the directory must exist before it can be set")
		}
		if !info.IsDir() {
			return errors.NewUserError(errors.Newf("%s is not a directory", dir), "")
		}
	}

	settings, err := config.LoadSettings(paths.SettingsPath())
	if err != nil {
		return err
	}
	settings.SaveDir = dir

	if err := config.SaveSettings(paths.SettingsPath(), settings); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dir == "" {
		fmt.Fprintf(out, "%s✓ Save directory override cleared; auto-detection active.%s\n",
			colorGreen, colorReset)
	} else {
		fmt.Fprintf(out, "%s✓ Save directory set: %s%s\n", colorGreen, dir, colorReset)
	}
	return nil
}
