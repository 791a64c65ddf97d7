package doctor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tavisk/voysave/internal/config"
	"github.com/tavisk/voysave/internal/paths"
)

// SaveDirCheck verifies the live save directory can be found.
type SaveDirCheck struct {
	// Env is the environment to probe. Zero value means the real machine.
	Env paths.Env

	// Override is the manual save-directory setting, if any.
	Override string
}

func (c *SaveDirCheck) Name() string     { return "save-directory" }
func (c *SaveDirCheck) Category() string { return "paths" }

func (c *SaveDirCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if c.Override != "" {
		if _, err := os.Stat(c.Override); err != nil {
			result.Status = SeverityError
			result.Message = fmt.Sprintf("configured save directory does not exist: %s", c.Override)
			result.FixHint = "update it with 'voysave config set-save-dir <path>' or remove the override"
			return result
		}
		result.Status = SeverityPass
		result.Message = "save directory set manually"
		result.Details = map[string]any{"path": c.Override, "source": "settings"}
		return result
	}

	env := c.Env
	if env.Getenv == nil {
		env = paths.DefaultEnv()
	}

	dir, found := paths.ResolveLiveDirectory(env)
	if !found {
		result.Status = SeverityWarning
		result.Message = "save directory not found in any known location"
		result.FixHint = "start the game once so it creates a save, or set the path with 'voysave config set-save-dir <path>'"
		result.Details = map[string]any{"candidates": paths.LiveDirCandidates(env)}
		return result
	}

	result.Status = SeverityPass
	result.Message = "save directory detected"
	result.Details = map[string]any{"path": dir, "source": "auto"}
	return result
}

// SnapshotRootCheck verifies the snapshot root exists and is writable.
type SnapshotRootCheck struct {
	Root string
}

func (c *SnapshotRootCheck) Name() string     { return "snapshot-root" }
func (c *SnapshotRootCheck) Category() string { return "paths" }

func (c *SnapshotRootCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.Root},
	}

	info, err := os.Stat(c.Root)
	if os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = "snapshot root does not exist yet; it is created on first save"
		return result
	}
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot access snapshot root: %v", err)
		return result
	}
	if !info.IsDir() {
		result.Status = SeverityError
		result.Message = "snapshot root exists but is not a directory"
		result.FixHint = "move the file out of the way or choose another snapshot_root in config.yaml"
		return result
	}

	// Probe writability the reliable way: try to create a file.
	probe, err := os.CreateTemp(c.Root, ".voysave-doctor-*")
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("snapshot root is not writable: %v", err)
		return result
	}
	probe.Close()
	os.Remove(probe.Name())

	entries, err := os.ReadDir(c.Root)
	if err == nil {
		count := 0
		for _, e := range entries {
			if e.IsDir() {
				count++
			}
		}
		result.Details["snapshots"] = count
	}

	result.Status = SeverityPass
	result.Message = "snapshot root is writable"
	return result
}

// ConfigCheck verifies the config file loads and validates.
type ConfigCheck struct{}

func (c *ConfigCheck) Name() string     { return "config-file" }
func (c *ConfigCheck) Category() string { return "config" }

func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	cfg, err := config.Load("")
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("config did not load: %v", err)
		result.FixHint = "fix or remove config.yaml under " + paths.ConfigDir()
		return result
	}

	result.Status = SeverityPass
	result.Message = "config loaded"
	result.Details = map[string]any{
		"snapshot_root":   cfg.SnapshotRoot,
		"retention_count": cfg.RetentionCount,
	}
	return result
}

// SettingsCheck verifies the settings file parses.
type SettingsCheck struct {
	Path string
}

func (c *SettingsCheck) Name() string     { return "settings-file" }
func (c *SettingsCheck) Category() string { return "config" }

func (c *SettingsCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.Path},
	}

	if _, err := os.Stat(c.Path); os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = "no settings file; automatic save-directory detection is in effect"
		return result
	}

	settings, err := config.LoadSettings(c.Path)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("settings did not parse: %v", err)
		result.FixHint = "fix or delete " + filepath.Base(c.Path)
		return result
	}

	result.Status = SeverityPass
	if settings.SaveDir != "" {
		result.Message = "settings loaded; save directory is overridden"
		result.Details["save_dir"] = settings.SaveDir
	} else {
		result.Message = "settings loaded"
	}
	return result
}
