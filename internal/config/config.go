// Package config provides configuration management for voysave using Viper.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/tavisk/voysave/internal/errors"
	"github.com/tavisk/voysave/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "voysave"

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// SnapshotRoot overrides where snapshots are stored. Empty means the
	// platform default under the XDG data home.
	SnapshotRoot string `mapstructure:"snapshot_root" yaml:"snapshot_root"`

	// RetentionCount is how many snapshots `prune` keeps. Zero disables
	// pruning entirely.
	RetentionCount int `mapstructure:"retention_count" yaml:"retention_count"`

	// WatchDebounce is how long `watch` waits after the last filesystem
	// event before taking an automatic snapshot.
	WatchDebounce time.Duration `mapstructure:"watch_debounce" yaml:"watch_debounce"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support (VOYSAVE_SNAPSHOT_ROOT etc.)
	viper.SetEnvPrefix("VOYSAVE")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("snapshot_root", paths.SnapshotRoot())
	viper.SetDefault("retention_count", 0)
	viper.SetDefault("watch_debounce", 5*time.Second)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}

	return &cfg, nil
}
