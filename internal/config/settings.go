package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/tavisk/voysave/internal/errors"
	"github.com/tavisk/voysave/internal/paths"
	"github.com/tavisk/voysave/pkg/fileutil"
)

// Settings holds user state written by the tool itself, as opposed to the
// declarative config file the user edits. Kept in a separate TOML file so
// `config set-save-dir` never clobbers hand-written YAML.
type Settings struct {
	// SaveDir is a manual override for the live save directory. When set it
	// takes precedence over automatic detection.
	SaveDir string `toml:"save_dir"`
}

// LoadSettings reads the settings file at path. A missing file is not an
// error; it returns zero-value settings.
func LoadSettings(path string) (*Settings, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, errors.Wrap(err, "reading settings")
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "parsing settings")
	}
	return &s, nil
}

// SaveSettings writes s atomically to path, creating the parent directory
// if needed.
func SaveSettings(path string, s *Settings) error {
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating settings directory")
	}
	return fileutil.AtomicWriteTOML(path, s)
}
