package config

import (
	"path/filepath"
	"strings"

	"github.com/tavisk/voysave/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrNegativeRetention indicates a retention count below zero.
	ErrNegativeRetention = errors.New("retention_count must be >= 0")

	// ErrNegativeDebounce indicates a watch debounce below zero.
	ErrNegativeDebounce = errors.New("watch_debounce must be >= 0")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if cfg.RetentionCount < 0 {
		errs = append(errs, ErrNegativeRetention)
	}

	if cfg.WatchDebounce < 0 {
		errs = append(errs, ErrNegativeDebounce)
	}

	if cfg.SnapshotRoot != "" {
		if err := validatePath(cfg.SnapshotRoot); err != nil {
			errs = append(errs, &PathError{
				Field: "snapshot_root",
				Path:  cfg.SnapshotRoot,
				Err:   err,
			})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if path == "" {
		return nil
	}

	// Null bytes are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
