// Package transfer implements the directory-tree copy and wipe primitives
// used by both backup and restore.
package transfer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tavisk/voysave/internal/errors"
	"github.com/tavisk/voysave/internal/logging"
	"github.com/tavisk/voysave/internal/paths"
)

// CopyTree copies every direct child of src into dst, creating dst if
// absent. Files are copied with permissions and modification time
// preserved; directories are copied recursively. Children may be any mix
// of files and directories.
//
// Returns the number of direct children processed (not the total file
// count); that count is the unit shown to the user. Any error aborts the
// remaining work; the caller is responsible for cleaning up whatever was
// already produced.
func CopyTree(src, dst string) (int, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, errors.Wrapf(err, "reading source directory %s", src)
	}

	if err := paths.EnsureDir(dst, 0); err != nil {
		return 0, errors.Wrapf(err, "creating destination directory %s", dst)
	}

	copied := 0
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return copied, err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return copied, err
			}
		}
		copied++
	}

	return copied, nil
}

// WipeTree removes every direct child of dir (files unlinked, directories
// removed recursively) without removing dir itself. The directory is
// created first if it does not exist.
func WipeTree(dir string) error {
	if err := paths.EnsureDir(dir, 0); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "reading directory %s", dir)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return errors.Wrapf(err, "removing %s", path)
		}
	}

	return nil
}

// copyDir recursively copies a directory from src to dst.
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, "stat directory %s", src)
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return errors.Wrapf(err, "creating directory %s", dst)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, "reading directory %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// copyFile copies a single file from src to dst, preserving the source's
// permissions and modification time.
func copyFile(src, dst string) error {
	slog.Default().Log(context.Background(), logging.LevelTrace, "copying file", "src", src, "dst", dst)

	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening source file %s", src)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat source file %s", src)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "creating destination file %s", dst)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Wrapf(err, "copying %s", src)
	}

	if err := dstFile.Close(); err != nil {
		return errors.Wrapf(err, "closing destination file %s", dst)
	}

	// Keep the save file's timestamp so restored saves look untouched
	// to the game.
	if err := os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return errors.Wrapf(err, "preserving timestamps for %s", dst)
	}

	return nil
}
