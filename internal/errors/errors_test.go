package errors

import (
	stderrors "errors"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	err := NewExitError(New("boom"), ExitSystem)
	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", err.Error(), "boom")
	}

	nilErr := NewExitError(nil, ExitUser)
	if nilErr.Error() != "exit code 1" {
		t.Errorf("Error() = %q, want %q", nilErr.Error(), "exit code 1")
	}
}

func TestExitError_Unwrap(t *testing.T) {
	wrapped := NewUserError(ErrSaveDirNotFound, "run: voysave config set-save-dir <path>")

	if !stderrors.Is(wrapped, ErrSaveDirNotFound) {
		t.Error("errors.Is should find the sentinel through ExitError")
	}

	var exitErr *ExitError
	if !stderrors.As(wrapped, &exitErr) {
		t.Fatal("errors.As should extract *ExitError")
	}
	if exitErr.Code != ExitUser {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitUser)
	}
	if exitErr.Suggestion == "" {
		t.Error("Suggestion should be preserved")
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrBusy, ErrSaveDirNotFound, ErrSnapshotNotFound, ErrNothingToBackUp}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && stderrors.Is(a, b) {
				t.Errorf("sentinel %v should not match %v", a, b)
			}
		}
	}
}

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrapf(ErrSnapshotNotFound, "snapshot %s", "2024-01-01_00-00-00")
	if !Is(err, ErrSnapshotNotFound) {
		t.Error("Wrapf should preserve the sentinel in the chain")
	}
}
