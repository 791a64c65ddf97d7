package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tavisk/voysave/internal/engine"
	"github.com/tavisk/voysave/internal/errors"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"this is a long string", 10, "this is..."},
		{"abc", 2, "ab"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestResultErr(t *testing.T) {
	if err := resultErr(engine.Result{}); err != nil {
		t.Errorf("success result should map to nil, got %v", err)
	}

	// A no-op backup is not a failure.
	if err := resultErr(engine.Result{Err: errors.ErrNothingToBackUp}); err != nil {
		t.Errorf("nothing-to-back-up should map to nil, got %v", err)
	}

	var exitErr *errors.ExitError

	err := resultErr(engine.Result{Err: errors.ErrBusy})
	if !errors.As(err, &exitErr) || exitErr.Code != errors.ExitUser {
		t.Errorf("busy should map to user exit code, got %v", err)
	}

	err = resultErr(engine.Result{Err: errors.ErrSaveDirNotFound})
	if !errors.As(err, &exitErr) || exitErr.Suggestion == "" {
		t.Errorf("missing save dir should carry a suggestion, got %v", err)
	}

	err = resultErr(engine.Result{Err: errors.New("disk exploded")})
	if !errors.As(err, &exitErr) || exitErr.Code != errors.ExitSystem {
		t.Errorf("I/O failure should map to system exit code, got %v", err)
	}
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer

	printResult(&buf, engine.Result{Message: "Saved: x (2 items)", Severity: engine.SeverityInfo})
	if !strings.Contains(buf.String(), "Saved: x (2 items)") {
		t.Errorf("info output missing message: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "✓") {
		t.Errorf("info output missing check mark: %q", buf.String())
	}

	buf.Reset()
	printResult(&buf, engine.Result{Message: "boom", Severity: engine.SeverityError})
	if !strings.Contains(buf.String(), "✗") {
		t.Errorf("error output missing cross mark: %q", buf.String())
	}
}
