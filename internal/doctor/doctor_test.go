package doctor

import (
	"testing"
)

// stubCheck returns a fixed result.
type stubCheck struct {
	name     string
	category string
	status   Severity
}

func (c *stubCheck) Name() string     { return c.name }
func (c *stubCheck) Category() string { return c.category }
func (c *stubCheck) Run() *CheckResult {
	return &CheckResult{
		Name:     c.name,
		Category: c.category,
		Status:   c.status,
		Message:  "stub",
	}
}

func TestRunner_AggregatesSummary(t *testing.T) {
	r := NewRunner()
	r.AddCheck(&stubCheck{name: "a", category: "x", status: SeverityPass})
	r.AddCheck(&stubCheck{name: "b", category: "x", status: SeverityInfo})
	r.AddCheck(&stubCheck{name: "c", category: "y", status: SeverityWarning})
	r.AddCheck(&stubCheck{name: "d", category: "y", status: SeverityError})
	r.AddCheck(&stubCheck{name: "e", category: "y", status: SeverityError})

	report := r.Run()

	if len(report.Results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(report.Results))
	}
	if report.Summary.Passed != 1 || report.Summary.Info != 1 ||
		report.Summary.Warnings != 1 || report.Summary.Errors != 2 {
		t.Errorf("summary = %+v, want 1/1/1/2", report.Summary)
	}
	if !report.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
	if !report.HasWarnings() {
		t.Error("HasWarnings() = false, want true")
	}
	if report.Timestamp.IsZero() {
		t.Error("report timestamp not set")
	}
}

func TestRunner_EmptyReport(t *testing.T) {
	report := NewRunner().Run()

	if report.HasErrors() || report.HasWarnings() {
		t.Error("empty report should have no errors or warnings")
	}
}

func TestSeverityString(t *testing.T) {
	cases := map[Severity]string{
		SeverityPass:    "pass",
		SeverityInfo:    "info",
		SeverityWarning: "warning",
		SeverityError:   "error",
		Severity(42):    "unknown",
	}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}
