package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// -----------------------------------------------------------------------------
// Diagnostic System
// -----------------------------------------------------------------------------
//
// Parsing a pci.ids file never stops for issues that still leave a well-formed
// database, such as an id listed twice under the same parent (the later record
// silently wins). Diagnose collects those issues, plus the fatal error if the
// parse fails, into a DiagnosticReport. Plain Parse pays nothing for it.

// Severity classifies how serious a diagnostic issue is.
type Severity int

const (
	SevInfo    Severity = iota // unusual but harmless
	SevWarning                 // data from the file is dropped or replaced
	SevError                   // the file cannot be parsed
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// MarshalText lets Severity key JSON maps.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic is a single issue found in the input.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Record   string   `json:"record,omitempty"` // vendor, device, subdevice, class, subclass, prog-if
	ID       string   `json:"id,omitempty"`     // id as written in the file
	Line     int      `json:"line"`
	Raw      string   `json:"raw,omitempty"`
	Issue    string   `json:"issue"`
}

// DiagnosticReport collects all diagnostics found during a scan.
type DiagnosticReport struct {
	// Metadata
	Source   string        `json:"source,omitempty"`
	Lines    int           `json:"lines"`
	ScanTime time.Duration `json:"scan_time"`

	// Issues
	Diagnostics []Diagnostic `json:"diagnostics"`

	// Summary statistics
	Summary DiagSummary `json:"summary"`

	BySeverity map[Severity][]Diagnostic `json:"by_severity,omitempty"`
}

// DiagSummary provides quick statistics.
type DiagSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// NewDiagnosticReport creates an empty report.
func NewDiagnosticReport() *DiagnosticReport {
	return &DiagnosticReport{
		Diagnostics: []Diagnostic{},
		BySeverity:  make(map[Severity][]Diagnostic),
	}
}

// Add adds a diagnostic to the report and updates the summary.
func (r *DiagnosticReport) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)

	switch d.Severity {
	case SevError:
		r.Summary.Errors++
	case SevWarning:
		r.Summary.Warnings++
	case SevInfo:
		r.Summary.Info++
	}

	r.BySeverity[d.Severity] = append(r.BySeverity[d.Severity], d)
}

// Finalize orders diagnostics by line.
func (r *DiagnosticReport) Finalize() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		return r.Diagnostics[i].Line < r.Diagnostics[j].Line
	})
}

// HasErrors returns true if the input could not be parsed.
func (r *DiagnosticReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasAnyIssues returns true if any issues were found (including info).
func (r *DiagnosticReport) HasAnyIssues() bool {
	return len(r.Diagnostics) > 0
}

// -----------------------------------------------------------------------------
// Output Formatters
// -----------------------------------------------------------------------------

// FormatJSON returns the report as formatted JSON (2-space indentation)
func (r *DiagnosticReport) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatText returns a human-readable text report.
func (r *DiagnosticReport) FormatText() string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 79) + "\n")
	b.WriteString("pci.ids Diagnostic Report\n")
	b.WriteString(strings.Repeat("=", 79) + "\n\n")

	if r.Source != "" {
		fmt.Fprintf(&b, "Source:    %s\n", r.Source)
	}
	fmt.Fprintf(&b, "Lines:     %d\n", r.Lines)
	fmt.Fprintf(&b, "Scan time: %v\n\n", r.ScanTime)

	b.WriteString("SUMMARY\n")
	b.WriteString(strings.Repeat("-", 79) + "\n")
	fmt.Fprintf(&b, "  Errors:   %d\n", r.Summary.Errors)
	fmt.Fprintf(&b, "  Warnings: %d\n", r.Summary.Warnings)
	fmt.Fprintf(&b, "  Info:     %d\n\n", r.Summary.Info)

	if len(r.Diagnostics) == 0 {
		b.WriteString("No issues found.\n")
		return b.String()
	}

	b.WriteString("DIAGNOSTICS\n")
	b.WriteString(strings.Repeat("-", 79) + "\n\n")

	for _, severity := range []Severity{SevError, SevWarning, SevInfo} {
		diags := r.BySeverity[severity]
		if len(diags) == 0 {
			continue
		}

		fmt.Fprintf(&b, "%s (%d)\n", severity, len(diags))
		b.WriteString(strings.Repeat("~", 79) + "\n")

		for i, d := range diags {
			fmt.Fprintf(&b, "\n%d. line %d", i+1, d.Line)
			if d.Record != "" {
				fmt.Fprintf(&b, " [%s %s]", d.Record, d.ID)
			}
			fmt.Fprintf(&b, "\n   %s\n", d.Issue)
			if d.Raw != "" {
				fmt.Fprintf(&b, "   Line:     %q\n", d.Raw)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// FormatTextCompact returns a compact one-line-per-issue text format.
func (r *DiagnosticReport) FormatTextCompact() string {
	var b strings.Builder

	for _, d := range r.Diagnostics {
		fmt.Fprintf(&b, "%d: %s: %s\n", d.Line, d.Severity, d.Issue)
	}

	if len(r.Diagnostics) == 0 {
		b.WriteString("No issues found.\n")
	}

	return b.String()
}
