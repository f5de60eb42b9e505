package pciids

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/joshuapare/pciids/internal/idtext"
	"github.com/joshuapare/pciids/pkg/types"
)

// Diagnose parses r the way Parse does and reports issues that Parse
// resolves silently: records that replace an earlier record with the same id
// (warning) and records with an empty name (info).
//
// If the input cannot be parsed the report ends with one SevError
// diagnostic and the parse error is returned alongside it.
func Diagnose(r io.Reader, opts *Options) (*types.DiagnosticReport, error) {
	opts = opts.orDefault()
	report := types.NewDiagnosticReport()

	start := time.Now()
	_, lines, err := parse(r, opts, report)
	report.Lines = lines
	report.ScanTime = time.Since(start)

	if err != nil {
		d := types.Diagnostic{Severity: types.SevError, Line: lines, Issue: err.Error()}
		var te *types.Error
		if errors.As(err, &te) {
			d.Raw = te.Raw
			d.Issue = te.Msg
			if te.Token != "" {
				d.Issue += fmt.Sprintf(" %q", te.Token)
			}
			if te.Err != nil {
				d.Issue += ": " + te.Err.Error()
			}
		}
		report.Add(d)
	}
	report.Finalize()

	opts.logger().Debug("diagnosed pci.ids",
		"lines", lines,
		"warnings", report.Summary.Warnings,
		"errors", report.Summary.Errors)
	return report, err
}

// inspect notes the issues ev raises before the aggregator applies it.
func inspect(report *types.DiagnosticReport, agg *aggregator, ev idtext.Event, sc *idtext.Scanner) {
	if agg.replaces(ev) {
		report.Add(types.Diagnostic{
			Severity: types.SevWarning,
			Record:   ev.Kind.String(),
			ID:       formatEventID(ev),
			Line:     sc.Line(),
			Raw:      string(sc.Raw()),
			Issue:    "replaces an earlier record with the same id",
		})
	}
	if ev.Name == "" {
		report.Add(types.Diagnostic{
			Severity: types.SevInfo,
			Record:   ev.Kind.String(),
			ID:       formatEventID(ev),
			Line:     sc.Line(),
			Raw:      string(sc.Raw()),
			Issue:    "empty name",
		})
	}
}

func formatEventID(ev idtext.Event) string {
	switch ev.Kind {
	case idtext.EventSubdevice:
		return SubDeviceID{Subvendor: ev.ID, Subdevice: ev.SubID}.String()
	case idtext.EventClass, idtext.EventSubClass, idtext.EventProgIf:
		return fmt.Sprintf("%02x", ev.ID)
	default:
		return fmt.Sprintf("%04x", ev.ID)
	}
}
