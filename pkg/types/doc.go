// Package types defines the data model and error taxonomy shared by the
// pci.ids parser and its callers.
//
// The model mirrors the two hierarchies found in a pci.ids file:
//   - Vendor -> Device -> subsystem name, keyed by 16-bit ids.
//   - Class -> SubClass -> programming interface name, keyed by 8-bit ids.
//
// Errors are *Error values with a stable ErrKind (file-not-found, io, parse,
// utf8). Annotated copies produced with At/WithToken/Wrap still match their
// sentinel under errors.Is.
//
// DiagnosticReport collects non-fatal issues, such as ids listed twice, that
// a normal parse resolves silently.
//
// This package has no dependencies beyond the standard library.
package types
