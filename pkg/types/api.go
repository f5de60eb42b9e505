package types

import (
	"errors"
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFileNotFound ErrKind = iota // no database file at any candidate location
	ErrKindIO                          // passthrough failure from the byte source
	ErrKindParse                       // malformed line or structural violation
	ErrKindUTF8                        // name field is not valid UTF-8
)

// String implements the Stringer interface for ErrKind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindFileNotFound:
		return "file not found"
	case ErrKindIO:
		return "io"
	case ErrKindParse:
		return "parse"
	case ErrKindUTF8:
		return "utf8 decode"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
//
// Line and Raw locate the input line that produced the error; Token names the
// offending id field when one could not be parsed.
type Error struct {
	Kind  ErrKind
	Msg   string
	Line  int    // 1-based input line, 0 when not tied to a line
	Raw   string // raw line content
	Token string // offending id token
	Err   error  // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Msg)
	if e.Token != "" {
		fmt.Fprintf(&b, " %q", e.Token)
	}
	if e.Raw != "" {
		fmt.Fprintf(&b, " in %q", e.Raw)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a sentinel of the same kind and message, so
// annotated copies still match with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

// At returns a copy of e annotated with the input line that produced it.
func (e *Error) At(line int, raw []byte) *Error {
	c := *e
	c.Line = line
	c.Raw = string(raw)
	return &c
}

// WithToken returns a copy of e naming the offending id token.
func (e *Error) WithToken(token []byte) *Error {
	c := *e
	c.Token = string(token)
	return &c
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.Err = cause
	return &c
}

// KindOf extracts the ErrKind of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}

// Sentinels commonly returned by implementations.
var (
	// ErrFileNotFound indicates none of the candidate locations held a database.
	ErrFileNotFound = &Error{Kind: ErrKindFileNotFound, Msg: "pci.ids database not found"}
	// ErrIO wraps a failure of the underlying byte source.
	ErrIO = &Error{Kind: ErrKindIO, Msg: "reading input"}
	// ErrMissingDelimiter indicates a record line lacks the two-space id/name delimiter.
	ErrMissingDelimiter = &Error{Kind: ErrKindParse, Msg: "missing delimiter"}
	// ErrInvalidID indicates an id token is not a hex number of the expected width.
	ErrInvalidID = &Error{Kind: ErrKindParse, Msg: "could not parse integer from"}
	// ErrIndentation indicates a line is nested deeper than any record kind allows.
	ErrIndentation = &Error{Kind: ErrKindParse, Msg: "unexpected indentation"}
	// ErrUnexpectedRecord indicates a line shape that is not valid in the current section.
	ErrUnexpectedRecord = &Error{Kind: ErrKindParse, Msg: "unexpected record for section"}
	// ErrLineTooLong indicates a line exceeded the configured maximum line size.
	ErrLineTooLong = &Error{Kind: ErrKindParse, Msg: "line too long"}
	// ErrInvalidUTF8 indicates a name field is not valid UTF-8.
	ErrInvalidUTF8 = &Error{Kind: ErrKindUTF8, Msg: "name is not valid UTF-8"}
	// ErrUnsupportedEncoding indicates an unknown input encoding was requested.
	ErrUnsupportedEncoding = &Error{Kind: ErrKindIO, Msg: "unsupported encoding"}

	// ErrNoCurrentVendor indicates a device record with no open vendor.
	ErrNoCurrentVendor = &Error{Kind: ErrKindParse, Msg: "device without a current vendor"}
	// ErrNoCurrentDevice indicates a subdevice record with no open device.
	ErrNoCurrentDevice = &Error{Kind: ErrKindParse, Msg: "subdevice without a current device"}
	// ErrNoCurrentClass indicates a subclass record with no open class.
	ErrNoCurrentClass = &Error{Kind: ErrKindParse, Msg: "subclass without a current class"}
	// ErrNoCurrentSubClass indicates a prog-if record with no open subclass.
	ErrNoCurrentSubClass = &Error{Kind: ErrKindParse, Msg: "prog-if without a current subclass"}
)
