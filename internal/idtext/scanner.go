package idtext

import (
	"bufio"
	"errors"
	"io"

	"github.com/joshuapare/pciids/pkg/types"
)

// ScannerOptions configures a Scanner.
type ScannerOptions struct {
	// Classifier determines line shapes. Nil means ScalarClassifier.
	Classifier Classifier

	// MaxLineSize bounds a single line. 0 means ScannerMaxLineSize.
	MaxLineSize int
}

// Scanner pulls lines from a reader and yields one Event per record line,
// tracking which section of the file it is in. Blank lines and comments are
// skipped.
//
// Scanning stops at the first error; Err reports it. Reaching the end of
// input is not an error.
type Scanner struct {
	sc      *bufio.Scanner
	cls     Classifier
	section Section
	line    int
	raw     []byte
	ev      Event
	err     error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader, opts ScannerOptions) *Scanner {
	cls := opts.Classifier
	if cls == nil {
		cls = ScalarClassifier{}
	}
	maxLine := opts.MaxLineSize
	if maxLine <= 0 {
		maxLine = ScannerMaxLineSize
	}

	sc := bufio.NewScanner(r)
	buf := make([]byte, 0, min(ScannerInitialBufferSize, maxLine))
	sc.Buffer(buf, maxLine)

	return &Scanner{sc: sc, cls: cls, section: SectionDevices}
}

// Scan advances to the next event. It returns false at end of input or on
// error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}

	for s.sc.Scan() {
		s.line++
		raw := s.sc.Bytes()
		if n := len(raw); n > 0 && raw[n-1] == CR {
			raw = raw[:n-1]
		}
		if len(raw) == 0 || raw[0] == CommentPrefix {
			continue
		}
		s.raw = raw

		l, err := s.cls.Classify(raw)
		if err != nil {
			s.fail(err)
			return false
		}
		if l.Shape == ShapeClass {
			s.section = SectionClasses
		}

		ev, err := Decode(l, raw, s.section)
		if err != nil {
			s.fail(err)
			return false
		}
		s.ev = ev
		return true
	}

	if err := s.sc.Err(); err != nil {
		s.raw = nil
		if errors.Is(err, bufio.ErrTooLong) {
			s.err = types.ErrLineTooLong.At(s.line+1, nil)
		} else {
			s.err = types.ErrIO.Wrap(err)
		}
	}
	return false
}

// fail records err annotated with the current line.
func (s *Scanner) fail(err error) {
	var te *types.Error
	if errors.As(err, &te) {
		s.err = te.At(s.line, s.raw)
		return
	}
	s.err = err
}

// Event returns the event produced by the last successful Scan.
func (s *Scanner) Event() Event { return s.ev }

// Err returns the first error encountered, or nil at a clean end of input.
func (s *Scanner) Err() error { return s.err }

// Line returns the 1-based number of the line last read.
func (s *Scanner) Line() int { return s.line }

// Raw returns the current line without its terminator. It is only valid
// until the next call to Scan.
func (s *Scanner) Raw() []byte { return s.raw }

// Section returns the section the scanner is currently in.
func (s *Scanner) Section() Section { return s.section }
