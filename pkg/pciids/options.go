package pciids

import (
	"io"
	"log/slog"
	"strings"

	"github.com/joshuapare/pciids/internal/idtext"
	"github.com/joshuapare/pciids/pkg/types"
)

// ClassifierKind selects the line classification strategy.
type ClassifierKind int

const (
	// ClassifierScalar scans each line byte by byte.
	ClassifierScalar ClassifierKind = iota
	// ClassifierWindow compares a fixed lookahead window against per-shape
	// byte masks and falls back to the scalar scan when no mask matches.
	ClassifierWindow
)

func (k ClassifierKind) String() string {
	switch k {
	case ClassifierScalar:
		return "scalar"
	case ClassifierWindow:
		return "window"
	default:
		return "unknown"
	}
}

// ParseClassifierKind parses "scalar" or "window" (case-insensitive).
func ParseClassifierKind(s string) (ClassifierKind, error) {
	switch strings.ToLower(s) {
	case "", "scalar":
		return ClassifierScalar, nil
	case "window":
		return ClassifierWindow, nil
	default:
		return 0, &types.Error{Kind: types.ErrKindParse, Msg: "unknown classifier", Token: s}
	}
}

// Options controls how a database is read.
type Options struct {
	// Classifier picks the line classification strategy.
	// Both produce identical results.
	// Default: ClassifierScalar
	Classifier ClassifierKind

	// Encoding of the input bytes.
	// Supported values: "UTF-8", "UTF-16LE", "WINDOWS-1252", "ISO-8859-1"
	// Default: "UTF-8" (a leading byte-order mark is honoured)
	Encoding string

	// MaxLineSize bounds a single input line in bytes.
	// Default: 1 MiB
	MaxLineSize int

	// Logger receives debug output about sources and parse results.
	// Default: discard
	Logger *slog.Logger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// DefaultOptions returns the options used when nil is passed.
func DefaultOptions() *Options {
	return &Options{
		Classifier:  ClassifierScalar,
		Encoding:    idtext.EncodingUTF8,
		MaxLineSize: idtext.ScannerMaxLineSize,
		Logger:      discardLogger,
	}
}

// orDefault returns o, or the defaults when o is nil.
func (o *Options) orDefault() *Options {
	if o == nil {
		return DefaultOptions()
	}
	return o
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}

func (o *Options) classifier() idtext.Classifier {
	if o.Classifier == ClassifierWindow {
		return idtext.WindowClassifier{}
	}
	return idtext.ScalarClassifier{}
}

// newScanner decodes r per o.Encoding and wraps it in an event scanner.
func (o *Options) newScanner(r io.Reader) (*idtext.Scanner, error) {
	decoded, err := idtext.DecodeInput(r, o.Encoding)
	if err != nil {
		return nil, err
	}
	return idtext.NewScanner(decoded, idtext.ScannerOptions{
		Classifier:  o.classifier(),
		MaxLineSize: o.MaxLineSize,
	}), nil
}
