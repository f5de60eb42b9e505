package idtext

import (
	"bytes"

	"github.com/joshuapare/pciids/pkg/types"
)

// Shape is the lexical form of a record line, independent of section.
type Shape uint8

const (
	ShapeClass     Shape = iota + 1 // "C <id>  <name>"
	ShapeTop                        // "<id>  <name>"
	ShapeNested                     // "\t<id>  <name>"
	ShapeSubsystem                  // "\t\t<id> <id>  <name>"
	ShapeLeaf                       // "\t\t<id>  <name>"
)

func (s Shape) String() string {
	switch s {
	case ShapeClass:
		return "class"
	case ShapeTop:
		return "top"
	case ShapeNested:
		return "nested"
	case ShapeSubsystem:
		return "subsystem"
	case ShapeLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Span is a half-open byte range [Start, End) into a line.
type Span struct {
	Start, End int
}

// Of returns the bytes of line covered by s.
func (s Span) Of(line []byte) []byte { return line[s.Start:s.End] }

// Line is a classified line: its shape and the boundaries of its fields.
// SubID is only set for ShapeSubsystem.
type Line struct {
	Shape Shape
	ID    Span
	SubID Span
	Name  Span
}

// Classifier determines the shape and field boundaries of a single record
// line. The line must not be blank or a comment and must not carry a line
// terminator.
//
// Implementations must agree on every line: same Line for valid input, same
// error for invalid input.
type Classifier interface {
	Classify(line []byte) (Line, error)
}

// ScalarClassifier classifies lines with a sequential scan.
type ScalarClassifier struct{}

// Classify implements Classifier.
func (ScalarClassifier) Classify(line []byte) (Line, error) {
	if isClassMarker(line) {
		id, name, err := splitFields(line, len(ClassMarker))
		if err != nil {
			return Line{}, err
		}
		return Line{Shape: ShapeClass, ID: id, Name: name}, nil
	}

	depth := 0
	for depth < len(line) && line[depth] == Tab {
		depth++
	}
	if depth > MaxDepth {
		return Line{}, types.ErrIndentation
	}

	id, name, err := splitFields(line, depth)
	if err != nil {
		return Line{}, err
	}

	switch depth {
	case 0:
		return Line{Shape: ShapeTop, ID: id, Name: name}, nil
	case 1:
		return Line{Shape: ShapeNested, ID: id, Name: name}, nil
	}

	// Depth 2: a single space inside the id field separates subvendor and
	// subdevice.
	if sp := bytes.IndexByte(id.Of(line), Space); sp >= 0 {
		return Line{
			Shape: ShapeSubsystem,
			ID:    Span{id.Start, id.Start + sp},
			SubID: Span{id.Start + sp + 1, id.End},
			Name:  name,
		}, nil
	}
	return Line{Shape: ShapeLeaf, ID: id, Name: name}, nil
}

// isClassMarker reports whether line opens a class record. Both "C " and
// "c " are accepted.
func isClassMarker(line []byte) bool {
	return len(line) >= len(ClassMarker) &&
		line[0]|0x20 == ClassMarker[0]|0x20 &&
		line[1] == ClassMarker[1]
}

// splitFields splits line[start:] at the first field delimiter.
func splitFields(line []byte, start int) (id, name Span, err error) {
	i := bytes.Index(line[start:], []byte(FieldDelimiter))
	if i < 0 {
		return Span{}, Span{}, types.ErrMissingDelimiter
	}
	idEnd := start + i
	return Span{start, idEnd}, Span{idEnd + len(FieldDelimiter), len(line)}, nil
}
