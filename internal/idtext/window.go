package idtext

import "encoding/binary"

// WindowClassifier classifies well-formed lines in constant time by loading
// the first WindowSize bytes into two words and comparing them against a
// fixed mask per line shape. Lines no mask accepts fall through to
// ScalarClassifier, so malformed input reports the same errors.
type WindowClassifier struct{}

// windowPattern is a compiled line template.
type windowPattern struct {
	shape     Shape
	mask      [2]uint64
	want      [2]uint64
	id        Span
	subID     Span
	nameStart int
}

// Templates use 'h' for a hex digit and 'C' for the case-insensitive class
// letter; every other byte must match exactly. Class comes first so that
// "C 02  ..." is never read as a vendor.
var windowPatterns = []windowPattern{
	compilePattern(ShapeClass, "C hh  "),
	compilePattern(ShapeTop, "hhhh  "),
	compilePattern(ShapeNested, "\thhhh  "),
	compilePattern(ShapeNested, "\thh  "),
	compilePattern(ShapeSubsystem, "\t\thhhh hhhh  "),
	compilePattern(ShapeLeaf, "\t\thh  "),
}

func compilePattern(shape Shape, tmpl string) windowPattern {
	if len(tmpl) > WindowSize {
		panic("idtext: template wider than window: " + tmpl)
	}
	var mask, want [WindowSize]byte
	var spans []Span
	for i := 0; i < len(tmpl); i++ {
		switch c := tmpl[i]; c {
		case 'h':
			if n := len(spans); n > 0 && spans[n-1].End == i {
				spans[n-1].End++
			} else {
				spans = append(spans, Span{i, i + 1})
			}
		case 'C':
			mask[i], want[i] = 0xDF, 'C'
		default:
			mask[i], want[i] = 0xFF, c
		}
	}

	p := windowPattern{
		shape:     shape,
		mask:      [2]uint64{binary.LittleEndian.Uint64(mask[0:8]), binary.LittleEndian.Uint64(mask[8:16])},
		want:      [2]uint64{binary.LittleEndian.Uint64(want[0:8]), binary.LittleEndian.Uint64(want[8:16])},
		id:        spans[0],
		nameStart: len(tmpl),
	}
	if len(spans) > 1 {
		p.subID = spans[1]
	}
	return p
}

// Classify implements Classifier.
func (WindowClassifier) Classify(line []byte) (Line, error) {
	// Short lines are zero padded; zero never matches a tab, space or hex digit.
	var w [WindowSize]byte
	copy(w[:], line)
	lo := binary.LittleEndian.Uint64(w[0:8])
	hi := binary.LittleEndian.Uint64(w[8:16])

	for i := range windowPatterns {
		p := &windowPatterns[i]
		if lo&p.mask[0] != p.want[0] || hi&p.mask[1] != p.want[1] {
			continue
		}
		if !allHex(w[:], p.id) || (p.shape == ShapeSubsystem && !allHex(w[:], p.subID)) {
			continue
		}
		return Line{
			Shape: p.shape,
			ID:    p.id,
			SubID: p.subID,
			Name:  Span{p.nameStart, len(line)},
		}, nil
	}
	return ScalarClassifier{}.Classify(line)
}

func allHex(b []byte, s Span) bool {
	for _, c := range s.Of(b) {
		if hexCharToNibble(c) == invalidNibble {
			return false
		}
	}
	return true
}
