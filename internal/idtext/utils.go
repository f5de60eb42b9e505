package idtext

import (
	"unicode/utf8"

	"github.com/joshuapare/pciids/pkg/types"
)

// invalidNibble is returned by hexCharToNibble for non-hex characters.
const invalidNibble = 0xFF

// hexCharToNibble converts a hex character to its 4-bit value
// Returns invalidNibble for invalid characters.
func hexCharToNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return invalidNibble
	}
}

// parseHexID parses an id token of exactly width hex digits.
func parseHexID(tok []byte, width int) (uint16, error) {
	if len(tok) != width {
		return 0, types.ErrInvalidID.WithToken(tok)
	}
	var v uint16
	for _, c := range tok {
		n := hexCharToNibble(c)
		if n == invalidNibble {
			return 0, types.ErrInvalidID.WithToken(tok)
		}
		v = v<<4 | uint16(n)
	}
	return v, nil
}

// decodeName validates a name field and copies it out of the line buffer.
func decodeName(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", types.ErrInvalidUTF8
	}
	return string(b), nil
}

// Decode validates a classified line and turns it into an Event for the
// given section. Shapes that have no meaning in the section are rejected.
func Decode(l Line, line []byte, section Section) (Event, error) {
	var (
		ev    Event
		width = DeviceIDWidth
	)
	if section == SectionClasses {
		width = ClassIDWidth
	}

	switch l.Shape {
	case ShapeClass:
		ev.Kind, width = EventClass, ClassIDWidth
	case ShapeTop:
		if section == SectionClasses {
			return Event{}, types.ErrUnexpectedRecord
		}
		ev.Kind = EventVendor
	case ShapeNested:
		ev.Kind = EventDevice
		if section == SectionClasses {
			ev.Kind = EventSubClass
		}
	case ShapeSubsystem:
		if section == SectionClasses {
			return Event{}, types.ErrUnexpectedRecord
		}
		ev.Kind = EventSubdevice
	case ShapeLeaf:
		if section == SectionDevices {
			return Event{}, types.ErrUnexpectedRecord
		}
		ev.Kind = EventProgIf
	default:
		return Event{}, types.ErrUnexpectedRecord
	}

	id, err := parseHexID(l.ID.Of(line), width)
	if err != nil {
		return Event{}, err
	}
	ev.ID = id

	if ev.Kind == EventSubdevice {
		sub, err := parseHexID(l.SubID.Of(line), DeviceIDWidth)
		if err != nil {
			return Event{}, err
		}
		ev.SubID = sub
	}

	name, err := decodeName(l.Name.Of(line))
	if err != nil {
		return Event{}, err
	}
	ev.Name = name
	return ev, nil
}
