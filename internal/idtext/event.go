package idtext

// Section is the part of the file the scanner is in. The class marker moves
// the scanner from SectionDevices to SectionClasses; nothing moves it back.
type Section uint8

const (
	SectionDevices Section = iota
	SectionClasses
)

func (s Section) String() string {
	if s == SectionClasses {
		return "classes"
	}
	return "devices"
}

// EventKind identifies the record a line holds.
type EventKind uint8

const (
	EventVendor EventKind = iota + 1
	EventDevice
	EventSubdevice
	EventClass
	EventSubClass
	EventProgIf
)

func (k EventKind) String() string {
	switch k {
	case EventVendor:
		return "vendor"
	case EventDevice:
		return "device"
	case EventSubdevice:
		return "subdevice"
	case EventClass:
		return "class"
	case EventSubClass:
		return "subclass"
	case EventProgIf:
		return "prog-if"
	default:
		return "unknown"
	}
}

// Event is one classified, validated record.
//
// ID holds the vendor, device, class, subclass or prog-if id. For
// EventSubdevice, ID is the subvendor and SubID the subdevice.
type Event struct {
	Kind  EventKind
	ID    uint16
	SubID uint16
	Name  string
}
