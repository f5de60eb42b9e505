package pciids

import (
	"fmt"
	"io"

	"github.com/joshuapare/pciids/internal/idtext"
)

// visitFunc inspects one event. It returns the answer once known, or done
// with found false when the answer can no longer appear.
type visitFunc func(ev idtext.Event) (name string, found, done bool)

// search drives visit over r until it is done or the input ends. Running out
// of input is a miss, not an error.
func search(r io.Reader, opts *Options, visit visitFunc) (string, bool, error) {
	opts = opts.orDefault()

	sc, err := opts.newScanner(r)
	if err != nil {
		return "", false, fmt.Errorf("failed to open pci.ids stream: %w", err)
	}
	for sc.Scan() {
		ev := sc.Event()
		if ev.Kind == idtext.EventClass {
			// Device records end at the class section.
			break
		}
		if name, found, done := visit(ev); done {
			opts.logger().Debug("search finished", "line", sc.Line(), "found", found)
			return name, found, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", false, fmt.Errorf("failed to search pci.ids: %w", err)
	}
	return "", false, nil
}

// FindVendorName scans r for vendor and returns its name, stopping at the
// first match.
func FindVendorName(r io.Reader, vendor uint16, opts *Options) (string, bool, error) {
	return search(r, opts, func(ev idtext.Event) (string, bool, bool) {
		if ev.Kind == idtext.EventVendor && ev.ID == vendor {
			return ev.Name, true, true
		}
		return "", false, false
	})
}

// FindDeviceName scans r for device under vendor. The scan stops at the
// match or at the next vendor after the matching one.
func FindDeviceName(r io.Reader, vendor, device uint16, opts *Options) (string, bool, error) {
	inVendor := false
	return search(r, opts, func(ev idtext.Event) (string, bool, bool) {
		switch ev.Kind {
		case idtext.EventVendor:
			if inVendor {
				return "", false, true
			}
			inVendor = ev.ID == vendor
		case idtext.EventDevice:
			if inVendor && ev.ID == device {
				return ev.Name, true, true
			}
		}
		return "", false, false
	})
}

// FindSubdeviceName scans r for the (subvendor, subdevice) subsystem of
// device under vendor. The scan stops at the match, or at the first sibling
// or ancestor record once inside the matching vendor or device.
func FindSubdeviceName(r io.Reader, vendor, device, subvendor, subdevice uint16, opts *Options) (string, bool, error) {
	const (
		outside = iota
		inVendor
		inDevice
	)
	depth := outside
	return search(r, opts, func(ev idtext.Event) (string, bool, bool) {
		switch ev.Kind {
		case idtext.EventVendor:
			if depth != outside {
				return "", false, true
			}
			if ev.ID == vendor {
				depth = inVendor
			}
		case idtext.EventDevice:
			if depth == inDevice {
				return "", false, true
			}
			if depth == inVendor && ev.ID == device {
				depth = inDevice
			}
		case idtext.EventSubdevice:
			if depth == inDevice && ev.ID == subvendor && ev.SubID == subdevice {
				return ev.Name, true, true
			}
		}
		return "", false, false
	})
}
