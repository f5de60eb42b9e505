package pciids

import (
	"github.com/joshuapare/pciids/internal/idtext"
	"github.com/joshuapare/pciids/pkg/types"
)

const (
	// Upstream carries a little over 2000 vendors and a few dozen classes.
	initialVendorCapacity = 2500
	initialClassCapacity  = 200
)

// open is a record still receiving children. It is moved into its parent's
// map exactly once, by commitTo.
type open[K comparable, V any] struct {
	id    K
	val   V
	valid bool
}

func (o *open[K, V]) set(id K, val V) {
	o.id, o.val, o.valid = id, val, true
}

// commitTo moves the record into m and empties the slot. An empty slot is a
// no-op.
func (o *open[K, V]) commitTo(m map[K]V) {
	if !o.valid {
		return
	}
	m[o.id] = o.val
	var zero V
	o.val, o.valid = zero, false
}

// aggregator folds the event sequence into the two top-level maps. The
// device and class hierarchies are tracked independently.
type aggregator struct {
	vendors map[uint16]Vendor
	classes map[uint8]Class

	vendor   open[uint16, Vendor]
	device   open[uint16, Device]
	class    open[uint8, Class]
	subclass open[uint8, SubClass]
}

func newAggregator() *aggregator {
	return &aggregator{
		vendors: make(map[uint16]Vendor, initialVendorCapacity),
		classes: make(map[uint8]Class, initialClassCapacity),
	}
}

// apply folds one event. A child with no open parent is a structural error.
func (a *aggregator) apply(ev idtext.Event) error {
	switch ev.Kind {
	case idtext.EventVendor:
		if err := a.closeDevice(); err != nil {
			return err
		}
		a.vendor.commitTo(a.vendors)
		a.vendor.set(ev.ID, Vendor{Name: ev.Name, Devices: make(map[uint16]Device)})

	case idtext.EventDevice:
		if !a.vendor.valid {
			return types.ErrNoCurrentVendor
		}
		if err := a.closeDevice(); err != nil {
			return err
		}
		a.device.set(ev.ID, Device{Name: ev.Name, Subdevices: make(map[SubDeviceID]string)})

	case idtext.EventSubdevice:
		if !a.device.valid {
			return types.ErrNoCurrentDevice
		}
		a.device.val.Subdevices[SubDeviceID{Subvendor: ev.ID, Subdevice: ev.SubID}] = ev.Name

	case idtext.EventClass:
		if err := a.closeSubClass(); err != nil {
			return err
		}
		a.class.commitTo(a.classes)
		a.class.set(uint8(ev.ID), Class{Name: ev.Name, Subclasses: make(map[uint8]SubClass)})

	case idtext.EventSubClass:
		if !a.class.valid {
			return types.ErrNoCurrentClass
		}
		if err := a.closeSubClass(); err != nil {
			return err
		}
		a.subclass.set(uint8(ev.ID), SubClass{Name: ev.Name, ProgIfs: make(map[uint8]string)})

	case idtext.EventProgIf:
		if !a.subclass.valid {
			return types.ErrNoCurrentSubClass
		}
		a.subclass.val.ProgIfs[uint8(ev.ID)] = ev.Name
	}
	return nil
}

// closeDevice commits the open device, if any, into the open vendor.
func (a *aggregator) closeDevice() error {
	if !a.device.valid {
		return nil
	}
	if !a.vendor.valid {
		return types.ErrNoCurrentVendor
	}
	a.device.commitTo(a.vendor.val.Devices)
	return nil
}

// closeSubClass commits the open subclass, if any, into the open class.
func (a *aggregator) closeSubClass() error {
	if !a.subclass.valid {
		return nil
	}
	if !a.class.valid {
		return types.ErrNoCurrentClass
	}
	a.subclass.commitTo(a.class.val.Subclasses)
	return nil
}

// finish flushes every open slot bottom-up and hands over the maps.
func (a *aggregator) finish() (*Database, error) {
	if err := a.closeDevice(); err != nil {
		return nil, err
	}
	a.vendor.commitTo(a.vendors)
	if err := a.closeSubClass(); err != nil {
		return nil, err
	}
	a.class.commitTo(a.classes)

	db := &Database{Vendors: a.vendors, Classes: a.classes}
	a.vendors, a.classes = nil, nil
	return db, nil
}

// replaces reports whether applying ev would overwrite a record already
// seen under the same parent. A child with no open parent replaces nothing;
// apply rejects it.
func (a *aggregator) replaces(ev idtext.Event) bool {
	switch ev.Kind {
	case idtext.EventVendor:
		_, ok := a.vendors[ev.ID]
		return ok || (a.vendor.valid && a.vendor.id == ev.ID)
	case idtext.EventDevice:
		if !a.vendor.valid {
			return false
		}
		_, ok := a.vendor.val.Devices[ev.ID]
		return ok || (a.device.valid && a.device.id == ev.ID)
	case idtext.EventSubdevice:
		if !a.device.valid {
			return false
		}
		_, ok := a.device.val.Subdevices[SubDeviceID{Subvendor: ev.ID, Subdevice: ev.SubID}]
		return ok
	case idtext.EventClass:
		_, ok := a.classes[uint8(ev.ID)]
		return ok || (a.class.valid && a.class.id == uint8(ev.ID))
	case idtext.EventSubClass:
		if !a.class.valid {
			return false
		}
		_, ok := a.class.val.Subclasses[uint8(ev.ID)]
		return ok || (a.subclass.valid && a.subclass.id == uint8(ev.ID))
	case idtext.EventProgIf:
		if !a.subclass.valid {
			return false
		}
		_, ok := a.subclass.val.ProgIfs[uint8(ev.ID)]
		return ok
	}
	return false
}
