package pciids

import "github.com/joshuapare/pciids/pkg/types"

// Model types (re-exported for convenience).
type (
	Vendor      = types.Vendor
	Device      = types.Device
	SubDeviceID = types.SubDeviceID
	Class       = types.Class
	SubClass    = types.SubClass
	DeviceInfo  = types.DeviceInfo
	ClassInfo   = types.ClassInfo
	Stats       = types.Stats
)

// Database is a fully parsed pci.ids file. It is not modified after Parse
// returns it, so concurrent queries need no locking.
type Database struct {
	Vendors map[uint16]Vendor `json:"vendors" yaml:"vendors"`
	Classes map[uint8]Class   `json:"classes" yaml:"classes"`
}

// Stats counts the records at each level.
func (db *Database) Stats() Stats {
	s := Stats{Vendors: len(db.Vendors), Classes: len(db.Classes)}
	for _, v := range db.Vendors {
		s.Devices += len(v.Devices)
		for _, d := range v.Devices {
			s.Subdevices += len(d.Subdevices)
		}
	}
	for _, c := range db.Classes {
		s.SubClasses += len(c.Subclasses)
		for _, sc := range c.Subclasses {
			s.ProgIfs += len(sc.ProgIfs)
		}
	}
	return s
}
