package types

import (
	"fmt"
	"strconv"
	"strings"
)

// -----------------------------------------------------------------------------
// Device hierarchy: vendor -> device -> subsystem
// -----------------------------------------------------------------------------

// Vendor is a chip vendor and the devices listed under it.
type Vendor struct {
	Name    string            `json:"name" yaml:"name"`
	Devices map[uint16]Device `json:"devices,omitempty" yaml:"devices,omitempty"`
}

// Device is a single device and the subsystems built on it.
type Device struct {
	Name       string                 `json:"name" yaml:"name"`
	Subdevices map[SubDeviceID]string `json:"subdevices,omitempty" yaml:"subdevices,omitempty"`
}

// SubDeviceID identifies a subsystem by its own vendor and device ids.
// Subvendor need not match the vendor the device is listed under.
type SubDeviceID struct {
	Subvendor uint16
	Subdevice uint16
}

// String formats the id the way pci.ids writes it: "1da2 e387".
func (id SubDeviceID) String() string {
	return fmt.Sprintf("%04x %04x", id.Subvendor, id.Subdevice)
}

// MarshalText lets SubDeviceID serve as a JSON/YAML map key.
func (id SubDeviceID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses the "subvendor subdevice" form produced by MarshalText.
func (id *SubDeviceID) UnmarshalText(text []byte) error {
	sv, sd, ok := strings.Cut(string(text), " ")
	if !ok {
		return ErrInvalidID.WithToken(text)
	}
	v, err := strconv.ParseUint(sv, 16, 16)
	if err != nil {
		return ErrInvalidID.WithToken(text).Wrap(err)
	}
	d, err := strconv.ParseUint(sd, 16, 16)
	if err != nil {
		return ErrInvalidID.WithToken(text).Wrap(err)
	}
	id.Subvendor, id.Subdevice = uint16(v), uint16(d)
	return nil
}

// -----------------------------------------------------------------------------
// Class taxonomy: class -> subclass -> programming interface
// -----------------------------------------------------------------------------

// Class is a device class and its subclasses.
type Class struct {
	Name       string             `json:"name" yaml:"name"`
	Subclasses map[uint8]SubClass `json:"subclasses,omitempty" yaml:"subclasses,omitempty"`
}

// SubClass is a device subclass and its programming interfaces.
type SubClass struct {
	Name    string           `json:"name" yaml:"name"`
	ProgIfs map[uint8]string `json:"prog_ifs,omitempty" yaml:"prog_ifs,omitempty"`
}

// -----------------------------------------------------------------------------
// Lookup results
// -----------------------------------------------------------------------------

// DeviceInfo is the result of resolving a (vendor, device, subvendor,
// subdevice) tuple. A nil field means that level was not found.
type DeviceInfo struct {
	VendorName    *string `json:"vendor_name" yaml:"vendor_name"`
	DeviceName    *string `json:"device_name" yaml:"device_name"`
	SubvendorName *string `json:"subvendor_name" yaml:"subvendor_name"`
	SubdeviceName *string `json:"subdevice_name" yaml:"subdevice_name"`
}

// ClassInfo is the result of resolving a (class, subclass, prog-if) tuple.
type ClassInfo struct {
	ClassName    *string `json:"class_name" yaml:"class_name"`
	SubClassName *string `json:"subclass_name" yaml:"subclass_name"`
	ProgIfName   *string `json:"prog_if_name" yaml:"prog_if_name"`
}

// Stats counts the records held at each level of a database.
type Stats struct {
	Vendors    int `json:"vendors" yaml:"vendors"`
	Devices    int `json:"devices" yaml:"devices"`
	Subdevices int `json:"subdevices" yaml:"subdevices"`
	Classes    int `json:"classes" yaml:"classes"`
	SubClasses int `json:"subclasses" yaml:"subclasses"`
	ProgIfs    int `json:"prog_ifs" yaml:"prog_ifs"`
}
