package pciids

import (
	"strconv"
	"strings"

	"github.com/joshuapare/pciids/pkg/types"
)

// DeviceInfo resolves a (vendor, device, subvendor, subdevice) tuple.
//
// Lookup is top-down: an unknown vendor leaves every field nil, and an
// unknown device leaves only VendorName set. Once the device is found the
// subvendor is looked up among all vendors, since subsystem vendors are
// often not the chip vendor, and the subdevice among the device's
// subsystems.
func (db *Database) DeviceInfo(vendor, device, subvendor, subdevice uint16) DeviceInfo {
	var info DeviceInfo

	v, ok := db.Vendors[vendor]
	if !ok {
		return info
	}
	info.VendorName = ptr(v.Name)

	d, ok := v.Devices[device]
	if !ok {
		return info
	}
	info.DeviceName = ptr(d.Name)

	if sv, ok := db.Vendors[subvendor]; ok {
		info.SubvendorName = ptr(sv.Name)
	}
	if name, ok := d.Subdevices[SubDeviceID{Subvendor: subvendor, Subdevice: subdevice}]; ok {
		info.SubdeviceName = ptr(name)
	}
	return info
}

// DeviceInfoHex is DeviceInfo over hex strings such as "67df" or "0x67DF".
func (db *Database) DeviceInfoHex(vendor, device, subvendor, subdevice string) (DeviceInfo, error) {
	ids := [4]uint16{}
	for i, s := range []string{vendor, device, subvendor, subdevice} {
		id, err := ParseID16(s)
		if err != nil {
			return DeviceInfo{}, err
		}
		ids[i] = id
	}
	return db.DeviceInfo(ids[0], ids[1], ids[2], ids[3]), nil
}

// VendorName returns the name of vendor.
func (db *Database) VendorName(vendor uint16) (string, bool) {
	v, ok := db.Vendors[vendor]
	return v.Name, ok
}

// DeviceName returns the name of device under vendor.
func (db *Database) DeviceName(vendor, device uint16) (string, bool) {
	d, ok := db.Vendors[vendor].Devices[device]
	return d.Name, ok
}

// ClassInfo resolves a (class, subclass, prog-if) tuple with the same
// top-down rules as DeviceInfo.
func (db *Database) ClassInfo(class, subclass, progIf uint8) ClassInfo {
	var info ClassInfo

	c, ok := db.Classes[class]
	if !ok {
		return info
	}
	info.ClassName = ptr(c.Name)

	sc, ok := c.Subclasses[subclass]
	if !ok {
		return info
	}
	info.SubClassName = ptr(sc.Name)

	if name, ok := sc.ProgIfs[progIf]; ok {
		info.ProgIfName = ptr(name)
	}
	return info
}

// ParseID16 parses a vendor, device or subsystem id written in hex, with or
// without a 0x prefix.
func ParseID16(s string) (uint16, error) {
	v, err := parseHexArg(s, 16)
	return uint16(v), err
}

// ParseID8 parses a class, subclass or prog-if id written in hex.
func ParseID8(s string) (uint8, error) {
	v, err := parseHexArg(s, 8)
	return uint8(v), err
}

func parseHexArg(s string, bits int) (uint64, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(digits, 16, bits)
	if err != nil {
		return 0, types.ErrInvalidID.WithToken([]byte(s)).Wrap(err)
	}
	return v, nil
}

func ptr(s string) *string { return &s }
