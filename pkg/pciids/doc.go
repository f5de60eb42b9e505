/*
Package pciids parses the pci.ids hardware identification database and
resolves numeric PCI ids to vendor, device, subsystem and class names.

# Quick Start

Load the database from the usual system locations and look up a device:

	db, err := pciids.Read(nil, nil)
	if err != nil {
	    log.Fatal(err)
	}
	info := db.DeviceInfo(0x1002, 0x67df, 0x1da2, 0xe387)
	if info.DeviceName != nil {
	    fmt.Println(*info.DeviceName)
	}

# Materialized vs. Streaming

Parse and its variants fold the whole file into a Database: two nested maps,
one for the vendor/device/subsystem hierarchy and one for the
class/subclass/prog-if taxonomy. A Database never changes after it is
returned and may be queried from any number of goroutines.

For a single lookup the Find functions scan the input directly and stop as
soon as the answer is known or can no longer appear:

	f, _ := os.Open("/usr/share/hwdata/pci.ids")
	defer f.Close()
	name, found, err := pciids.FindDeviceName(f, 0x10de, 0x1b80, nil)

# Sources

  - Parse, ParseBytes, ParseString: any reader or buffer
  - ReadFile: one file, memory-mapped where the platform allows
  - Read: the first existing file from a candidate list (DefaultPaths)
  - Fetch: an HTTP URL (DefaultURL), using the caller's client

# Error Handling

Every error is, or wraps, a *types.Error. Use errors.Is against the
sentinels in pkg/types, or types.KindOf to branch on the category:

	db, err := pciids.ReadFile(path, nil)
	if errors.Is(err, types.ErrFileNotFound) {
	    // fall back to Fetch
	}

Parse errors carry the 1-based line number and the raw line. Any error aborts
the call; no partial Database is returned.
*/
package pciids
