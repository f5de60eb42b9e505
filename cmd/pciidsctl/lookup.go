package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pciids/pkg/pciids"
)

func init() {
	rootCmd.AddCommand(newLookupCmd())
}

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <vendor> <device> [<subvendor> <subdevice>]",
		Short: "Resolve a device id tuple to names",
		Long: `The lookup command resolves a vendor/device pair, optionally with a
subsystem vendor/device pair, to names. Ids are hex, with or without 0x.

Example:
  pciidsctl lookup 1002 67df
  pciidsctl lookup 1002 67df 1da2 e387
  pciidsctl lookup 0x10de 0x1b80 --json
  pciidsctl lookup 8086 1533 --stream`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 && len(args) != 4 {
				return fmt.Errorf("expected 2 or 4 arguments, got %d\nUsage: %s", len(args), cmd.Use)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args)
		},
	}
	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	var ids [4]uint16
	for i, arg := range args {
		id, err := pciids.ParseID16(arg)
		if err != nil {
			return err
		}
		ids[i] = id
	}
	withSubsystem := len(args) == 4

	var (
		info pciids.DeviceInfo
		err  error
	)
	if streaming() {
		info, err = streamDeviceInfo(ids, withSubsystem)
	} else {
		var db *pciids.Database
		db, err = loadDatabase(commandContext(cmd))
		if err == nil {
			info = db.DeviceInfo(ids[0], ids[1], ids[2], ids[3])
		}
	}
	if err != nil {
		return err
	}
	if !withSubsystem {
		info.SubvendorName, info.SubdeviceName = nil, nil
	}

	if structured() {
		return printStructured(info)
	}

	printInfo("Vendor:    %s\n", nameOr(info.VendorName))
	printInfo("Device:    %s\n", nameOr(info.DeviceName))
	if withSubsystem {
		printInfo("Subvendor: %s\n", nameOr(info.SubvendorName))
		printInfo("Subdevice: %s\n", nameOr(info.SubdeviceName))
	}
	return nil
}

// streamDeviceInfo answers a lookup with one scan per level, following the
// same top-down rules as Database.DeviceInfo.
func streamDeviceInfo(ids [4]uint16, withSubsystem bool) (pciids.DeviceInfo, error) {
	var info pciids.DeviceInfo
	opts, err := parseOptions()
	if err != nil {
		return info, err
	}

	find := func(search func(r io.Reader) (string, bool, error)) (*string, error) {
		rc, err := openStream()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		name, found, err := search(rc)
		if err != nil || !found {
			return nil, err
		}
		return &name, nil
	}

	if info.VendorName, err = find(func(r io.Reader) (string, bool, error) {
		return pciids.FindVendorName(r, ids[0], opts)
	}); err != nil || info.VendorName == nil {
		return info, err
	}
	if info.DeviceName, err = find(func(r io.Reader) (string, bool, error) {
		return pciids.FindDeviceName(r, ids[0], ids[1], opts)
	}); err != nil || info.DeviceName == nil || !withSubsystem {
		return info, err
	}
	if info.SubvendorName, err = find(func(r io.Reader) (string, bool, error) {
		return pciids.FindVendorName(r, ids[2], opts)
	}); err != nil {
		return info, err
	}
	info.SubdeviceName, err = find(func(r io.Reader) (string, bool, error) {
		return pciids.FindSubdeviceName(r, ids[0], ids[1], ids[2], ids[3], opts)
	})
	return info, err
}

func nameOr(name *string) string {
	if name == nil {
		return "<unknown>"
	}
	return *name
}
