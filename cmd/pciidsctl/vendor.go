package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pciids/pkg/pciids"
)

var vendorDevices bool

func init() {
	cmd := newVendorCmd()
	cmd.Flags().BoolVar(&vendorDevices, "devices", false, "List the vendor's devices")
	rootCmd.AddCommand(cmd)
}

func newVendorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendor <vendor>",
		Short: "Show a vendor name",
		Long: `The vendor command prints the name of a vendor id, and with --devices
the devices listed under it.

Example:
  pciidsctl vendor 1002
  pciidsctl vendor 0x8086 --devices
  pciidsctl vendor 10de --stream`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVendor(cmd, args)
		},
	}
	return cmd
}

type vendorOutput struct {
	ID      string            `json:"id" yaml:"id"`
	Name    string            `json:"name" yaml:"name"`
	Devices map[string]string `json:"devices,omitempty" yaml:"devices,omitempty"`
}

func runVendor(cmd *cobra.Command, args []string) error {
	id, err := pciids.ParseID16(args[0])
	if err != nil {
		return err
	}
	out := vendorOutput{ID: fmt.Sprintf("%04x", id)}

	if streaming() && !vendorDevices {
		opts, err := parseOptions()
		if err != nil {
			return err
		}
		rc, err := openStream()
		if err != nil {
			return err
		}
		defer rc.Close()

		name, found, err := pciids.FindVendorName(rc, id, opts)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("vendor %04x not found", id)
		}
		out.Name = name
	} else {
		db, err := loadDatabase(commandContext(cmd))
		if err != nil {
			return err
		}
		v, ok := db.Vendors[id]
		if !ok {
			return fmt.Errorf("vendor %04x not found", id)
		}
		out.Name = v.Name
		if vendorDevices {
			out.Devices = make(map[string]string, len(v.Devices))
			for did, d := range v.Devices {
				out.Devices[fmt.Sprintf("%04x", did)] = d.Name
			}
		}
	}

	if structured() {
		return printStructured(out)
	}

	printInfo("%s  %s\n", out.ID, out.Name)
	keys := make([]string, 0, len(out.Devices))
	for k := range out.Devices {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		printInfo("\t%s  %s\n", k, out.Devices[k])
	}
	return nil
}
