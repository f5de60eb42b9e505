package main

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pciids/pkg/pciids"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump the whole database",
		Long: `The dump command loads the database and writes all of it, sorted by id.
Text output is in pci.ids format; --json and --yaml write nested objects keyed
by hex id.

Example:
  pciidsctl dump > sorted.ids
  pciidsctl dump --online --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd)
		},
	}
	return cmd
}

type dumpDevice struct {
	Name       string            `json:"name" yaml:"name"`
	Subsystems map[string]string `json:"subsystems,omitempty" yaml:"subsystems,omitempty"`
}

type dumpVendor struct {
	Name    string                `json:"name" yaml:"name"`
	Devices map[string]dumpDevice `json:"devices,omitempty" yaml:"devices,omitempty"`
}

type dumpSubClass struct {
	Name    string            `json:"name" yaml:"name"`
	ProgIfs map[string]string `json:"prog_ifs,omitempty" yaml:"prog_ifs,omitempty"`
}

type dumpClass struct {
	Name       string                  `json:"name" yaml:"name"`
	Subclasses map[string]dumpSubClass `json:"subclasses,omitempty" yaml:"subclasses,omitempty"`
}

type dumpOutput struct {
	Vendors map[string]dumpVendor `json:"vendors" yaml:"vendors"`
	Classes map[string]dumpClass  `json:"classes" yaml:"classes"`
}

func runDump(cmd *cobra.Command) error {
	db, err := loadDatabase(commandContext(cmd))
	if err != nil {
		return err
	}

	if structured() {
		return printStructured(newDumpOutput(db))
	}
	return writeIDs(os.Stdout, db)
}

func newDumpOutput(db *pciids.Database) dumpOutput {
	out := dumpOutput{
		Vendors: make(map[string]dumpVendor, len(db.Vendors)),
		Classes: make(map[string]dumpClass, len(db.Classes)),
	}
	for vid, v := range db.Vendors {
		dv := dumpVendor{Name: v.Name, Devices: make(map[string]dumpDevice, len(v.Devices))}
		for did, d := range v.Devices {
			dd := dumpDevice{Name: d.Name, Subsystems: make(map[string]string, len(d.Subdevices))}
			for sid, name := range d.Subdevices {
				dd.Subsystems[sid.String()] = name
			}
			dv.Devices[fmt.Sprintf("%04x", did)] = dd
		}
		out.Vendors[fmt.Sprintf("%04x", vid)] = dv
	}
	for cid, c := range db.Classes {
		dc := dumpClass{Name: c.Name, Subclasses: make(map[string]dumpSubClass, len(c.Subclasses))}
		for sid, sc := range c.Subclasses {
			ds := dumpSubClass{Name: sc.Name, ProgIfs: make(map[string]string, len(sc.ProgIfs))}
			for pid, name := range sc.ProgIfs {
				ds.ProgIfs[fmt.Sprintf("%02x", pid)] = name
			}
			dc.Subclasses[fmt.Sprintf("%02x", sid)] = ds
		}
		out.Classes[fmt.Sprintf("%02x", cid)] = dc
	}
	return out
}

// writeIDs writes db back out in pci.ids format with every level sorted by
// id. Parsing the output yields an equal database.
func writeIDs(w io.Writer, db *pciids.Database) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "#\n#\tList of PCI ID's\n#\n\n")
	for _, vid := range slices.Sorted(maps.Keys(db.Vendors)) {
		v := db.Vendors[vid]
		fmt.Fprintf(bw, "%04x  %s\n", vid, v.Name)
		for _, did := range slices.Sorted(maps.Keys(v.Devices)) {
			d := v.Devices[did]
			fmt.Fprintf(bw, "\t%04x  %s\n", did, d.Name)
			subs := slices.SortedFunc(maps.Keys(d.Subdevices), func(a, b pciids.SubDeviceID) int {
				return cmp.Or(cmp.Compare(a.Subvendor, b.Subvendor), cmp.Compare(a.Subdevice, b.Subdevice))
			})
			for _, sid := range subs {
				fmt.Fprintf(bw, "\t\t%04x %04x  %s\n", sid.Subvendor, sid.Subdevice, d.Subdevices[sid])
			}
		}
	}

	fmt.Fprintf(bw, "\n# List of known device classes, subclasses and programming interfaces\n\n")
	for _, cid := range slices.Sorted(maps.Keys(db.Classes)) {
		c := db.Classes[cid]
		fmt.Fprintf(bw, "C %02x  %s\n", cid, c.Name)
		for _, sid := range slices.Sorted(maps.Keys(c.Subclasses)) {
			sc := c.Subclasses[sid]
			fmt.Fprintf(bw, "\t%02x  %s\n", sid, sc.Name)
			for _, pid := range slices.Sorted(maps.Keys(sc.ProgIfs)) {
				fmt.Fprintf(bw, "\t\t%02x  %s\n", pid, sc.ProgIfs[pid])
			}
		}
	}

	return bw.Flush()
}
