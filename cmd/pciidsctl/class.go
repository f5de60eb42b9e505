package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/pciids/pkg/pciids"
)

func init() {
	rootCmd.AddCommand(newClassCmd())
}

func newClassCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "class <class> [<subclass> [<prog-if>]]",
		Short: "Resolve a device class code to names",
		Long: `The class command resolves a class, subclass and programming interface
id to names. Ids are hex.

Example:
  pciidsctl class 03
  pciidsctl class 02 07
  pciidsctl class 03 00 00 --yaml`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClass(cmd, args)
		},
	}
	return cmd
}

func runClass(cmd *cobra.Command, args []string) error {
	var ids [3]uint8
	for i, arg := range args {
		id, err := pciids.ParseID8(arg)
		if err != nil {
			return err
		}
		ids[i] = id
	}

	db, err := loadDatabase(commandContext(cmd))
	if err != nil {
		return err
	}
	info := db.ClassInfo(ids[0], ids[1], ids[2])
	// Levels the caller did not ask about are not reported.
	if len(args) < 3 {
		info.ProgIfName = nil
	}
	if len(args) < 2 {
		info.SubClassName = nil
	}

	if structured() {
		return printStructured(info)
	}

	printInfo("Class:     %s\n", nameOr(info.ClassName))
	if len(args) >= 2 {
		printInfo("Subclass:  %s\n", nameOr(info.SubClassName))
	}
	if len(args) == 3 {
		printInfo("Prog-if:   %s\n", nameOr(info.ProgIfName))
	}
	return nil
}
