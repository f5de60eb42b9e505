package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show record counts",
		Long: `The stats command loads the database and counts the records at each level.

Example:
  pciidsctl stats
  pciidsctl stats --file ./pci.ids --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd)
		},
	}
	return cmd
}

func runStats(cmd *cobra.Command) error {
	db, err := loadDatabase(commandContext(cmd))
	if err != nil {
		return err
	}
	stats := db.Stats()

	if structured() {
		return printStructured(stats)
	}

	printInfo("Vendors:     %d\n", stats.Vendors)
	printInfo("Devices:     %d\n", stats.Devices)
	printInfo("Subsystems:  %d\n", stats.Subdevices)
	printInfo("Classes:     %d\n", stats.Classes)
	printInfo("Subclasses:  %d\n", stats.SubClasses)
	printInfo("Prog-ifs:    %d\n", stats.ProgIfs)
	return nil
}
