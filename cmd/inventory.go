package cmd

import (
	"fmt"

	"github.com/ichijohodaka/tune555/internal/report"
	"github.com/spf13/cobra"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "List the distinct capacitor values the table uses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		r := enumerate(cfg, nil)
		out := cmd.OutOrStdout()
		report.PrintInventory(out, r.Inventory)
		fmt.Fprintf(out, "Capacitor values #%d\n", len(r.Inventory))
		return nil
	},
}
