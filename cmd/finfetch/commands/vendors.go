package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyard/finfetch/config"
	"github.com/halcyard/finfetch/errors"
)

// VendorsCmd lists the configured vendors in processing order.
var VendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "List the configured vendors in processing order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}

		vendors := cfg.Reports.VendorList()
		if len(vendors) == 0 {
			return errors.WithHint(
				errors.New("no vendors configured"),
				"set reports.vendors in finfetch.toml or FINFETCH_REPORTS_VENDORS",
			)
		}

		for i, v := range vendors {
			fmt.Printf("%2d. %s\n", i+1, v)
		}
		return nil
	},
}
