package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/halcyard/finfetch/fiscal"
)

// PeriodCmd shows the fiscal conversion for a calendar month.
var PeriodCmd = &cobra.Command{
	Use:   "period [YYYY-MM]",
	Short: "Show the fiscal year/period for a calendar month",
	Long: `Show the backend's fiscal year and period for a calendar month.

The fiscal year begins in calendar October: Oct-Dec map to periods 1-3
of the following fiscal year, Jan-Sep to periods 4-12 of the current
one. Without an argument, the previous calendar month is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var month fiscal.Month
		if len(args) == 1 {
			var err error
			if month, err = fiscal.Parse(args[0]); err != nil {
				return err
			}
		} else {
			month = fiscal.Previous(time.Now())
		}

		p := fiscal.Convert(month)
		fmt.Printf("%s -> fiscal year %d, period %d\n", month, p.FiscalYear, p.Period)
		return nil
	},
}
