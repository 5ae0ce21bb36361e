package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/halcyard/finfetch/cmd/finfetch/commands"
	"github.com/halcyard/finfetch/logger"
)

var rootCmd = &cobra.Command{
	Use:   "finfetch",
	Short: "finfetch - automated financial report retrieval",
	Long: `finfetch - automated retrieval of financial reports from the
vendor reporting backend.

finfetch drives the external report client once per configured vendor,
converts calendar months into the backend's fiscal period numbering,
classifies the client's output, and moves finished reports into the
destination directory. A scheduler (cron, systemd timer) is expected to
re-invoke it; a nonzero exit means at least one vendor needs attention
or a later re-run.

Available commands:
  fetch    - Fetch reports for all configured vendors
  period   - Show the fiscal year/period for a calendar month
  vendors  - List the configured vendors in processing order
  version  - Show version information

Examples:
  finfetch fetch                   # Fetch last calendar month's reports
  finfetch fetch --month 2024-11   # Fetch an explicit month
  finfetch period 2024-11          # 2024-11 -> fiscal 2025 period 2
  finfetch vendors                 # Show the vendor list`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonLogs, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonLogs); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if verbose, _ := cmd.Flags().GetCount("verbose"); verbose > 0 {
			logger.SetVerbose()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("json", false, "JSON log output for machine consumption")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity")

	rootCmd.AddCommand(commands.FetchCmd)
	rootCmd.AddCommand(commands.PeriodCmd)
	rootCmd.AddCommand(commands.VendorsCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
