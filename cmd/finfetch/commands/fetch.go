package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/halcyard/finfetch/client"
	"github.com/halcyard/finfetch/config"
	"github.com/halcyard/finfetch/errors"
	"github.com/halcyard/finfetch/fiscal"
	"github.com/halcyard/finfetch/logger"
	"github.com/halcyard/finfetch/notify"
	"github.com/halcyard/finfetch/report"
)

// FetchCmd fetches the target month's reports for every configured vendor.
var FetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch financial reports for all configured vendors",
	Long: `Fetch financial reports for all configured vendors.

Without --month, the target is the previous calendar month (scheduled
mode). With --month YYYY-MM, the given month is fetched (manual mode).
Either way the month is converted to the backend's fiscal numbering:
the fiscal year begins in calendar October.

Exit status is 0 only when every vendor either produced a report or had
none for the period; a pending report, an authentication failure or any
other error exits 1. Details are in the log and, for authentication
failures, in the operator notification.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		month, err := targetMonth(cmd)
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		gateway := client.NewExecGateway(
			cfg.Client.Binary,
			cfg.Client.Properties,
			cfg.Client.Verb,
			cfg.Client.Workdir,
			cfg.Client.Timeout(),
			logger.Logger,
		)

		var notifier report.Notifier
		if cfg.Notify.Enabled {
			notifier = notify.NewMailNotifier(
				cfg.Notify.SMTPHost,
				cfg.Notify.SMTPPort,
				cfg.Notify.SMTPUser,
				cfg.Notify.SMTPPassword,
				cfg.Notify.From,
				cfg.Notify.To,
			)
		} else {
			notifier = notify.NewLogNotifier(logger.Logger)
		}

		orch := report.NewOrchestrator(
			gateway,
			notifier,
			cfg.Client.Workdir,
			cfg.Reports.Destination,
			cfg.Reports.Delay(),
			logger.Logger,
		)

		vendors := make([]report.Vendor, 0, len(cfg.Reports.VendorList()))
		for _, v := range cfg.Reports.VendorList() {
			vendors = append(vendors, report.Vendor(v))
		}

		result, err := orch.Run(ctx, month, vendors)
		if err != nil {
			return err
		}

		renderSummary(result)

		if result.ExitCode() != 0 {
			return errors.Newf("completed with failures: %d of %d vendors need attention",
				result.Failed(), len(result.Outcomes))
		}
		return nil
	},
}

func init() {
	FetchCmd.Flags().StringP("month", "m", "", "Target month (YYYY-MM); defaults to the previous calendar month")
}

// targetMonth resolves the scheduled/manual mode split. Both paths feed
// the same fiscal conversion.
func targetMonth(cmd *cobra.Command) (fiscal.Month, error) {
	monthFlag, _ := cmd.Flags().GetString("month")
	if monthFlag == "" {
		return fiscal.Previous(time.Now()), nil
	}
	return fiscal.Parse(monthFlag)
}

func renderSummary(result *report.RunResult) {
	rows := pterm.TableData{{"Vendor", "Outcome", "Detail"}}
	for _, vo := range result.Outcomes {
		detail := ""
		switch vo.Outcome.Kind {
		case report.KindSuccess:
			detail = vo.Outcome.ArtifactPath
		case report.KindPending:
			detail = "re-run later"
		case report.KindAuthFailure:
			detail = "operator notified"
		case report.KindUnknownFailure:
			detail = vo.Outcome.Raw
		}
		rows = append(rows, []string{string(vo.Vendor), vo.Outcome.Kind.String(), detail})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
