// File: cmd/report.go
package cmd

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/voxarm/voxarm-cli/internal/observability"
	"github.com/voxarm/voxarm-cli/internal/report"
)

// newReportCmd creates the `report` command: renders the performance report
// from the persisted action ledger.
func newReportCmd() *cobra.Command {
	var asJSON bool

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Shows grasp performance statistics from the action ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			led, err := newLedger(cfg, logger)
			if err != nil {
				return err
			}
			rep := led.PerformanceReport()

			if asJSON {
				out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(rep, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode report: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			report.NewConsole(cmd.OutOrStdout()).Performance(rep)
			return nil
		},
	}

	reportCmd.Flags().BoolVar(&asJSON, "json", false, "emit the report as JSON")
	return reportCmd
}
