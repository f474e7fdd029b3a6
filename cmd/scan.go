// File: cmd/scan.go
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/voxarm/voxarm-cli/internal/observability"
	"github.com/voxarm/voxarm-cli/internal/report"
)

// newScanCmd creates the `scan` command: a one-shot scene scan without the
// command loop. Useful for checking camera and detector connectivity.
func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Captures one frame and lists the detected objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			svc := newPerceptionService(cfg, logger)
			if err := svc.StartCamera(ctx); err != nil {
				return err
			}
			defer svc.StopCamera()

			console := report.NewConsole(cmd.OutOrStdout())
			console.Scan(svc.ScanScene(ctx))
			return nil
		},
	}
}
