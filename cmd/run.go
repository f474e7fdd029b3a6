// File: cmd/run.go
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/voxarm/voxarm-cli/internal/observability"
	"github.com/voxarm/voxarm-cli/internal/report"
)

// newRunCmd creates the `run` command: the interactive command loop.
func newRunCmd() *cobra.Command {
	var (
		transcript []string
		assumeYes  bool
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Starts the voice-controlled command loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Without an API key the NLU fallback is dead weight; make sure
			// the operator knows they are running keyword-only.
			if cfg.Speech.UseNLU && cfg.Speech.APIKey == "" && !assumeYes {
				if !confirmKeywordOnly(cmd.InOrStdin(), cmd.OutOrStdout()) {
					return fmt.Errorf("aborted: no NLU API key configured")
				}
			}

			coord, err := buildPipeline(ctx, cfg, transcript, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
			if err != nil {
				return err
			}

			report.NewConsole(cmd.OutOrStdout()).Banner(Version)

			runCtx, cancel := context.WithCancel(ctx)
			defer cancel()

			g, gctx := errgroup.WithContext(runCtx)
			g.Go(func() error {
				// A stop command ends the loop without a signal; release
				// the watcher either way.
				defer cancel()
				return coord.Run(gctx)
			})
			g.Go(func() error {
				<-gctx.Done()
				logger.Info("Command loop shutting down", zap.Error(gctx.Err()))
				return nil
			})
			return g.Wait()
		},
	}

	runCmd.Flags().StringSliceVarP(&transcript, "text", "t", nil,
		"typed commands to execute instead of listening (repeatable)")
	runCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false,
		"skip the keyword-only confirmation prompt")

	return runCmd
}

// confirmKeywordOnly asks the operator to accept keyword-only interpretation.
func confirmKeywordOnly(in io.Reader, out io.Writer) bool {
	fmt.Fprintln(out, "No NLU API key configured. Commands will be interpreted by keyword matching only.")
	fmt.Fprint(out, "Continue? [y/N] ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
