package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/datallboy/gofetch/internal/domain"
)

func newRunCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "run [target...]",
		Short: "Download the configured targets (or the ones given as arguments) once",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.OpenStore(); err != nil {
				// History is a nice-to-have; the batch can run without it
				appCtx.Logger.Warn("Report history disabled: %v", err)
			}

			targets, err := appCtx.ConfiguredTargets(args)
			if err != nil {
				return &exitError{code: exitFatal, err: err}
			}

			// We create a context that is cancelled when the user hits Ctrl+C
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := appCtx.RunBatch(ctx, targets)
			if report == nil {
				return &exitError{code: exitFatal, err: fmt.Errorf("batch failed: %w", err)}
			}

			if perr := printReport(cmd.OutOrStdout(), report, output); perr != nil {
				return &exitError{code: exitFatal, err: perr}
			}

			if code := exitCode(report, err); code != exitOK {
				return &exitError{code: code, err: err}
			}
			return nil
		},
	}

	cmd.Flags().String("base-host", "", "base URL each target name is appended to (env API_HOST_URL)")
	cmd.Flags().Int("concurrency", 3, "maximum concurrent connections")
	cmd.Flags().Duration("timeout", 10*time.Second, "per request timeout")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "report format: text, json or yaml")

	return cmd
}

// exitCode maps a finished batch to a process exit code.
func exitCode(report *domain.BatchReport, err error) int {
	switch {
	case err != nil && !errors.Is(err, context.Canceled):
		return exitFatal
	case err != nil, report.HasFailures():
		return exitFailures
	}
	return exitOK
}
