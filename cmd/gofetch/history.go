package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "history [batch-id]",
		Short: "List stored batch reports, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.OpenStore(); err != nil {
				return &exitError{code: exitFatal, err: err}
			}
			if appCtx.Store == nil {
				return &exitError{code: exitFatal, err: errors.New("report history is disabled (store.driver is none)")}
			}

			ctx := context.Background()
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				report, err := appCtx.Store.GetReport(ctx, args[0])
				if err != nil {
					return &exitError{code: exitFatal, err: err}
				}
				if report == nil {
					return &exitError{code: exitFatal, err: fmt.Errorf("batch %s not found", args[0])}
				}
				return printReport(w, report, output)
			}

			reports, err := appCtx.Store.ListReports(ctx, limit)
			if err != nil {
				return &exitError{code: exitFatal, err: err}
			}
			return printHistory(w, reports, output)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of reports to list")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "format: text, json or yaml")
	return cmd
}
