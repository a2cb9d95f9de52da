package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/datallboy/gofetch/internal/app"
	"github.com/datallboy/gofetch/internal/infra/config"
	"github.com/datallboy/gofetch/internal/infra/logger"
)

const (
	exitOK       = 0
	exitFailures = 1
	exitFatal    = 2
)

// exitError carries a process exit code out of a cobra RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

var (
	cfgFile string
	appCtx  *app.Context
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gofetch",
		Short:         "Concurrent batch downloader with a bounded connection pool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is fine; the environment may already be set
			_ = godotenv.Load()

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return &exitError{code: exitFatal, err: fmt.Errorf("config error: %w", err)}
			}

			log, err := logger.New(cfg.Log.Path, logger.ParseLevel(cfg.Log.Level), cfg.Log.IncludeStdout)
			if err != nil {
				return &exitError{code: exitFatal, err: fmt.Errorf("could not open log file: %w", err)}
			}

			appCtx, err = app.NewContext(cfg, log)
			if err != nil {
				return &exitError{code: exitFatal, err: err}
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./gofetch.yaml or /config/gofetch.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(newRunCmd(), newServeCmd(), newHistoryCmd())
	return root
}

// Execute runs the root command and maps the result to an exit code.
func Execute() int {
	err := newRootCmd().Execute()

	// Close here rather than in a PostRun hook; cobra skips those when RunE errors
	if appCtx != nil {
		if cerr := appCtx.Close(); cerr != nil {
			fmt.Fprintln(os.Stderr, "Warning:", cerr)
		}
	}

	if err == nil {
		return exitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(os.Stderr, "Error:", ee.err)
		}
		return ee.code
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	return exitFatal
}
