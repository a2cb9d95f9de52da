package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/datallboy/gofetch/internal/domain"
	"github.com/datallboy/gofetch/internal/engine"
	"github.com/datallboy/gofetch/internal/infra/config"
	"github.com/datallboy/gofetch/internal/infra/logger"
	"github.com/datallboy/gofetch/internal/store"
	"github.com/datallboy/gofetch/internal/targets"
)

// Store is what the app needs from persistence. Nil when persistence is disabled.
type Store interface {
	SaveReport(ctx context.Context, r *domain.BatchReport) error
	GetReport(ctx context.Context, id string) (*domain.BatchReport, error)
	ListReports(ctx context.Context, limit int) ([]*domain.BatchReport, error)
	Close() error
}

// Context holds the core environment and shared resources for gofetch.
type Context struct {
	Config *config.Config
	Logger *logger.Logger
	Store  Store

	Registry *prometheus.Registry
	Metrics  *engine.Metrics

	Downloader *engine.BatchDownloader
}

// NewContext wires logger and metrics into a downloader built from cfg.
// The store is attached separately with OpenStore so commands that never
// persist do not touch the database.
func NewContext(cfg *config.Config, log *logger.Logger) (*Context, error) {
	reg := prometheus.NewRegistry()
	metrics, err := engine.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	opts := engine.Options{
		BaseHost:         cfg.Fetch.BaseHost,
		ConcurrencyLimit: cfg.Fetch.ConcurrencyLimit,
		RequestTimeout:   cfg.Fetch.RequestTimeout,
		WorkDirParent:    cfg.Fetch.WorkDirParent,
		FileExtension:    cfg.Fetch.FileExtension,
	}

	return &Context{
		Config:     cfg,
		Logger:     log,
		Registry:   reg,
		Metrics:    metrics,
		Downloader: engine.NewBatchDownloader(opts, domain.MultiRecorder(log, metrics)),
	}, nil
}

func (c *Context) OpenStore() error {
	s, err := store.New(c.Config.Store)
	if err != nil {
		return err
	}
	// store.New returns a nil pointer when disabled; keep the interface nil too
	if s != nil {
		c.Store = s
	}
	return nil
}

// ConfiguredTargets returns the filtered target list from config. Names, when
// non-empty, replace the configured list but still go through the filters.
func (c *Context) ConfiguredTargets(names []string) ([]domain.Target, error) {
	tc := c.Config.Targets
	if len(names) > 0 {
		tc.Names = names
	}
	return targets.Load(tc)
}

// RunBatch runs the downloader and persists the report when a store is attached.
// A store failure is logged, not returned; the report is still valid.
func (c *Context) RunBatch(ctx context.Context, t []domain.Target) (*domain.BatchReport, error) {
	report, err := c.Downloader.Run(ctx, t)
	if report != nil && c.Store != nil {
		if serr := c.Store.SaveReport(context.WithoutCancel(ctx), report); serr != nil {
			c.Logger.Error("Failed to save batch %s: %v", report.ID, serr)
		}
	}
	return report, err
}

func (c *Context) Close() error {
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			return err
		}
	}
	return c.Logger.Close()
}
