package engine

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/datallboy/gofetch/internal/domain"
)

// Options configure one BatchDownloader.
type Options struct {
	BaseHost         string
	ConcurrencyLimit int
	RequestTimeout   time.Duration

	// WorkDirParent is where the per-batch temp directory is created. Empty means os.TempDir.
	WorkDirParent string
	FileExtension string

	// Transport overrides the pool's round tripper. Nil builds a fresh transport.
	Transport http.RoundTripper
}

func (o Options) validate(targets int) error {
	if o.ConcurrencyLimit < 1 {
		return fmt.Errorf("%w: concurrency limit must be at least 1, got %d", domain.ErrInvalidConfig, o.ConcurrencyLimit)
	}
	if o.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive, got %s", domain.ErrInvalidConfig, o.RequestTimeout)
	}
	if o.BaseHost == "" {
		if targets > 0 {
			return fmt.Errorf("%w: base host is required", domain.ErrInvalidConfig)
		}
		return nil
	}
	u, err := url.Parse(o.BaseHost)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base host must be an http(s) URL, got %q", domain.ErrInvalidConfig, o.BaseHost)
	}
	return nil
}

// BatchDownloader fans a list of targets out over a bounded connection pool and
// writes every successful payload into a per-batch work directory.
type BatchDownloader struct {
	opts     Options
	recorder domain.Recorder
}

func NewBatchDownloader(opts Options, rec domain.Recorder) *BatchDownloader {
	if rec == nil {
		rec = domain.MultiRecorder()
	}
	return &BatchDownloader{opts: opts, recorder: rec}
}

// batch is the state shared by the units of a single Run.
type batch struct {
	id      string
	targets []domain.Target
	pool    *ConnectionPool
	workDir *WorkDirectory
	report  *domain.BatchReport
}

// Run downloads every target and returns the report once all units have
// finished. Per-target failures are only reported; the error is non-nil for
// invalid options, an uncreatable work directory, or a cancelled ctx. In the
// cancelled case the report is still returned. The work directory never
// outlives Run.
func (d *BatchDownloader) Run(ctx context.Context, targets []domain.Target) (*domain.BatchReport, error) {
	if err := d.opts.validate(len(targets)); err != nil {
		return nil, err
	}

	workDir, err := NewWorkDirectory(d.opts.WorkDirParent, d.opts.FileExtension)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWorkDir, err)
	}
	defer workDir.Remove()

	pool := NewConnectionPool(d.opts.ConcurrencyLimit, d.opts.Transport)
	defer pool.Close()

	b := &batch{
		id:      ksuid.New().String(),
		targets: targets,
		pool:    pool,
		workDir: workDir,
	}
	b.report = domain.NewBatchReport(b.id, d.opts.BaseHost, len(targets))

	d.recorder.Record(domain.Event{
		Kind:    domain.EventBatchStarted,
		BatchID: b.id,
		Dir:     workDir.Path(),
		Report:  b.report,
	})

	d.runWorkerPool(ctx, b)

	b.report.PeakConcurrency = pool.Peak()

	// Every unit has returned, so nothing is writing into the directory anymore
	d.recorder.Record(domain.Event{
		Kind:    domain.EventWorkDirCleanup,
		BatchID: b.id,
		Dir:     workDir.Path(),
	})

	var cleanupErr error
	if err := workDir.Remove(); err != nil {
		cleanupErr = fmt.Errorf("failed to remove work directory %s: %w", workDir.Path(), err)
	}

	b.report.Finish()

	d.recorder.Record(domain.Event{
		Kind:     domain.EventBatchFinished,
		BatchID:  b.id,
		Duration: b.report.Elapsed,
		Report:   b.report,
	})

	if err := ctx.Err(); err != nil {
		return b.report, err
	}
	return b.report, cleanupErr
}
