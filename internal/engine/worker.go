package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/datallboy/gofetch/internal/domain"
)

type unitResult struct {
	target  domain.Target
	bytes   int64
	failure *domain.Failure
}

// runWorkerPool fans the targets out to workers and collects exactly one result
// per target. It returns only after every worker has exited.
func (d *BatchDownloader) runWorkerPool(ctx context.Context, b *batch) {
	total := len(b.targets)
	if total == 0 {
		return
	}

	// Two spare workers so there is always one parked on the pool when a slot frees up
	workerCount := min(b.pool.Limit()+2, total)

	jobs := make(chan domain.Target, workerCount)
	// Sized so nobody ever blocks on a slow collector
	results := make(chan unitResult, total)

	var wg sync.WaitGroup
	defer wg.Wait()

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.worker(ctx, b, jobs, results)
		}()
	}

	go d.dispatchJobs(ctx, b, jobs, results)

	for completed := 0; completed < total; completed++ {
		res := <-results
		if res.failure != nil {
			b.report.AddFailure(*res.failure)
			continue
		}
		b.report.AddSuccess(res.bytes)
	}
}

// worker drains jobs until the dispatcher closes the channel. It never bails out
// early on ctx so that every dispatched target yields a result.
func (d *BatchDownloader) worker(ctx context.Context, b *batch, jobs <-chan domain.Target, results chan<- unitResult) {
	for t := range jobs {
		results <- d.processTarget(ctx, b, t)
	}
}

// dispatchJobs feeds targets to the workers. Once ctx is done the remaining
// targets are reported as cancelled without ever touching the pool.
func (d *BatchDownloader) dispatchJobs(ctx context.Context, b *batch, jobs chan<- domain.Target, results chan<- unitResult) {
	defer close(jobs)

	for i, t := range b.targets {
		select {
		case <-ctx.Done():
			for _, rest := range b.targets[i:] {
				results <- d.fail(b, rest, "", domain.CauseCancelled, ctx.Err(), 0)
			}
			return
		case jobs <- t:
		}
	}
}

// processTarget is the unit of work: acquire, fetch, write, release.
func (d *BatchDownloader) processTarget(ctx context.Context, b *batch, t domain.Target) unitResult {
	release, err := b.pool.Acquire(ctx)
	if err != nil {
		return d.fail(b, t, "", domain.CauseCancelled, err, 0)
	}
	defer release()

	url := t.URL(d.opts.BaseHost)
	d.recorder.Record(domain.Event{
		Kind:    domain.EventFetchStarted,
		BatchID: b.id,
		Target:  t,
		URL:     url,
	})

	start := time.Now()
	outcome := fetch(ctx, b.pool.Client(), url, d.opts.RequestTimeout)

	payload, ok := outcome.Payload()
	if !ok {
		cause, err := outcome.Failure()
		return d.fail(b, t, url, cause, err, time.Since(start))
	}

	path, err := b.workDir.WriteUnique(payload)
	if err != nil {
		return d.fail(b, t, url, domain.CauseWrite, fmt.Errorf("%w: %v", domain.ErrWrite, err), time.Since(start))
	}

	d.recorder.Record(domain.Event{
		Kind:     domain.EventFileWritten,
		BatchID:  b.id,
		Target:   t,
		URL:      url,
		Path:     path,
		Bytes:    int64(len(payload)),
		Duration: time.Since(start),
	})

	return unitResult{target: t, bytes: int64(len(payload))}
}

func (d *BatchDownloader) fail(b *batch, t domain.Target, url string, cause domain.FailureCause, err error, took time.Duration) unitResult {
	if err == nil {
		err = cause.Err()
	}

	d.recorder.Record(domain.Event{
		Kind:     domain.EventFetchFailed,
		BatchID:  b.id,
		Target:   t,
		URL:      url,
		Cause:    cause,
		Err:      err,
		Duration: took,
	})

	return unitResult{
		target: t,
		failure: &domain.Failure{
			Target: t,
			Cause:  cause,
			Detail: err.Error(),
		},
	}
}
