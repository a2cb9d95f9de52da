package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/datallboy/gofetch/internal/domain"
)

// batchDBO maps to the batches table
type batchDBO struct {
	ID              string `db:"id"`
	BaseHost        string `db:"base_host"`
	Total           int    `db:"total"`
	Succeeded       int    `db:"succeeded"`
	Failed          int    `db:"failed"`
	BytesWritten    int64  `db:"bytes_written"`
	PeakConcurrency int    `db:"peak_concurrency"`
	StartedAt       int64  `db:"started_at"`
	ElapsedMS       int64  `db:"elapsed_ms"`
	Failures        string `db:"failures"`
}

// Mapper: DBO to Domain BatchReport
func (b *batchDBO) ToDomain() (*domain.BatchReport, error) {
	r := &domain.BatchReport{
		ID:              b.ID,
		BaseHost:        b.BaseHost,
		Total:           b.Total,
		Succeeded:       b.Succeeded,
		Failed:          b.Failed,
		BytesWritten:    b.BytesWritten,
		PeakConcurrency: b.PeakConcurrency,
		StartedAt:       time.UnixMilli(b.StartedAt),
		Elapsed:         time.Duration(b.ElapsedMS) * time.Millisecond,
		Failures:        make([]domain.Failure, 0),
	}
	if b.Failures != "" {
		if err := json.Unmarshal([]byte(b.Failures), &r.Failures); err != nil {
			return nil, fmt.Errorf("failed to decode failures for %s: %w", b.ID, err)
		}
	}
	return r, nil
}

// Mapper: Domain BatchReport to DBO
func (b *batchDBO) FromDomain(r *domain.BatchReport) error {
	failures := r.Failures
	if failures == nil {
		failures = []domain.Failure{}
	}
	raw, err := json.Marshal(failures)
	if err != nil {
		return fmt.Errorf("failed to encode failures: %w", err)
	}

	b.ID = r.ID
	b.BaseHost = r.BaseHost
	b.Total = r.Total
	b.Succeeded = r.Succeeded
	b.Failed = r.Failed
	b.BytesWritten = r.BytesWritten
	b.PeakConcurrency = r.PeakConcurrency
	b.StartedAt = r.StartedAt.UnixMilli()
	b.ElapsedMS = r.Elapsed.Milliseconds()
	b.Failures = string(raw)
	return nil
}
