package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/datallboy/gofetch/internal/domain"
)

const batchColumns = `id, base_host, total, succeeded, failed, bytes_written, peak_concurrency, started_at, elapsed_ms, failures`

// SaveReport inserts or replaces a batch report.
func (s *PersistentStore) SaveReport(ctx context.Context, r *domain.BatchReport) error {
	var dbo batchDBO
	if err := dbo.FromDomain(r); err != nil {
		return err
	}

	query := s.rebind(`
		INSERT INTO batches (` + batchColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			base_host = excluded.base_host,
			total = excluded.total,
			succeeded = excluded.succeeded,
			failed = excluded.failed,
			bytes_written = excluded.bytes_written,
			peak_concurrency = excluded.peak_concurrency,
			started_at = excluded.started_at,
			elapsed_ms = excluded.elapsed_ms,
			failures = excluded.failures`)

	_, err := s.db.ExecContext(ctx, query,
		dbo.ID, dbo.BaseHost, dbo.Total, dbo.Succeeded, dbo.Failed,
		dbo.BytesWritten, dbo.PeakConcurrency, dbo.StartedAt, dbo.ElapsedMS, dbo.Failures,
	)
	if err != nil {
		return fmt.Errorf("failed to save batch %s: %w", r.ID, err)
	}
	return nil
}

// GetReport returns nil, nil when the batch is unknown.
func (s *PersistentStore) GetReport(ctx context.Context, id string) (*domain.BatchReport, error) {
	query := s.rebind(`SELECT ` + batchColumns + ` FROM batches WHERE id = ? LIMIT 1`)

	var dbo batchDBO
	err := scanBatch(s.db.QueryRowContext(ctx, query, id), &dbo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch batch: %w", err)
	}

	return dbo.ToDomain()
}

// ListReports returns up to limit reports, newest first. KSUIDs sort by time.
func (s *PersistentStore) ListReports(ctx context.Context, limit int) ([]*domain.BatchReport, error) {
	if limit <= 0 {
		limit = 50
	}

	query := s.rebind(`SELECT ` + batchColumns + ` FROM batches ORDER BY id DESC LIMIT ?`)

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	reports := make([]*domain.BatchReport, 0)
	for rows.Next() {
		var dbo batchDBO
		if err := scanBatch(rows, &dbo); err != nil {
			return nil, err
		}
		r, err := dbo.ToDomain()
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}

	return reports, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBatch(row scanner, dbo *batchDBO) error {
	return row.Scan(
		&dbo.ID, &dbo.BaseHost, &dbo.Total, &dbo.Succeeded, &dbo.Failed,
		&dbo.BytesWritten, &dbo.PeakConcurrency, &dbo.StartedAt, &dbo.ElapsedMS, &dbo.Failures,
	)
}
