package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/datallboy/gofetch/internal/domain"
)

// fetch performs one GET bounded by timeout. The timeout covers headers and body.
func fetch(ctx context.Context, client *http.Client, url string, timeout time.Duration) domain.FetchOutcome {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return domain.FetchFailed(domain.CauseConnection, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := client.Do(req)
	if err != nil {
		return domain.FetchFailed(classify(ctx, err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can go back to the pool
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return domain.FetchFailed(domain.CauseBadStatus,
			fmt.Errorf("%w: %s", domain.ErrFetchBadStatus, resp.Status))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.FetchFailed(classify(ctx, err), fmt.Errorf("failed to read body: %w", err))
	}

	return domain.Fetched(payload)
}

// classify maps a transport error onto a failure cause. The parent context is
// checked first so a batch abort is never mistaken for a per-request timeout.
func classify(parent context.Context, err error) domain.FailureCause {
	if parent.Err() != nil {
		return domain.CauseCancelled
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return domain.CauseTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.CauseTimeout
	}

	return domain.CauseConnection
}
