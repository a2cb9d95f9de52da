package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datallboy/gofetch/internal/domain"
)

func TestClassify(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, domain.CauseCancelled, classify(cancelled, context.DeadlineExceeded))
	assert.Equal(t, domain.CauseTimeout, classify(context.Background(), fmt.Errorf("get: %w", context.DeadlineExceeded)))
	assert.Equal(t, domain.CauseConnection, classify(context.Background(), errors.New("connection refused")))
}

func TestFetchTimeoutDuringBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("partial"))
		w.(http.Flusher).Flush()
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	start := time.Now()
	outcome := fetch(context.Background(), srv.Client(), srv.URL+"/slow.mov", 100*time.Millisecond)
	assert.Less(t, time.Since(start), 2*time.Second)

	_, ok := outcome.Payload()
	require.False(t, ok)
	cause, err := outcome.Failure()
	assert.Equal(t, domain.CauseTimeout, cause)
	assert.ErrorContains(t, err, "failed to read body")
}

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get", r.URL.Path)
		assert.Equal(t, "a.MOV", r.URL.Query().Get("file"))
		w.Write([]byte("0123"))
	}))
	defer srv.Close()

	target := domain.Target{Name: "a.MOV"}
	outcome := fetch(context.Background(), srv.Client(), target.URL(srv.URL+"/get?file="), time.Second)

	payload, ok := outcome.Payload()
	require.True(t, ok)
	assert.Equal(t, []byte("0123"), payload)
}
