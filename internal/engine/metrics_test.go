package engine

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datallboy/gofetch/internal/domain"
)

func TestMetricsRecord(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.Record(domain.Event{Kind: domain.EventFileWritten, Bytes: 10, Duration: time.Millisecond})
	m.Record(domain.Event{Kind: domain.EventFetchFailed, Cause: domain.CauseTimeout, Duration: time.Second})
	m.Record(domain.Event{Kind: domain.EventFetchFailed, Cause: domain.CauseTimeout})
	m.Record(domain.Event{Kind: domain.EventBatchFinished, Report: &domain.BatchReport{}})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetches.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.fetches.WithLabelValues("timeout")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.bytesWritten))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.batches))
}

func TestMetricsDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)
	_, err = NewMetrics(reg)
	assert.Error(t, err)
}
