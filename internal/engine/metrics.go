package engine

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/datallboy/gofetch/internal/domain"
)

const outcomeSuccess = "success"

// Metrics turns batch events into Prometheus series.
type Metrics struct {
	fetches      *prometheus.CounterVec
	duration     prometheus.Histogram
	bytesWritten prometheus.Counter
	batches      prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gofetch",
			Name:      "fetches_total",
			Help:      "Finished target downloads by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gofetch",
			Name:      "fetch_duration_seconds",
			Help:      "Time from request start to file written or failure.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gofetch",
			Name:      "bytes_written_total",
			Help:      "Payload bytes written to work directories.",
		}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gofetch",
			Name:      "batches_total",
			Help:      "Completed batch runs.",
		}),
	}

	for _, c := range []prometheus.Collector{m.fetches, m.duration, m.bytesWritten, m.batches} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Record(e domain.Event) {
	switch e.Kind {
	case domain.EventFileWritten:
		m.fetches.WithLabelValues(outcomeSuccess).Inc()
		m.bytesWritten.Add(float64(e.Bytes))
		m.duration.Observe(e.Duration.Seconds())
	case domain.EventFetchFailed:
		m.fetches.WithLabelValues(string(e.Cause)).Inc()
		if e.Duration > 0 {
			m.duration.Observe(e.Duration.Seconds())
		}
	case domain.EventBatchFinished:
		m.batches.Inc()
	}
}
