package domain

import (
	"sort"
	"time"
)

// Failure is one entry in a BatchReport for a target that produced no file.
type Failure struct {
	Target Target       `json:"target" yaml:"target"`
	Cause  FailureCause `json:"cause" yaml:"cause"`
	Detail string       `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// BatchReport summarises one run. Partial failure is reported here, not as an error.
type BatchReport struct {
	ID              string        `json:"id" yaml:"id"`
	BaseHost        string        `json:"base_host" yaml:"base_host"`
	Total           int           `json:"total" yaml:"total"`
	Succeeded       int           `json:"succeeded" yaml:"succeeded"`
	Failed          int           `json:"failed" yaml:"failed"`
	Failures        []Failure     `json:"failures" yaml:"failures"`
	BytesWritten    int64         `json:"bytes_written" yaml:"bytes_written"`
	PeakConcurrency int           `json:"peak_concurrency" yaml:"peak_concurrency"`
	StartedAt       time.Time     `json:"started_at" yaml:"started_at"`
	Elapsed         time.Duration `json:"elapsed" yaml:"elapsed"`
}

func NewBatchReport(id, baseHost string, total int) *BatchReport {
	return &BatchReport{
		ID:        id,
		BaseHost:  baseHost,
		Total:     total,
		Failures:  make([]Failure, 0),
		StartedAt: time.Now(),
	}
}

func (r *BatchReport) AddSuccess(bytes int64) {
	r.Succeeded++
	r.BytesWritten += bytes
}

func (r *BatchReport) AddFailure(f Failure) {
	r.Failed++
	r.Failures = append(r.Failures, f)
}

// Finish stamps the elapsed time and orders failures by target position.
func (r *BatchReport) Finish() {
	r.Elapsed = time.Since(r.StartedAt)
	sort.SliceStable(r.Failures, func(i, j int) bool {
		return r.Failures[i].Target.Index < r.Failures[j].Target.Index
	})
}

func (r *BatchReport) HasFailures() bool { return r.Failed > 0 }
