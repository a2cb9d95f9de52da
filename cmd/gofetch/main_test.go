package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datallboy/gofetch/internal/domain"
)

func TestExitCode(t *testing.T) {
	clean := &domain.BatchReport{Total: 2, Succeeded: 2}
	partial := &domain.BatchReport{Total: 2, Succeeded: 1, Failed: 1}

	assert.Equal(t, exitOK, exitCode(clean, nil))
	assert.Equal(t, exitFailures, exitCode(partial, nil))
	assert.Equal(t, exitFailures, exitCode(clean, context.Canceled))
	assert.Equal(t, exitFatal, exitCode(clean, errors.New("failed to remove work directory")))
}

func TestPrintReportText(t *testing.T) {
	r := &domain.BatchReport{
		ID:        "2abc",
		BaseHost:  "http://media.local/",
		Total:     2,
		Succeeded: 1,
		Failed:    1,
		Failures: []domain.Failure{
			{Target: domain.Target{Index: 1, Name: "b.mov"}, Cause: domain.CauseTimeout, Detail: "context deadline exceeded"},
		},
		StartedAt: time.Now(),
		Elapsed:   1234 * time.Millisecond,
	}

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, r, "text"))
	out := buf.String()
	assert.Contains(t, out, "Batch ID:     2abc")
	assert.Contains(t, out, "Elapsed:      1.23 seconds")
	assert.Contains(t, out, "b.mov")
	assert.Contains(t, out, "timeout")
}

func TestPrintReportFormats(t *testing.T) {
	r := &domain.BatchReport{ID: "x", Failures: []domain.Failure{}}

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, r, "json"))
	assert.Contains(t, buf.String(), `"id": "x"`)

	buf.Reset()
	require.NoError(t, printReport(&buf, r, "yaml"))
	assert.Contains(t, buf.String(), "id: x")

	assert.Error(t, printReport(&buf, r, "xml"))
}

func TestPrintHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printHistory(&buf, nil, "text"))
	assert.Contains(t, buf.String(), "No batches recorded yet.")
}
