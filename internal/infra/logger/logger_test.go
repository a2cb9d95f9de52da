package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datallboy/gofetch/internal/domain"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("whatever"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, LevelWarn)

	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
}

func TestRecordEvents(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, LevelInfo)
	target := domain.Target{Name: "a.MOV"}

	l.Record(domain.Event{Kind: domain.EventFetchStarted, BatchID: "b1", Target: target, URL: "http://h/a.MOV"})
	l.Record(domain.Event{Kind: domain.EventFetchFailed, BatchID: "b1", Target: target, Cause: domain.CauseTimeout, Err: errors.New("deadline")})
	l.Record(domain.Event{Kind: domain.EventFileWritten, BatchID: "b1", Target: target, Path: "/tmp/x.mov", Bytes: 2048})
	l.Record(domain.Event{Kind: domain.EventBatchFinished, BatchID: "b1", Report: &domain.BatchReport{Elapsed: 1500 * time.Millisecond}})

	out := buf.String()
	assert.Contains(t, out, "Begin downloading a.MOV")
	assert.Contains(t, out, "Error downloading a.MOV")
	assert.Contains(t, out, `"cause":"timeout"`)
	assert.Contains(t, out, "Finished writing /tmp/x.mov (2.0 kB)")
	assert.Contains(t, out, "Execution time: 1.50 seconds")
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gofetch.log")
	l, err := New(path, LevelInfo, false)
	require.NoError(t, err)

	l.Info("hello %s", "file")
	_, err = l.Write([]byte("from echo\n"))
	require.NoError(t, err)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
	assert.Contains(t, string(data), "from echo")
}
