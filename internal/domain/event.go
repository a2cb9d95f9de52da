package domain

import (
	"sync"
	"time"
)

type EventKind string

const (
	EventBatchStarted   EventKind = "batch_started"
	EventFetchStarted   EventKind = "fetch_started"
	EventFetchFailed    EventKind = "fetch_failed"
	EventFileWritten    EventKind = "file_written"
	EventWorkDirCleanup EventKind = "workdir_cleanup"
	EventBatchFinished  EventKind = "batch_finished"
)

// Event describes something observable that happened during a batch.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind     EventKind
	BatchID  string
	Target   Target
	URL      string
	Path     string
	Dir      string
	Bytes    int64
	Cause    FailureCause
	Err      error
	Duration time.Duration
	Report   *BatchReport
}

// Recorder receives batch events. Implementations must be safe for concurrent use,
// Record is called from every worker.
type Recorder interface {
	Record(Event)
}

// RecorderFunc adapts a plain function to a Recorder.
type RecorderFunc func(Event)

func (f RecorderFunc) Record(e Event) { f(e) }

type multiRecorder []Recorder

func (m multiRecorder) Record(e Event) {
	for _, r := range m {
		r.Record(e)
	}
}

// MultiRecorder fans events out to every non-nil recorder in order.
func MultiRecorder(recorders ...Recorder) Recorder {
	var m multiRecorder
	for _, r := range recorders {
		if r != nil {
			m = append(m, r)
		}
	}
	return m
}

// EventLog collects events in memory so a finished run can be inspected.
type EventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *EventLog) Record(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

// Events returns a copy of everything recorded so far.
func (l *EventLog) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Count returns how many events of the given kind were recorded.
func (l *EventLog) Count(kind EventKind) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
