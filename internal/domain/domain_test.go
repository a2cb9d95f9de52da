package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTargetURL(t *testing.T) {
	tests := []struct {
		base, name, want string
	}{
		{"http://h/videos/", "a.MOV", "http://h/videos/a.MOV"},
		{"http://h/videos", "a.MOV", "http://h/videosa.MOV"},
		{"http://h/get?file=", "a.MOV", "http://h/get?file=a.MOV"},
		{"http://h/", "clips/b.mov", "http://h/clips/b.mov"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Target{Name: tt.name}.URL(tt.base))
	}
}

func TestFetchOutcomeVariants(t *testing.T) {
	ok := Fetched(nil)
	payload, good := ok.Payload()
	assert.True(t, good)
	assert.NotNil(t, payload)
	cause, err := ok.Failure()
	assert.Empty(t, cause)
	assert.NoError(t, err)

	bad := FetchFailed(CauseTimeout, nil)
	_, good = bad.Payload()
	assert.False(t, good)
	cause, err = bad.Failure()
	assert.Equal(t, CauseTimeout, cause)
	assert.True(t, errors.Is(err, ErrFetchTimeout))
}

func TestReportFinishSortsFailures(t *testing.T) {
	r := NewBatchReport("id", "http://h", 3)
	r.StartedAt = time.Now().Add(-time.Second)
	r.AddFailure(Failure{Target: Target{Index: 2, Name: "c"}, Cause: CauseConnection})
	r.AddSuccess(10)
	r.AddFailure(Failure{Target: Target{Index: 1, Name: "b"}, Cause: CauseTimeout})
	r.Finish()

	assert.Equal(t, r.Total, r.Succeeded+r.Failed)
	assert.Equal(t, "b", r.Failures[0].Target.Name)
	assert.Equal(t, "c", r.Failures[1].Target.Name)
	assert.GreaterOrEqual(t, r.Elapsed, time.Second)
	assert.True(t, r.HasFailures())
}

func TestMultiRecorderSkipsNil(t *testing.T) {
	log := &EventLog{}
	rec := MultiRecorder(nil, log, RecorderFunc(func(Event) {}))
	rec.Record(Event{Kind: EventFetchStarted})
	rec.Record(Event{Kind: EventFileWritten})

	assert.Equal(t, 1, log.Count(EventFetchStarted))
	assert.Len(t, log.Events(), 2)
}
