package domain

// FailureCause is the short, human readable reason a target did not produce a file.
type FailureCause string

const (
	CauseTimeout    FailureCause = "timeout"
	CauseConnection FailureCause = "connection error"
	CauseBadStatus  FailureCause = "bad status"
	CauseWrite      FailureCause = "write error"
	CauseCancelled  FailureCause = "cancelled"
)

// Err maps a cause back to its sentinel so callers can use errors.Is.
func (c FailureCause) Err() error {
	switch c {
	case CauseTimeout:
		return ErrFetchTimeout
	case CauseConnection:
		return ErrFetchConnection
	case CauseBadStatus:
		return ErrFetchBadStatus
	case CauseWrite:
		return ErrWrite
	case CauseCancelled:
		return ErrCancelled
	}
	return nil
}

// FetchOutcome is either a payload or a failure, never both.
// The zero value is not a valid outcome.
type FetchOutcome struct {
	payload []byte
	cause   FailureCause
	err     error
}

func Fetched(payload []byte) FetchOutcome {
	if payload == nil {
		payload = []byte{}
	}
	return FetchOutcome{payload: payload}
}

func FetchFailed(cause FailureCause, err error) FetchOutcome {
	if err == nil {
		err = cause.Err()
	}
	return FetchOutcome{cause: cause, err: err}
}

// Payload returns the downloaded bytes and true on success.
func (o FetchOutcome) Payload() ([]byte, bool) {
	if o.err != nil {
		return nil, false
	}
	return o.payload, true
}

// Failure returns the cause and underlying error, or ("", nil) on success.
func (o FetchOutcome) Failure() (FailureCause, error) {
	return o.cause, o.err
}
