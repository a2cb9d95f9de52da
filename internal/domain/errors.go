package domain

import "errors"

// ErrInvalidConfig indicates the batch options cannot be used. Fatal to the batch.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrWorkDir indicates the batch work directory could not be created. Fatal to the batch.
var ErrWorkDir = errors.New("work directory unavailable")

// Per-target errors. These never abort a batch, they end up in the BatchReport.
var (
	ErrFetchTimeout    = errors.New("timeout")
	ErrFetchConnection = errors.New("connection error")
	ErrFetchBadStatus  = errors.New("bad status")
	ErrWrite           = errors.New("write error")
	ErrCancelled       = errors.New("cancelled")
)
