package domain

import "time"

const (
	TextOK      = "OK"
	TextTimeout = "Timeout"
	TextFailed  = "Failed to check"
)

// Outcome is the result of a single check attempt.
type Outcome struct {
	URL        string
	Status     Status
	StatusCode int
	StatusText string
	Duration   time.Duration
	Err        error // wraps ErrCheckTimeout or ErrCheckFailure when not success
}

func (o Outcome) IsDead() bool {
	return o.Status == StatusError || o.Status == StatusTimeout
}
