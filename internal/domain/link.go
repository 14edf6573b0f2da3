package domain

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusChecking Status = "checking"
	StatusSuccess  Status = "success"
	StatusError    Status = "error"
	StatusTimeout  Status = "timeout"
)

// Terminal reports whether no further mutation can happen in this state.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusError, StatusTimeout:
		return true
	}
	return false
}

// LinkRecord is one discovered URL and the state of its liveness check.
// StatusCode 0 and StatusText "" mean absent.
type LinkRecord struct {
	URL        string
	Status     Status
	StatusCode int
	StatusText string
	Duration   time.Duration
}

func NewLinkRecord(url string) LinkRecord {
	return LinkRecord{URL: url, Status: StatusPending}
}

// DurationMs is the elapsed attempt time in whole milliseconds.
// ok is false until the record reaches a terminal state.
func (r LinkRecord) DurationMs() (ms int64, ok bool) {
	if !r.Status.Terminal() {
		return 0, false
	}
	return r.Duration.Round(time.Millisecond).Milliseconds(), true
}

// Begin moves a pending record to checking.
func (r *LinkRecord) Begin() error {
	if r.Status != StatusPending {
		return fmt.Errorf("%w: %s -> %s (%s)", ErrInvalidTransition, r.Status, StatusChecking, r.URL)
	}
	r.Status = StatusChecking
	return nil
}

// Finish applies a terminal outcome to a record that is checking.
// Code, text and duration are set together here and nowhere else.
func (r *LinkRecord) Finish(o Outcome) error {
	if r.Status != StatusChecking {
		return fmt.Errorf("%w: %s -> %s (%s)", ErrInvalidTransition, r.Status, o.Status, r.URL)
	}
	if !o.Status.Terminal() {
		return fmt.Errorf("%w: outcome %q is not terminal (%s)", ErrInvalidTransition, o.Status, r.URL)
	}
	if o.Duration < 0 {
		o.Duration = 0
	}

	r.Status = o.Status
	r.StatusCode = o.StatusCode
	r.StatusText = o.StatusText
	r.Duration = o.Duration
	return nil
}

// Counts aggregates records by status.
type Counts struct {
	Total    int
	Pending  int
	Checking int
	Success  int
	Error    int
	Timeout  int
}

func CountRecords(recs []LinkRecord) Counts {
	c := Counts{Total: len(recs)}
	for _, r := range recs {
		c.Add(r.Status)
	}
	return c
}

func (c *Counts) Add(s Status) {
	switch s {
	case StatusPending:
		c.Pending++
	case StatusChecking:
		c.Checking++
	case StatusSuccess:
		c.Success++
	case StatusError:
		c.Error++
	case StatusTimeout:
		c.Timeout++
	}
}

func (c Counts) Checked() int { return c.Success + c.Error + c.Timeout }

func (c Counts) Failed() int { return c.Error + c.Timeout }

// Complete is true once every record is terminal (vacuously true for zero records).
func (c Counts) Complete() bool { return c.Checked() == c.Total }
