package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCheckTimeout      = errors.New("check timed out")
	ErrCheckFailure      = errors.New("check failed")
	ErrNoLinks           = errors.New("no links found in the response")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrIncomplete        = errors.New("not every link has been checked")
)

// DiscoveryError is returned when the page list could not be obtained.
// It halts the discovery flow; no partial list is produced.
type DiscoveryError struct {
	Status string // status description from the mapping service, if any
	Err    error
}

func (e *DiscoveryError) Error() string {
	switch {
	case e.Status != "" && e.Err != nil:
		return fmt.Sprintf("discovery: API request failed: %s: %v", e.Status, e.Err)
	case e.Status != "":
		return "discovery: API request failed: " + e.Status
	case e.Err != nil:
		return "discovery: " + e.Err.Error()
	}
	return "discovery failed"
}

func (e *DiscoveryError) Unwrap() error { return e.Err }
