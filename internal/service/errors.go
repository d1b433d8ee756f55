package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrIncompleteAggregate = errors.New("incomplete aggregate")
	ErrZeroTotal           = errors.New("all trait scores are zero")
	ErrCollectorClosed     = errors.New("collector closed")
	ErrInvalidResponse     = errors.New("invalid response")
	ErrUnknownTrait        = errors.New("unknown trait")
	ErrSessionNotFound     = errors.New("assessment session not found")
	ErrRateLimited         = errors.New("too many assessment sessions")
)

// RateLimitedError carries how long the client has to wait. It matches
// ErrRateLimited with errors.Is.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter <= 0 {
		return ErrRateLimited.Error()
	}
	return fmt.Sprintf("%s: retry in %s", ErrRateLimited, e.RetryAfter.Round(time.Second))
}

func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}
