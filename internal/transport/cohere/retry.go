package cohere

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultMaxAttempts = 15

	// Rate-limit responses back off exponentially starting here; server and
	// transport errors retry on a fixed cadence.
	rateLimitBaseDelay = 1 * time.Second
	serverErrorDelay   = 2 * time.Second
)

// retryClass determines how a failed attempt is handled.
type retryClass int

const (
	nonRetryable retryClass = iota
	retryRateLimited
	retryServerError
)

// statusError is a non-2xx response from the provider.
type statusError struct {
	code   int
	detail string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("embedding API status %d: %s", e.code, e.detail)
}

// transportError is a network-level failure before any response arrived.
type transportError struct {
	err error
}

func (e *transportError) Error() string {
	return fmt.Sprintf("embedding API transport: %v", e.err)
}

func (e *transportError) Unwrap() error { return e.err }

// classify maps an attempt error to its retry behavior. Rate limits get
// exponential backoff, server-side and network failures a fixed delay, and
// any other client error is terminal.
func classify(err error) retryClass {
	var se *statusError
	if errors.As(err, &se) {
		switch {
		case se.code == http.StatusTooManyRequests:
			return retryRateLimited
		case se.code >= 500:
			return retryServerError
		default:
			return nonRetryable
		}
	}

	var te *transportError
	if errors.As(err, &te) {
		return retryServerError
	}

	return nonRetryable
}

// fallbackReason labels why the local fallback was taken, for metrics.
func fallbackReason(err error) string {
	var se *statusError
	if errors.As(err, &se) && se.code >= 400 && se.code < 500 && se.code != http.StatusTooManyRequests {
		return "client_error"
	}
	return "retries_exhausted"
}
