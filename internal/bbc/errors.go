// SPDX-License-Identifier: MIT
package bbc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	// Sentinel errors for errors.Is checks at the boundary.
	ErrNotFound            = errors.New("upstream: resource not found")
	ErrForbidden           = errors.New("upstream: access forbidden")
	ErrUpstreamUnavailable = errors.New("upstream: host unreachable or transport failure")
	ErrUpstreamError       = errors.New("upstream: internal error (5xx)")
	ErrBadResponse         = errors.New("upstream: invalid response format or malformed data")
	ErrTimeout             = errors.New("upstream: request timed out")
)

const maxErrorBody = 256

// APIError wraps a sentinel with the request context it occurred in.
type APIError struct {
	Sentinel  error
	Operation string
	URL       string
	Status    int
	Body      string
	Err       error // lower-level cause (net.Error, json.SyntaxError, ...)
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("bbc: %s: %v", e.Operation, e.Sentinel)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.URL != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.URL)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Sentinel}
	}
	return []error{e.Sentinel, e.Err}
}

// wrapError classifies a transport error or HTTP status into an *APIError.
func wrapError(op, rawURL string, err error, status int, body []byte) error {
	e := &APIError{Operation: op, URL: rawURL, Status: status, Err: err}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	e.Body = string(body)

	switch {
	case err != nil && errors.Is(err, context.DeadlineExceeded):
		e.Sentinel = ErrTimeout
	case err != nil && isNetTimeout(err):
		e.Sentinel = ErrTimeout
	case err != nil && status == 0:
		e.Sentinel = ErrUpstreamUnavailable
	case status == http.StatusNotFound:
		e.Sentinel = ErrNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Sentinel = ErrForbidden
	case status == http.StatusTooManyRequests || status >= 500:
		e.Sentinel = ErrUpstreamError
	default:
		e.Sentinel = ErrBadResponse
	}
	return e
}

func badResponse(op, rawURL string, err error) error {
	return &APIError{Sentinel: ErrBadResponse, Operation: op, URL: rawURL, Err: err}
}

func isNetTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// countsTowardsBreaker reports whether err indicates the backend itself is
// unhealthy. A missing schedule or a malformed document does not.
func countsTowardsBreaker(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, ErrUpstreamUnavailable) ||
		errors.Is(err, ErrUpstreamError) ||
		errors.Is(err, ErrTimeout)
}
