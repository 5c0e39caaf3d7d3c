// Package rewriter decides whether a response for an unresolved request
// should be turned into a temporary outage, and what that outage looks like
// on the wire.
//
// Everything in this package is pure: the caller supplies the resolution
// state of the request and applies the result.
package rewriter

import (
	"time"

	"github.com/always-cache/crawl-backoff/rfc9110"
)

const (
	// WeekInSeconds is the length of one week in seconds.
	WeekInSeconds = 7 * 24 * 60 * 60

	// RetryAfterSeconds is how long crawlers are asked to stay away.
	// It is fixed at two weeks.
	RetryAfterSeconds = WeekInSeconds * retryWeeks

	// FallbackDescription is used when the lookup has no text for 503.
	FallbackDescription = "Service Unavailable"

	retryWeeks = 2
)

// StatusTextFunc maps a numeric status code to its description.
type StatusTextFunc func(code int) string

// HeaderSetter is the part of http.Header the rewriter needs.
type HeaderSetter interface {
	Set(key, value string)
}

// StatusRewriter turns the status of unresolved requests into 503.
// The zero value uses the canonical status texts.
type StatusRewriter struct {
	statusText StatusTextFunc
}

// New returns a StatusRewriter using statusText as the description lookup.
// A nil statusText selects the canonical status texts.
func New(statusText StatusTextFunc) StatusRewriter {
	return StatusRewriter{statusText: statusText}
}

// DecideStatus returns the status line to send.
// For resolved requests it returns header unchanged; for unresolved requests
// it returns a 503 status line for protocol, whatever the original code and
// description were.
func (s StatusRewriter) DecideStatus(header string, code int, description, protocol string, isUnresolved bool) string {
	if !isUnresolved {
		return header
	}
	return rfc9110.StatusLine(protocol, rfc9110.StatusServiceUnavailable, s.description())
}

// MaybeInjectRetryHeader sets Retry-After on h for unresolved requests.
// It reports whether the header was set.
func (s StatusRewriter) MaybeInjectRetryHeader(h HeaderSetter, isUnresolved bool) bool {
	if !isUnresolved {
		return false
	}
	h.Set(rfc9110.RetryAfterHeader, rfc9110.DelaySeconds(RetryAfter()))
	return true
}

func (s StatusRewriter) description() string {
	lookup := s.statusText
	if lookup == nil {
		lookup = rfc9110.ReasonPhrase
	}
	if text := lookup(rfc9110.StatusServiceUnavailable); text != "" {
		return text
	}
	return FallbackDescription
}

// RetryAfter returns the retry policy as a duration.
func RetryAfter() time.Duration {
	return RetryAfterSeconds * time.Second
}
