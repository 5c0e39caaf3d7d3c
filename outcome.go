package crawlbackoff

import (
	"context"
	"net/http"

	"github.com/always-cache/crawl-backoff/rfc9110"
)

type outcomeKey struct{}

// outcome is the resolution state of a single request.
// It is only touched by the goroutine serving the request.
type outcome struct {
	marked     bool
	decided    bool
	unresolved bool
}

func withOutcome(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), outcomeKey{}, &outcome{}))
}

func outcomeFrom(r *http.Request) *outcome {
	o, _ := r.Context().Value(outcomeKey{}).(*outcome)
	return o
}

// resolve decides once, at the time the status is finalized.
func (o *outcome) resolve(code int, explicitOnly bool) bool {
	if !o.decided {
		o.decided = true
		o.unresolved = o.marked || (!explicitOnly && code == rfc9110.StatusNotFound)
	}
	return o.unresolved
}

// MarkUnresolved records that the target of r was not found.
// It has to be called before the response status is written, and has no
// effect on requests not served through Backoff.Middleware.
func MarkUnresolved(r *http.Request) {
	if o := outcomeFrom(r); o != nil && !o.decided {
		o.marked = true
	}
}

// IsUnresolved reports whether r has been found unresolved.
// Before the status is written it only reflects MarkUnresolved.
func IsUnresolved(r *http.Request) bool {
	o := outcomeFrom(r)
	if o == nil {
		return false
	}
	if o.decided {
		return o.unresolved
	}
	return o.marked
}

// NotFoundHandler marks requests unresolved and replies with a plain 404 page.
// Use it as the not found handler of a router, e.g. chi.Router.NotFound.
func (b *Backoff) NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		MarkUnresolved(r)
		http.NotFound(w, r)
	})
}
