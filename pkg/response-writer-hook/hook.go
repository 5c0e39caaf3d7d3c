package hook

import (
	"bufio"
	"fmt"
	"net"
	"net/http"

	"github.com/always-cache/crawl-backoff/pkg/hooks"
	"github.com/always-cache/crawl-backoff/rfc9110"

	"github.com/rs/zerolog"
)

// ResponseWriter is a wrapper around http.ResponseWriter that runs the hooks
// of a registry right before the final status code is written.
// The header map is shared with the underlying http.ResponseWriter,
// so a response no hook touches is written exactly as the handler wrote it.
type ResponseWriter struct {
	rw           http.ResponseWriter
	r            *http.Request
	hooks        *hooks.Registry
	wroteHeaders bool
	status       int
	original     int
	log          zerolog.Logger
}

// NewResponseWriter returns a ResponseWriter for the request r.
// It does not implement http.Flusher; use Wrap to keep the optional
// interfaces of w.
func NewResponseWriter(w http.ResponseWriter, r *http.Request, reg *hooks.Registry, logger zerolog.Logger) *ResponseWriter {
	return &ResponseWriter{
		rw:    w,
		r:     r,
		hooks: reg,
		log:   logger,
	}
}

// Wrap returns a hooked http.ResponseWriter for the request r.
// It implements http.Flusher only if w does.
func Wrap(w http.ResponseWriter, r *http.Request, reg *hooks.Registry, logger zerolog.Logger) http.ResponseWriter {
	hw := NewResponseWriter(w, r, reg, logger)
	if _, ok := w.(http.Flusher); ok {
		return flushWriter{hw}
	}
	return hw
}

// Implementation of http.ResponseWriter
func (w *ResponseWriter) Header() http.Header {
	return w.rw.Header()
}

// Implementation of http.ResponseWriter
func (w *ResponseWriter) WriteHeader(statusCode int) {
	// interim responses are forwarded as is, the final one follows later
	if rfc9110.IsInformational(statusCode) && statusCode != http.StatusSwitchingProtocols {
		w.rw.WriteHeader(statusCode)
		return
	}
	if w.wroteHeaders {
		w.log.Warn().Int("status", statusCode).Str("url", w.r.URL.String()).Msg("Superfluous WriteHeader call")
		return
	}
	w.wroteHeaders = true
	w.original = statusCode
	w.status = w.finalize(statusCode)
	w.rw.WriteHeader(w.status)
}

// finalize runs the registered actions and filters and returns the status code to write.
func (w *ResponseWriter) finalize(statusCode int) int {
	w.hooks.Finalize(w.r, statusCode, w.rw.Header())

	description := rfc9110.ReasonPhrase(statusCode)
	header := rfc9110.StatusLine(w.r.Proto, statusCode, description)
	filtered := w.hooks.FilterStatus(w.r, header, statusCode, description, w.r.Proto)
	if filtered == header {
		return statusCode
	}
	_, code, _, err := rfc9110.ParseStatusLine(filtered)
	if err != nil {
		w.log.Error().Err(err).Str("url", w.r.URL.String()).Msg("Status filter returned an invalid status line")
		return statusCode
	}
	return code
}

// Implementation of http.ResponseWriter
func (w *ResponseWriter) Write(b []byte) (int, error) {
	// write headers if not already written
	if !w.wroteHeaders {
		w.WriteHeader(http.StatusOK)
	}
	return w.rw.Write(b)
}

// Hijack implements http.Hijacker.
// It fails with http.ErrNotSupported if the underlying writer cannot be hijacked.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.rw.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("hijacking %T: %w", w.rw, http.ErrNotSupported)
	}
	return h.Hijack()
}

// Unwrap returns the underlying http.ResponseWriter, for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.rw
}

// StatusCode returns the status code written to the client, or 0 if none was written yet.
func (w *ResponseWriter) StatusCode() int {
	return w.status
}

// OriginalStatusCode returns the status code the handler asked for.
func (w *ResponseWriter) OriginalStatusCode() int {
	return w.original
}

// flushWriter is a ResponseWriter whose underlying writer is an http.Flusher.
type flushWriter struct {
	*ResponseWriter
}

// Flush writes the status through the hooks first, if not already written.
func (w flushWriter) Flush() {
	if !w.wroteHeaders {
		w.WriteHeader(http.StatusOK)
	}
	w.rw.(http.Flusher).Flush()
}
