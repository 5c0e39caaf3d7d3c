package rewriter

import (
	"net/http"
	"testing"
)

type statusLine struct {
	header      string
	code        int
	description string
	protocol    string
}

var statusLines = []statusLine{
	{"HTTP/1.1 200 OK", 200, "OK", "HTTP/1.1"},
	{"HTTP/1.1 404 Not Found", 404, "Not Found", "HTTP/1.1"},
	{"HTTP/1.0 301 Moved Permanently", 301, "Moved Permanently", "HTTP/1.0"},
	{"HTTP/2.0 500 Internal Server Error", 500, "Internal Server Error", "HTTP/2.0"},
	{"", 0, "", ""},
}

func TestResolvedPassesThrough(t *testing.T) {
	s := New(nil)
	for _, l := range statusLines {
		if got := s.DecideStatus(l.header, l.code, l.description, l.protocol, false); got != l.header {
			t.Fatalf("Status line changed from %q to %q", l.header, got)
		}
	}
	h := http.Header{}
	if s.MaybeInjectRetryHeader(h, false) || len(h) != 0 {
		t.Fatalf("Headers mutated: %v", h)
	}
}

func TestUnresolvedIsRewritten(t *testing.T) {
	s := New(nil)
	for _, l := range statusLines {
		expected := l.protocol + " 503 Service Unavailable"
		if got := s.DecideStatus(l.header, l.code, l.description, l.protocol, true); got != expected {
			t.Fatalf("Status line is %q, expected %q", got, expected)
		}
	}
}

func TestRetryHeaderIsFixed(t *testing.T) {
	var s StatusRewriter
	for i := 0; i < 3; i++ {
		h := http.Header{}
		h.Set("Retry-After", "5")
		if !s.MaybeInjectRetryHeader(h, true) {
			t.Fatal("Header not set")
		}
		if v := h.Values("Retry-After"); len(v) != 1 || v[0] != "1209600" {
			t.Fatalf("Retry-After is %v", v)
		}
	}
	if RetryAfter().Seconds() != 1209600 {
		t.Fatalf("Retry policy is %s", RetryAfter())
	}
}

func TestDecideStatusIsIdempotent(t *testing.T) {
	s := New(nil)
	for _, unresolved := range []bool{false, true} {
		first := s.DecideStatus("HTTP/1.1 404 Not Found", 404, "Not Found", "HTTP/1.1", unresolved)
		second := s.DecideStatus("HTTP/1.1 404 Not Found", 404, "Not Found", "HTTP/1.1", unresolved)
		if first != second {
			t.Fatalf("%q != %q", first, second)
		}
	}
}

func TestFallbackDescription(t *testing.T) {
	s := New(func(int) string { return "" })
	if got := s.DecideStatus("HTTP/1.1 404 Not Found", 404, "Not Found", "HTTP/1.1", true); got != "HTTP/1.1 503 Service Unavailable" {
		t.Fatalf("Status line is %q", got)
	}

	s = New(func(code int) string {
		if code == 503 {
			return "Down For Maintenance"
		}
		return ""
	})
	if got := s.DecideStatus("HTTP/1.1 404 Not Found", 404, "Not Found", "HTTP/1.1", true); got != "HTTP/1.1 503 Down For Maintenance" {
		t.Fatalf("Status line is %q", got)
	}
}
