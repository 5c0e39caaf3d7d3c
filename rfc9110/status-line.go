package rfc9110

import (
	"fmt"
	"strconv"
	"strings"
)

// This section is from the HTTP/1.1 specification (RFC9112), not the semantics specification.
// Go's net/http writes the status line itself, so it is only ever built and parsed here
// for the benefit of status filters.
//
// §  4.  Status Line
// §
// §     The first line of a response message is the status-line, consisting
// §     of the protocol version, a space (SP), the status code, and another
// §     space and ending with an OPTIONAL textual phrase describing the
// §     status code.
// §
// §       status-line = HTTP-version SP status-code SP [ reason-phrase ]
// §
// §     The status-code element is a 3-digit integer code describing the
// §     result of the server's attempt to understand and satisfy the client's
// §     corresponding request.
// §
// §       status-code    = 3DIGIT
// §
// §     The reason-phrase element exists for the sole purpose of providing a
// §     textual description associated with the numeric status code, mostly
// §     out of deference to earlier Internet application protocols that were
// §     more frequently used with interactive text clients.
// §
// §       reason-phrase  = 1*( HTAB / SP / VCHAR / obs-text )

// StatusLine formats a status-line from its parts.
func StatusLine(protocol string, code int, reason string) string {
	return fmt.Sprintf("%s %d %s", protocol, code, reason)
}

// ParseStatusLine splits a status-line into protocol, code and reason phrase.
// The reason phrase may be empty.
func ParseStatusLine(line string) (protocol string, code int, reason string, err error) {
	protocol, rest, ok := strings.Cut(strings.TrimRight(line, "\r\n"), " ")
	if !ok || protocol == "" {
		return "", 0, "", fmt.Errorf("malformed status line %q", line)
	}
	codeStr, reason, _ := strings.Cut(rest, " ")
	if len(codeStr) != 3 {
		return "", 0, "", fmt.Errorf("malformed status code %q in status line %q", codeStr, line)
	}
	code, err = strconv.Atoi(codeStr)
	if err != nil {
		return "", 0, "", fmt.Errorf("malformed status code in status line %q: %w", line, err)
	}
	if code < 100 || code > 599 {
		return "", 0, "", fmt.Errorf("status code %d out of range", code)
	}
	return protocol, code, reason, nil
}
