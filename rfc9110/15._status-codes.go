package rfc9110

import "net/http"

// §  15.  Status Codes
// §
// §     The status code of a response is a three-digit integer code that
// §     describes the result of the request and the semantics of the
// §     response, including whether the request was successful and what
// §     content is enclosed (if any).  All valid status codes are within the
// §     range of 100 to 599, inclusive.
// §
// §     The first digit of the status code defines the class of response.
// §     The last two digits do not have any categorization role.  There are
// §     five values for the first digit:
// §
// §     *  1xx (Informational): The request was received, continuing process
// §
// §     *  2xx (Successful): The request was successfully received,
// §        understood, and accepted
// §
// §     *  3xx (Redirection): Further action needs to be taken in order to
// §        complete the request
// §
// §     *  4xx (Client Error): The request contains bad syntax or cannot be
// §        fulfilled
// §
// §     *  5xx (Server Error): The server failed to fulfill an apparently
// §        valid request

// IsInformational reports whether code is in the 1xx class.
// Informational responses are interim; a final response always follows.
func IsInformational(code int) bool {
	return code >= 100 && code < 200
}

// ReasonPhrase returns the canonical description of the status code,
// or the empty string if the code is unknown.
func ReasonPhrase(code int) string {
	return http.StatusText(code)
}

// §  15.5.5.  404 Not Found
// §
// §     The 404 (Not Found) status code indicates that the origin server did
// §     not find a current representation for the target resource or is not
// §     willing to disclose that one exists.  A 404 status code does not
// §     indicate whether this lack of representation is temporary or
// §     permanent; the 410 (Gone) status code is preferred over 404 if the
// §     origin server knows, presumably through some configurable means, that
// §     the condition is likely to be permanent.
// §
// §     A 404 response is heuristically cacheable; i.e., unless otherwise
// §     indicated by the method definition or explicit cache controls (see
// §     Section 4.2.2 of [CACHING]).
const StatusNotFound = http.StatusNotFound

// §  15.6.4.  503 Service Unavailable
// §
// §     The 503 (Service Unavailable) status code indicates that the server
// §     is currently unable to handle the request due to a temporary overload
// §     or scheduled maintenance, which will likely be alleviated after some
// §     delay.  The server MAY send a Retry-After header field (Section
// §     10.2.3) to suggest an appropriate amount of time for the client to
// §     wait before retrying the request.
// §
// §        |  *Note:* The existence of the 503 status code does not imply
// §        |  that a server has to use it when becoming overloaded.  Some
// §        |  servers might simply refuse the connection.
const StatusServiceUnavailable = http.StatusServiceUnavailable
