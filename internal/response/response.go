// Package response implements the Response data model and wire builder
// from SPEC_FULL.md §4.3 and §6.
package response

import (
	"fmt"
	"strconv"
	"strings"

	"httpfromtcp/internal/headers"
)

// StatusCode is one of the closed set of HTTP status codes recognised by
// this runtime (spec.md §6).
type StatusCode int

const (
	StatusContinue            StatusCode = 100
	StatusSwitchingProtocols  StatusCode = 101
	StatusOK                  StatusCode = 200
	StatusCreated             StatusCode = 201
	StatusAccepted            StatusCode = 202
	StatusNonAuthoritative    StatusCode = 203
	StatusNoContent           StatusCode = 204
	StatusResetContent        StatusCode = 205
	StatusPartialContent      StatusCode = 206
	StatusMultipleChoices     StatusCode = 300
	StatusMovedPermanently    StatusCode = 301
	StatusFound               StatusCode = 302
	StatusSeeOther            StatusCode = 303
	StatusNotModified         StatusCode = 304
	StatusUseProxy            StatusCode = 305
	StatusTemporaryRedirect   StatusCode = 307
	StatusBadRequest          StatusCode = 400
	StatusUnauthorized        StatusCode = 401
	StatusPaymentRequired     StatusCode = 402
	StatusForbidden           StatusCode = 403
	StatusNotFound            StatusCode = 404
	StatusMethodNotAllowed    StatusCode = 405
	StatusNotAcceptable       StatusCode = 406
	StatusProxyAuthRequired   StatusCode = 407
	StatusRequestTimeout      StatusCode = 408
	StatusConflict            StatusCode = 409
	StatusGone                StatusCode = 410
	StatusLengthRequired      StatusCode = 411
	StatusPreconditionFailed  StatusCode = 412
	StatusRequestEntityLarge  StatusCode = 413
	StatusRequestURITooLong   StatusCode = 414
	StatusUnsupportedMedia    StatusCode = 415
	StatusRangeNotSatisfiable StatusCode = 416
	StatusExpectationFailed   StatusCode = 417
	StatusInternalServerError StatusCode = 500
	StatusNotImplemented      StatusCode = 501
	StatusBadGateway          StatusCode = 502
	StatusServiceUnavailable  StatusCode = 503
	StatusGatewayTimeout      StatusCode = 504
	StatusHTTPVersionUnsup    StatusCode = 505
)

// reasonPhrases carries a stock reason phrase only for the codes
// spec.md §6 explicitly names one for; the remainder are present above
// in the enumeration but have no stock mapping, matching §6 exactly.
var reasonPhrases = map[StatusCode]string{
	StatusOK:                  "OK",
	StatusCreated:             "Created",
	StatusAccepted:            "Accepted",
	StatusNoContent:           "No Content",
	StatusMultipleChoices:     "Multiple Choices",
	StatusMovedPermanently:    "Moved Permanently",
	StatusFound:               "Found",
	StatusNotModified:         "Not Modified",
	StatusBadRequest:          "Bad request",
	StatusUnauthorized:        "Unauthorized",
	StatusForbidden:           "Forbidden",
	StatusNotFound:            "Not Found",
	StatusInternalServerError: "Internal Server Error",
	StatusNotImplemented:      "Not Implemented",
	StatusBadGateway:          "Bad Gateway",
	StatusServiceUnavailable:  "Service Unavailable",
}

// httpVersion is fixed: this runtime only ever speaks HTTP/1.0 on the
// wire (spec.md §1 Non-goals exclude HTTP/1.1 keep-alive/chunking).
const httpVersion = "HTTP/1.0"

const crlf = "\r\n"

// Response is the status code, ordered header list, and body produced
// by a request.Handler.
type Response struct {
	Status  StatusCode
	Headers headers.Headers
	Body    []byte
}

// New builds a Response. If body is non-empty, Content-Length and
// Content-Type headers are appended automatically (invariant I3); an
// empty body carries neither.
func New(status StatusCode, h headers.Headers, body []byte, contentType string) *Response {
	if len(body) > 0 {
		h.Add("Content-Length", strconv.Itoa(len(body)))
		if contentType == "" {
			contentType = "text/plain"
		}
		h.Add("Content-Type", contentType)
	}
	return &Response{Status: status, Headers: h, Body: body}
}

// Reason returns the stock reason phrase for r.Status, or "Unknown" if
// r.Status has no stock mapping (spec.md §6).
func (r *Response) Reason() string {
	if phrase, ok := reasonPhrases[r.Status]; ok {
		return phrase
	}
	return "Unknown"
}

// Raw serializes the status line, headers, blank-line separator, and
// body to wire bytes (P4).
func (r *Response) Raw() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d %s%s", httpVersion, int(r.Status), r.Reason(), crlf)
	for _, h := range r.Headers.All() {
		fmt.Fprintf(&b, "%s: %s%s", h.Name, h.Value, crlf)
	}
	b.WriteString(crlf)
	out := make([]byte, 0, b.Len()+len(r.Body))
	out = append(out, b.String()...)
	out = append(out, r.Body...)
	return out
}

// Stock constructs a status-line-only message for protocol errors
// (spec.md §4.3, the "stock response" helper). It fails — by returning
// an error — if asked to render a status with no stock reason-phrase
// mapping, since the caller has no body to fall back on.
func Stock(status StatusCode) ([]byte, error) {
	reason, ok := reasonPhrases[status]
	if !ok {
		return nil, fmt.Errorf("response: no stock reason phrase for status %d", int(status))
	}
	return []byte(fmt.Sprintf("%s %d %s%s", httpVersion, int(status), reason, crlf)), nil
}
