// Package httpparser implements the octet-at-a-time request-line and
// header finite-state machine described in SPEC_FULL.md §4.1, ported
// state-for-state from the original Http::RequestParser::consume.
package httpparser

import (
	"errors"
	"strconv"
	"strings"

	"httpfromtcp/internal/request"
	"httpfromtcp/internal/uri"
)

// Result is the verdict of a single consume or Parse call.
type Result int

const (
	// Indeterminate means the input consumed so far contains no syntax
	// error but the request line/headers are not yet complete.
	Indeterminate Result = iota
	// Good means the request line and headers parsed completely and
	// without error.
	Good
	// Bad means a syntax error was found; the connection must respond
	// 400 and close.
	Bad
)

type state int

const (
	stateMethodStart state = iota
	stateMethod
	stateURI
	stateHTTPVersionH
	stateHTTPVersionT1
	stateHTTPVersionT2
	stateHTTPVersionP
	stateHTTPVersionSlash
	stateHTTPVersionMajorStart
	stateHTTPVersionMajor
	stateHTTPVersionMinorStart
	stateHTTPVersionMinor
	stateExpectingNewline1
	stateHeaderLineStart
	stateHeaderLws
	stateHeaderName
	stateSpaceBeforeHeaderValue
	stateHeaderValue
	stateExpectingNewline2
	stateExpectingNewline3
)

// Parser is a deterministic finite-state machine over one octet at a
// time. Its zero value is not ready for use; call New.
type Parser struct {
	state state

	method strings.Builder
	uri    strings.Builder

	versionMajor int
	versionMinor int

	pendingName  strings.Builder
	pendingValue strings.Builder
	hasPending   bool
}

// New returns a Parser in state MethodStart (invariant I1).
func New() *Parser {
	return &Parser{}
}

// Reset returns the parser to state MethodStart, ready to parse a new
// request (invariant I1).
func (p *Parser) Reset() {
	*p = Parser{}
}

func isChar(c byte) bool    { return c <= 127 }
func isControl(c byte) bool { return c <= 31 || c == 127 }
func isDigit(c byte) bool   { return c >= '0' && c <= '9' }

func isSpecial(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '@', ',', ';', ':', '\\', '"', '/', '[', ']', '?', '=', '{', '}', ' ', '\t':
		return true
	default:
		return false
	}
}

// Parse consumes octets from data, feeding req, until a terminal verdict
// is reached or data is exhausted. It returns the verdict and the index
// of the first unconsumed octet — the caller resumes a subsequent call
// from there (P1: terminal verdict within len(data)+1 steps; P2: equal
// to parsing byte-by-byte across many calls).
func (p *Parser) Parse(data []byte, req *request.Request) (Result, int) {
	for i, c := range data {
		result := p.consume(c, req)
		if result != Indeterminate {
			return result, i + 1
		}
	}
	return Indeterminate, len(data)
}

func (p *Parser) consume(c byte, req *request.Request) Result {
	switch p.state {
	case stateMethodStart:
		if !isChar(c) || isControl(c) || isSpecial(c) {
			return Bad
		}
		p.method.WriteByte(c)
		p.state = stateMethod
		return Indeterminate

	case stateMethod:
		if c == ' ' {
			req.Method = p.method.String()
			p.state = stateURI
			return Indeterminate
		}
		if !isChar(c) || isControl(c) || isSpecial(c) {
			return Bad
		}
		p.method.WriteByte(c)
		return Indeterminate

	case stateURI:
		if c == ' ' {
			req.URI = uri.Uri(p.uri.String())
			p.state = stateHTTPVersionH
			return Indeterminate
		}
		if isControl(c) {
			return Bad
		}
		p.uri.WriteByte(c)
		return Indeterminate

	case stateHTTPVersionH:
		if c != 'H' {
			return Bad
		}
		p.state = stateHTTPVersionT1
		return Indeterminate

	case stateHTTPVersionT1:
		if c != 'T' {
			return Bad
		}
		p.state = stateHTTPVersionT2
		return Indeterminate

	case stateHTTPVersionT2:
		if c != 'T' {
			return Bad
		}
		p.state = stateHTTPVersionP
		return Indeterminate

	case stateHTTPVersionP:
		if c != 'P' {
			return Bad
		}
		p.state = stateHTTPVersionSlash
		return Indeterminate

	case stateHTTPVersionSlash:
		if c != '/' {
			return Bad
		}
		p.versionMajor, p.versionMinor = 0, 0
		p.state = stateHTTPVersionMajorStart
		return Indeterminate

	case stateHTTPVersionMajorStart:
		if !isDigit(c) {
			return Bad
		}
		p.versionMajor = p.versionMajor*10 + int(c-'0')
		p.state = stateHTTPVersionMajor
		return Indeterminate

	case stateHTTPVersionMajor:
		if c == '.' {
			p.state = stateHTTPVersionMinorStart
			return Indeterminate
		}
		if !isDigit(c) {
			return Bad
		}
		p.versionMajor = p.versionMajor*10 + int(c-'0')
		return Indeterminate

	case stateHTTPVersionMinorStart:
		if !isDigit(c) {
			return Bad
		}
		p.versionMinor = p.versionMinor*10 + int(c-'0')
		p.state = stateHTTPVersionMinor
		return Indeterminate

	case stateHTTPVersionMinor:
		if c == '\r' {
			req.Version = request.Version{Major: p.versionMajor, Minor: p.versionMinor}
			p.state = stateExpectingNewline1
			return Indeterminate
		}
		if !isDigit(c) {
			return Bad
		}
		p.versionMinor = p.versionMinor*10 + int(c-'0')
		return Indeterminate

	case stateExpectingNewline1:
		if c != '\n' {
			return Bad
		}
		p.state = stateHeaderLineStart
		return Indeterminate

	case stateHeaderLineStart:
		if c == '\r' {
			p.flushPending(req)
			p.state = stateExpectingNewline3
			return Indeterminate
		}
		if p.hasPending && (c == ' ' || c == '\t') {
			p.state = stateHeaderLws
			return Indeterminate
		}
		if !isChar(c) || isControl(c) || isSpecial(c) {
			return Bad
		}
		p.flushPending(req)
		p.hasPending = true
		p.pendingName.WriteByte(c)
		p.state = stateHeaderName
		return Indeterminate

	case stateHeaderLws:
		if c == '\r' {
			p.state = stateExpectingNewline2
			return Indeterminate
		}
		if c == ' ' || c == '\t' {
			return Indeterminate
		}
		if isControl(c) {
			return Bad
		}
		// Folded continuation: append directly, no separator inserted
		// (see SPEC_FULL.md §9 — matches the original source).
		p.pendingValue.WriteByte(c)
		p.state = stateHeaderValue
		return Indeterminate

	case stateHeaderName:
		if c == ':' {
			p.state = stateSpaceBeforeHeaderValue
			return Indeterminate
		}
		if !isChar(c) || isControl(c) || isSpecial(c) {
			return Bad
		}
		p.pendingName.WriteByte(c)
		return Indeterminate

	case stateSpaceBeforeHeaderValue:
		if c != ' ' {
			return Bad
		}
		p.state = stateHeaderValue
		return Indeterminate

	case stateHeaderValue:
		if c == '\r' {
			p.state = stateExpectingNewline2
			return Indeterminate
		}
		if isControl(c) {
			return Bad
		}
		p.pendingValue.WriteByte(c)
		return Indeterminate

	case stateExpectingNewline2:
		if c != '\n' {
			return Bad
		}
		p.state = stateHeaderLineStart
		return Indeterminate

	case stateExpectingNewline3:
		if c != '\n' {
			return Bad
		}
		return Good

	default:
		return Bad
	}
}

func (p *Parser) flushPending(req *request.Request) {
	if !p.hasPending {
		return
	}
	req.Headers.Add(p.pendingName.String(), p.pendingValue.String())
	p.pendingName.Reset()
	p.pendingValue.Reset()
	p.hasPending = false
}

// ContentLength searches req.Headers for "Content-Length" (compared
// case-sensitively, per spec.md §9) and parses its value as a
// non-negative decimal integer. A missing header means length 0
// (invariant I2).
func ContentLength(req *request.Request) (int, error) {
	value, ok := req.Headers.Get("Content-Length")
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, errBadContentLength
	}
	return n, nil
}

var errBadContentLength = errors.New("httpparser: invalid Content-Length")

// Fill appends octets from data to req.Body up to Content-Length. It
// returns true once the body length equals that target (P3).
func Fill(data []byte, req *request.Request) (bool, error) {
	target, err := ContentLength(req)
	if err != nil {
		return false, err
	}
	if len(req.Body) >= target {
		return true, nil
	}
	remaining := target - len(req.Body)
	n := len(data)
	if n > remaining {
		n = remaining
	}
	req.Body = append(req.Body, data[:n]...)
	return len(req.Body) == target, nil
}
