// Package uri implements the Uri data model from SPEC_FULL.md §4.4: an
// opaque raw string with derived views (query map, absolute path,
// segments, parent path) and percent-decoding. No component here
// validates or normalizes the raw string beyond what each accessor
// documents — this mirrors the original source's Http::Uri, which never
// rejects a URI at parse time.
package uri

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidEscape is returned by Decode when a '%' is not followed by
// exactly two hex digits.
var ErrInvalidEscape = errors.New("uri: invalid percent-escape")

// Uri wraps a raw, still percent-encoded URI string.
type Uri string

// Raw returns the URI exactly as received.
func (u Uri) Raw() string {
	return string(u)
}

// AbsolutePath returns the prefix of the URI before the first '?', i.e.
// the path with any query string removed. The path is not decoded.
func (u Uri) AbsolutePath() string {
	s := string(u)
	if idx := strings.IndexByte(s, '?'); idx != -1 {
		return s[:idx]
	}
	return s
}

// Segments tokenizes AbsolutePath() on '/'. Segments are not decoded.
// A leading '/' produces a leading empty segment, matching the split
// semantics the parent() computation in SPEC_FULL.md §4.4 relies on.
func (u Uri) Segments() []string {
	return strings.Split(u.AbsolutePath(), "/")
}

// Parent drops the trailing path segment and returns the path up to the
// last segment. For "/foo/bar" it returns "/foo"; for "/foo/bar/" (which
// has a trailing empty segment from the trailing slash) it returns
// "/foo/bar", matching the trailing-slash-sensitive behavior documented
// in spec.md §4.4.
func (u Uri) Parent() string {
	segs := u.Segments()
	if len(segs) == 0 {
		return ""
	}
	return strings.Join(segs[:len(segs)-1], "/")
}

// Query splits the URI once at the first '?', then splits the remainder
// on '&' and each pair on '='. No decoding is applied and duplicate keys
// overwrite earlier values, per spec.md §4.4.
func (u Uri) Query() map[string]string {
	s := string(u)
	idx := strings.IndexByte(s, '?')
	result := make(map[string]string)
	if idx == -1 {
		return result
	}
	raw := s[idx+1:]
	if raw == "" {
		return result
	}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		if eq := strings.IndexByte(pair, '='); eq != -1 {
			result[pair[:eq]] = pair[eq+1:]
		} else {
			result[pair] = ""
		}
	}
	return result
}

// Decode turns percent-encoded bytes and '+' into their literal
// characters. It fails if a '%' is not followed by two hex digits.
func Decode(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '+':
			b.WriteByte(' ')
		case '%':
			if i+2 >= len(s) {
				return "", ErrInvalidEscape
			}
			v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return "", ErrInvalidEscape
			}
			b.WriteByte(byte(v))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}
