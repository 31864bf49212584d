package httpparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httpfromtcp/internal/request"
)

func TestParseMinimalGetRequest(t *testing.T) {
	p := New()
	req := request.New()
	data := []byte("GET / HTTP/1.0\r\n\r\n")

	result, n := p.Parse(data, req)

	require.Equal(t, Good, result)
	assert.Equal(t, len(data), n)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/", req.URI.Raw())
	assert.Equal(t, request.Version{Major: 1, Minor: 0}, req.Version)
	assert.Equal(t, 0, req.Headers.Len())
}

func TestParseRequestWithHeaders(t *testing.T) {
	p := New()
	req := request.New()
	data := []byte("GET /foo HTTP/1.0\r\nHost: localhost:42069\r\nX-Person: some1\r\n\r\n")

	result, n := p.Parse(data, req)

	require.Equal(t, Good, result)
	assert.Equal(t, len(data), n)
	host, ok := req.Headers.Get("Host")
	require.True(t, ok)
	assert.Equal(t, "localhost:42069", host)
	person, ok := req.Headers.Get("X-Person")
	require.True(t, ok)
	assert.Equal(t, "some1", person)
}

func TestParseDuplicateHeaderNamesAreKeptSeparate(t *testing.T) {
	p := New()
	req := request.New()
	data := []byte("GET / HTTP/1.0\r\nX-Person: some1\r\nX-Person: some2\r\n\r\n")

	result, _ := p.Parse(data, req)

	require.Equal(t, Good, result)
	assert.Equal(t, []string{"some1", "some2"}, req.Headers.Values("X-Person"))
}

func TestParseMalformedMethodIsBad(t *testing.T) {
	p := New()
	req := request.New()
	data := []byte("G@T / HTTP/1.0\r\n\r\n")

	result, _ := p.Parse(data, req)

	assert.Equal(t, Bad, result)
}

func TestParseMissingHTTPSlashIsBad(t *testing.T) {
	p := New()
	req := request.New()
	data := []byte("GET / HTTPS/1.0\r\n\r\n")

	result, _ := p.Parse(data, req)

	assert.Equal(t, Bad, result)
}

func TestParseIsResumableAcrossByteRanges(t *testing.T) {
	p := New()
	req := request.New()
	full := []byte("GET /foo HTTP/1.0\r\nHost: x\r\n\r\n")

	var result Result
	for i := 0; i < len(full); i++ {
		var n int
		result, n = p.Parse(full[i:i+1], req)
		if result != Indeterminate {
			require.Equal(t, 1, n)
			break
		}
	}

	require.Equal(t, Good, result)
	assert.Equal(t, "GET", req.Method)
	host, ok := req.Headers.Get("Host")
	require.True(t, ok)
	assert.Equal(t, "x", host)
}

func TestParseHeaderFoldingJoinsWithoutSeparator(t *testing.T) {
	p := New()
	req := request.New()
	data := []byte("GET / HTTP/1.0\r\nX: a\r\n b\r\n\r\n")

	result, _ := p.Parse(data, req)

	require.Equal(t, Good, result)
	value, ok := req.Headers.Get("X")
	require.True(t, ok)
	assert.Equal(t, "ab", value, "folded continuation must not insert a separating space")
}

func TestContentLengthMissingHeaderIsZero(t *testing.T) {
	req := request.New()
	n, err := ContentLength(req)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestContentLengthParsesDecimal(t *testing.T) {
	req := request.New()
	req.Headers.Add("Content-Length", "13")
	n, err := ContentLength(req)
	require.NoError(t, err)
	assert.Equal(t, 13, n)
}

func TestContentLengthIsCaseSensitive(t *testing.T) {
	req := request.New()
	req.Headers.Add("content-length", "13")
	n, err := ContentLength(req)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "lowercase content-length must not match the case-sensitive lookup")
}

func TestContentLengthRejectsNegative(t *testing.T) {
	req := request.New()
	req.Headers.Add("Content-Length", "-1")
	_, err := ContentLength(req)
	require.Error(t, err)
}

func TestFillAccumulatesBodyToTarget(t *testing.T) {
	req := request.New()
	req.Headers.Add("Content-Length", "5")

	done, err := Fill([]byte("hel"), req)
	require.NoError(t, err)
	assert.False(t, done)

	done, err = Fill([]byte("lo"), req)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "hello", string(req.Body))
}

func TestFillIgnoresBytesPastTarget(t *testing.T) {
	req := request.New()
	req.Headers.Add("Content-Length", "3")

	done, err := Fill([]byte("hello"), req)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "hel", string(req.Body))
}

func TestResetReturnsParserToInitialState(t *testing.T) {
	p := New()
	req := request.New()
	p.Parse([]byte("GET / HTTP/1.0\r\n\r\n"), req)

	p.Reset()
	req2 := request.New()
	result, _ := p.Parse([]byte("POST /x HTTP/1.0\r\n\r\n"), req2)

	require.Equal(t, Good, result)
	assert.Equal(t, "POST", req2.Method)
}
