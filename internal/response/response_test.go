package response

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httpfromtcp/internal/headers"
)

func TestNewOmitsContentHeadersForEmptyBody(t *testing.T) {
	r := New(StatusNoContent, headers.New(), nil, "")
	_, hasLength := r.Headers.Get("Content-Length")
	_, hasType := r.Headers.Get("Content-Type")
	assert.False(t, hasLength)
	assert.False(t, hasType)
}

func TestNewAddsContentHeadersForNonEmptyBody(t *testing.T) {
	r := New(StatusOK, headers.New(), []byte("hello"), "text/plain")
	length, ok := r.Headers.Get("Content-Length")
	require.True(t, ok)
	assert.Equal(t, "5", length)

	ct, ok := r.Headers.Get("Content-Type")
	require.True(t, ok)
	assert.Equal(t, "text/plain", ct)
}

func TestNewDefaultsContentTypeWhenBodyPresent(t *testing.T) {
	r := New(StatusOK, headers.New(), []byte("hi"), "")
	ct, ok := r.Headers.Get("Content-Type")
	require.True(t, ok)
	assert.Equal(t, "text/plain", ct)
}

func TestReasonFallsBackToUnknown(t *testing.T) {
	r := New(StatusPaymentRequired, headers.New(), nil, "")
	assert.Equal(t, "Unknown", r.Reason())
}

func TestRawSerializesStatusLineHeadersAndBody(t *testing.T) {
	h := headers.New()
	r := New(StatusOK, h, []byte("hi"), "text/plain")
	raw := string(r.Raw())

	require.True(t, strings.HasPrefix(raw, "HTTP/1.0 200 OK\r\n"))
	assert.Contains(t, raw, "Content-Length: 2\r\n")
	assert.Contains(t, raw, "Content-Type: text/plain\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\nhi"))
}

func TestStockReturnsStatusLineOnly(t *testing.T) {
	raw, err := Stock(StatusBadRequest)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.0 400 Bad request\r\n", string(raw))
}

func TestStockErrorsOnUnmappedStatus(t *testing.T) {
	_, err := Stock(StatusPaymentRequired)
	require.Error(t, err)
}
