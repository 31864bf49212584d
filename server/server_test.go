package server

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httpfromtcp/internal/headers"
	"httpfromtcp/internal/request"
	"httpfromtcp/internal/response"
)

func TestServerServesOverTCP(t *testing.T) {
	srv, err := New(Config{
		Host:       "127.0.0.1",
		Port:       0,
		MaxThreads: 2,
		MaxLoad:    10,
	}, func(req *request.Request) *response.Response {
		return response.New(response.StatusOK, headers.New(), []byte("pong"), "text/plain")
	})
	require.NoError(t, err)

	addr := srv.acceptor.Addr().String()

	runDone := make(chan int, 1)
	go func() { runDone <- srv.Run() }()

	conn, err := net.DialTimeout("tcp", addr, time.Second)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("GET / HTTP/1.0\r\n\r\n"))
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.0 200 OK\r\n", line)

	require.NoError(t, srv.Close())

	select {
	case <-runDone:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}
}

func TestServerNewRejectsUnresolvableHost(t *testing.T) {
	_, err := New(Config{Host: "not a host", Port: 0}, func(req *request.Request) *response.Response {
		return nil
	})
	require.Error(t, err)
}
