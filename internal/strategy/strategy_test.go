package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httpfromtcp/internal/pool"
	"httpfromtcp/internal/request"
	"httpfromtcp/internal/response"
)

type fakeConn struct {
	started chan struct{}
	aborted chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{started: make(chan struct{}, 1), aborted: make(chan struct{}, 1)}
}

func (c *fakeConn) Start() { c.started <- struct{}{} }
func (c *fakeConn) Abort() { c.aborted <- struct{}{} }

type fakeSocket struct {
	written []byte
}

func (s *fakeSocket) Write(p []byte) (int, error) {
	s.written = append(s.written, p...)
	return len(p), nil
}

func TestThreadedHandleInvokesConfiguredHandler(t *testing.T) {
	called := false
	handler := func(req *request.Request) *response.Response {
		called = true
		return nil
	}
	strat := NewThreaded(handler, pool.NewJobPool(1, 5))
	defer strat.pool.Close()

	strat.Handle(func(h request.Handler) { h(nil) })

	assert.True(t, called)
}

func TestThreadedStartRunsConnectionOnPool(t *testing.T) {
	strat := NewThreaded(nil, pool.NewJobPool(1, 5))
	defer strat.pool.Close()

	c := newFakeConn()
	strat.Start(c)

	select {
	case <-c.started:
	case <-time.After(time.Second):
		t.Fatal("expected Start to be scheduled promptly")
	}
}

func TestThreadedStartAbortsWhenPoolQueueIsFull(t *testing.T) {
	release := make(chan struct{})
	// maxLoad<=0 is promoted to the 500-job default by pool.New, so use
	// the smallest real maxLoad (1) instead — capacity is maxLoad+1 = 2.
	const maxLoad = 1
	p := pool.New[func()](1, maxLoad, func(job func()) { job() })
	defer func() {
		close(release)
		p.Close()
	}()
	started := make(chan struct{}, 1)
	require.True(t, p.Add(func() {
		started <- struct{}{}
		<-release
	}))
	<-started
	// The blocked job's own admission slot was already released back by
	// the worker on dequeue, so it takes maxLoad+1 further additions to
	// exhaust the semaphore before the next Add — including the one
	// Threaded.Start issues below — is rejected.
	for i := 0; i < maxLoad+1; i++ {
		require.True(t, p.Add(func() {}), "job %d should still fit within capacity", i)
	}
	require.False(t, p.Add(func() {}))

	strat := NewThreaded(nil, p)
	c := newFakeConn()
	strat.Start(c)

	select {
	case <-c.aborted:
	case <-time.After(time.Second):
		t.Fatal("expected Abort when the pool rejects the job")
	}
}

func TestThreadedRespondWritesStockStatusLine(t *testing.T) {
	strat := NewThreaded(nil, pool.NewJobPool(1, 5))
	defer strat.pool.Close()

	sock := &fakeSocket{}
	require.NoError(t, strat.Respond(sock, response.StatusBadRequest))
	assert.Equal(t, "HTTP/1.0 400 Bad request\r\n", string(sock.written))
}
