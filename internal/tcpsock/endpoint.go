package tcpsock

import (
	"net"
	"strconv"
)

// Endpoint is a resolved host/port pair, grounded on Http::Endpoint in
// source/Socket.h.
type Endpoint struct {
	Host string
	Port int
}

// Address formats the endpoint as a net.Dial/net.Listen address string.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// Resolve validates host/port and returns the Endpoint. Resolution
// failures (unparsable host, out-of-range port) surface as
// EndpointError.
func Resolve(host string, port int) (Endpoint, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	if _, err := net.ResolveTCPAddr("tcp", addr); err != nil {
		return Endpoint{}, &EndpointError{Op: "resolve", Err: err}
	}
	return Endpoint{Host: host, Port: port}, nil
}
