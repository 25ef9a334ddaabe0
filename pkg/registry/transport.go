package registry

import (
	"context"
	"net"
	"net/http"
	"time"
)

// newTransport builds the HTTP transport shared by every registry call.
//
// Dialing is pinned to the tcp4 network: the registry deployment rejects
// IPv6 connection attempts at the connect level, and dual-stack hosts
// would otherwise try AAAA records first and fail.
func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, "tcp4", addr)
		},
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
