// Package http configures the HTTP transport shared by API calls and
// download streams, and classifies transport errors for retry decisions.
package http

import (
	"net"
	nethttp "net/http"

	"github.com/maqamstudio/maqamctl/internal/constants"
)

// ConfigureHTTPClient builds the HTTP client used underneath the API client.
// Connection setup and TLS handshakes get their own timeouts; the overall
// per-request deadline comes from the caller's context.
func ConfigureHTTPClient() *nethttp.Client {
	transport := &nethttp.Transport{
		Proxy: nethttp.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: constants.HTTPDialTimeout,
		}).DialContext,
		TLSHandshakeTimeout: constants.HTTPTLSHandshakeTimeout,
		IdleConnTimeout:     constants.HTTPIdleConnTimeout,
		MaxIdleConns:        10,
	}

	return &nethttp.Client{
		Transport: transport,
	}
}
