package ownhttp

import (
	"net"
	"net/http"
	"time"
)

// UserAgent is sent with every request made by clients of this package
var UserAgent = "tinkaros (https://github.com/evergales/tinkaros)"

// New returns a new http.Client with the AddHeaderTransport (setting the User-Agent header)
func New() *http.Client {
	return &http.Client{Transport: NewAddHeaderTransport(nil)}
}

// NewThrottled returns a http.Client that sets the User-Agent header and allows
// at most `perSecond` requests per second and host (with the given burst)
func NewThrottled(perSecond float64, burst int) *http.Client {
	return &http.Client{
		Transport: NewThrottleTransport(NewAddHeaderTransport(nil), perSecond, burst),
		Timeout:   60 * time.Second,
	}
}

// NewDownloadClient returns a client tuned for large file downloads.
// There is no overall timeout, only for connecting and the response headers
func NewDownloadClient() *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConnsPerHost:   16,
		TLSHandshakeTimeout:   20 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: NewAddHeaderTransport(transport)}
}
