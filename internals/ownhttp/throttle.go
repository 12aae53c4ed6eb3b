package ownhttp

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// ThrottleTransport limits the request rate per host. Modrinth and CurseForge
// answer bursts with 429, both registry clients share one ThrottleTransport
type ThrottleTransport struct {
	T     http.RoundTripper
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// limiter returns the limiter of host, creating it on first use
func (tt *ThrottleTransport) limiter(host string) *rate.Limiter {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	l, ok := tt.limiters[host]
	if !ok {
		l = rate.NewLimiter(tt.limit, tt.burst)
		tt.limiters[host] = l
	}
	return l
}

func (tt *ThrottleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := tt.limiter(req.URL.Host).Wait(req.Context()); err != nil {
		return nil, err
	}
	return tt.T.RoundTrip(req)
}

// NewThrottleTransport allows `perSecond` requests per second and host with the given burst
func NewThrottleTransport(T http.RoundTripper, perSecond float64, burst int) *ThrottleTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &ThrottleTransport{
		T:        T,
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}
