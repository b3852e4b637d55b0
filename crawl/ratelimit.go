package crawl

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/akash-new/reviewscout"
	"golang.org/x/time/rate"
)

var _ reviewscout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces requests to the same host by a minimum interval.
// Requests to different hosts do not wait on each other, so platforms
// crawled concurrently keep their own pace.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter returns a limiter allowing one request per interval per
// domain, without bursting. A non-positive interval disables limiting.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the domain's next request slot. It returns an error if
// the context is canceled first.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Domain returns the host of rawURL, or rawURL itself when it has none.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Hostname()
}
