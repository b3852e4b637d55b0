package reviewscout

import "context"

// Fetcher retrieves raw page snapshots from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch returns the raw content at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (page string, err error)

	// Close releases fetcher resources.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
