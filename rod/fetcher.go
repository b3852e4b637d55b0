// Package rod fetches review pages that need JavaScript rendering using a
// headless Chrome browser.
package rod

import (
	"context"
	"time"

	"github.com/akash-new/reviewscout"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 30 * time.Second

// DefaultSettleTime is how long Fetch waits for the page to go idle after
// load, so that client-rendered review lists are present in the snapshot.
const DefaultSettleTime = 2 * time.Second

// Ensure Fetcher implements reviewscout.Fetcher at compile time.
var _ reviewscout.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML, one tab per page, from a headless
// browser that is replaced periodically.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager

	timeout   time.Duration
	settle    time.Duration
	userAgent string
	managerOp []ManagerOption
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettleTime sets how long to wait for the page to go idle after load.
// Zero skips the wait.
func WithSettleTime(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithUserAgent overrides the browser's user agent. Blank values are ignored.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRecycleAfter replaces the browser after it has opened n pages.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.managerOp = append(f.managerOp, WithPageBudget(n))
	}
}

// NewFetcher launches a headless browser and returns a Fetcher backed by it.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		settle:  DefaultSettleTime,
	}
	for _, opt := range opts {
		opt(f)
	}

	m, err := NewBrowserManager(f.managerOp...)
	if err != nil {
		return nil, err
	}
	f.manager = m

	return f, nil
}

// Fetch navigates to url and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.NewPage(ctx)
	if err != nil {
		return "", err
	}
	defer page.Close()

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", err
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if f.settle > 0 {
		if err := page.WaitIdle(f.settle); err != nil {
			return "", err
		}
	}

	return page.HTML()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
