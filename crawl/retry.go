package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/akash-new/reviewscout"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches url, retrying after each of delays. Errors coded
// EINVALID or ENOTFOUND are permanent and returned without retrying.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		page, err := fetch(ctx, url)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if attempt == len(delays) || !retryable(err) {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		logger.Debug("retry", "url", url, "attempt", attempt+2, "error", err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	switch reviewscout.ErrorCode(err) {
	case reviewscout.EINVALID, reviewscout.ENOTFOUND:
		return false
	}
	return true
}
