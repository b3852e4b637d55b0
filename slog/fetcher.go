// Package slog provides logging decorators for reviewscout services.
package slog

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/akash-new/reviewscout"
)

var _ reviewscout.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Successful fetches log at
// debug level; failures log at warn level with their error code.
type LoggingFetcher struct {
	next   reviewscout.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next reviewscout.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, rawURL string) (page string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"host", host(rawURL),
			"url", rawURL,
			"duration", time.Since(begin),
		}
		if err != nil {
			f.logger.WarnContext(ctx, "fetch failed", append(attrs, "code", reviewscout.ErrorCode(err), "error", err)...)
			return
		}
		f.logger.DebugContext(ctx, "fetched", append(attrs, "bytes", len(page))...)
	}(time.Now())
	return f.next.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
