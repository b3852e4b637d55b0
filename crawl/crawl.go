// Package crawl walks the paginated review listings of each configured
// platform and turns them into labelled, deduplicated reviews.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/akash-new/reviewscout"
	"github.com/akash-new/reviewscout/bloom"
	"github.com/akash-new/reviewscout/relevance"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of platforms crawled at once.
const DefaultConcurrency = 4

// Target is one platform to crawl: where its listing starts, how to fetch
// it and how to read it.
type Target struct {
	URL       string
	Fetcher   reviewscout.Fetcher
	Extractor reviewscout.Extractor
}

// Crawler orchestrates fetching, extraction, labelling and storage. Every
// field is optional.
type Crawler struct {
	// Classifier labels reviews after each platform is crawled.
	Classifier reviewscout.Classifier

	// Reviews stores labelled reviews. Duplicates of stored reviews are
	// skipped by the store.
	Reviews reviewscout.ReviewService

	// Seen suppresses reviews repeated across pages within a run.
	Seen *bloom.Filter

	RateLimiter reviewscout.DomainLimiter

	// MaxPages caps the pages per platform. Zero means no cap.
	MaxPages int

	// RequestDelay is slept between consecutive pages of one platform.
	RequestDelay time.Duration

	Concurrency int
	RetryDelays []time.Duration
	Logger      *slog.Logger

	progressMu sync.Mutex
}

// Result holds the outcome of crawling one platform.
type Result struct {
	Platform reviewscout.Platform

	// Reviews are the new reviews in page order.
	Reviews []*reviewscout.Review

	Pages      int
	Duplicates int
	Inserted   int
	Stats      relevance.Stats

	// Err is the error that stopped the crawl early, if any. Reviews
	// gathered before the error are still returned.
	Err error
}

// ProgressEvent reports one processed page.
type ProgressEvent struct {
	Platform reviewscout.Platform
	Page     int
	URL      string
	Reviews  int
	Fallback bool
	Error    error
}

// ProgressFunc is a callback for reporting crawl progress. Calls are
// serialized even when platforms are crawled concurrently.
type ProgressFunc func(event ProgressEvent)

// CrawlAll crawls every target, running independent platforms concurrently.
// Results are returned in target order. A failing platform does not stop
// the others; its error is recorded in its Result.
func (c *Crawler) CrawlAll(ctx context.Context, targets []Target, progress ProgressFunc) ([]*Result, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*Result, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, target := range targets {
		g.Go(func() error {
			results[i] = c.Crawl(gctx, target, progress)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// Crawl walks one platform's listing from target.URL, following next-page
// links in order, then labels and stores what it found.
func (c *Crawler) Crawl(ctx context.Context, target Target, progress ProgressFunc) *Result {
	logger := c.logger()
	platform := target.Extractor.Platform()
	result := &Result{Platform: platform}

	visited := make(map[string]bool)
	pageURL := target.URL
	for page := 1; pageURL != "" && (c.MaxPages == 0 || page <= c.MaxPages); page++ {
		if page > 1 && c.RequestDelay > 0 {
			if err := sleep(ctx, c.RequestDelay); err != nil {
				result.Err = err
				break
			}
		}
		visited[pageURL] = true

		html, err := c.fetch(ctx, target.Fetcher, pageURL)
		if err != nil {
			result.Err = err
			c.notify(progress, ProgressEvent{Platform: platform, Page: page, URL: pageURL, Error: err})
			break
		}
		result.Pages++

		extracted := target.Extractor.Extract(html, page)
		c.notify(progress, ProgressEvent{
			Platform: platform,
			Page:     page,
			URL:      pageURL,
			Reviews:  len(extracted.Reviews),
			Fallback: extracted.Fallback,
		})
		if len(extracted.Reviews) == 0 {
			break
		}
		for _, r := range extracted.Reviews {
			if c.Seen != nil && c.Seen.Seen(r) {
				result.Duplicates++
				continue
			}
			result.Reviews = append(result.Reviews, r)
		}

		next, ok := target.Extractor.NextPage(html)
		if !ok {
			break
		}
		pageURL = resolve(pageURL, next)
		if visited[pageURL] {
			logger.Warn("pagination loop", "platform", platform, "url", pageURL)
			break
		}
	}

	if c.Classifier != nil {
		result.Stats = relevance.Label(ctx, c.Classifier, result.Reviews)
		logger.Info("labelled", "platform", platform, "verdicts", result.Stats)
	}

	if c.Reviews != nil && len(result.Reviews) > 0 {
		n, err := c.Reviews.CreateReviews(ctx, result.Reviews)
		if err != nil && result.Err == nil {
			result.Err = err
		}
		result.Inserted = n
	}

	logger.Info("crawled",
		"platform", platform,
		"pages", result.Pages,
		"reviews", len(result.Reviews),
		"duplicates", result.Duplicates,
		"inserted", result.Inserted,
		"error", result.Err,
	)
	return result
}

func (c *Crawler) fetch(ctx context.Context, fetcher reviewscout.Fetcher, pageURL string) (string, error) {
	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, Domain(pageURL)); err != nil {
			return "", err
		}
	}
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetry(ctx, pageURL, fetcher.Fetch, c.logger(), delays)
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Crawler) notify(progress ProgressFunc, event ProgressEvent) {
	if progress == nil {
		return
	}
	c.progressMu.Lock()
	defer c.progressMu.Unlock()
	progress(event)
}

// resolve returns next relative to base. Unparseable locators are returned
// unchanged.
func resolve(base, next string) string {
	b, err := url.Parse(base)
	if err != nil {
		return next
	}
	n, err := url.Parse(next)
	if err != nil {
		return next
	}
	return b.ResolveReference(n).String()
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
