package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/akash-new/reviewscout"
	"github.com/akash-new/reviewscout/bloom"
	"github.com/akash-new/reviewscout/crawl"
	"github.com/akash-new/reviewscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listing serves pages "page=1".."page=n" of a platform; each page holds
// two reviews and links to the next page.
type listing struct {
	mu      sync.Mutex
	fetched []string
	pages   int
}

func (l *listing) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			l.mu.Lock()
			defer l.mu.Unlock()
			l.fetched = append(l.fetched, url)
			return url, nil
		},
	}
}

func (l *listing) extractor(platform reviewscout.Platform) *mock.Extractor {
	return &mock.Extractor{
		PlatformFn: func() reviewscout.Platform { return platform },
		ExtractFn: func(page string, pageNum int) *reviewscout.ExtractResult {
			var reviews []*reviewscout.Review
			for i := range 2 {
				r := reviewscout.NewReview(platform, pageNum)
				r.ReviewerName = fmt.Sprintf("reviewer %d-%d", pageNum, i)
				r.ReviewContent = "The mock interviews at Interview Kickstart were useful."
				reviews = append(reviews, r)
			}
			return &reviewscout.ExtractResult{Reviews: reviews, Strategy: "container"}
		},
		NextPageFn: func(page string) (string, bool) {
			var n int
			_, _ = fmt.Sscanf(page[strings.LastIndex(page, "=")+1:], "%d", &n)
			if n >= l.pages {
				return "", false
			}
			return fmt.Sprintf("?page=%d", n+1), true
		},
	}
}

func TestCrawler_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("follows pages in order until the last page", func(t *testing.T) {
		t.Parallel()

		l := &listing{pages: 3}
		c := &crawl.Crawler{RetryDelays: []time.Duration{}}

		result := c.Crawl(context.Background(), crawl.Target{
			URL:       "https://www.coursereport.com/reviews?page=1",
			Fetcher:   l.fetcher(),
			Extractor: l.extractor(reviewscout.PlatformCourseReport),
		}, nil)

		require.NoError(t, result.Err)
		assert.Equal(t, reviewscout.PlatformCourseReport, result.Platform)
		assert.Equal(t, 3, result.Pages)
		assert.Equal(t, []string{
			"https://www.coursereport.com/reviews?page=1",
			"https://www.coursereport.com/reviews?page=2",
			"https://www.coursereport.com/reviews?page=3",
		}, l.fetched)
		require.Len(t, result.Reviews, 6)
		for i, r := range result.Reviews {
			assert.Equal(t, i/2+1, r.Page)
		}
	})

	t.Run("stops at max pages", func(t *testing.T) {
		t.Parallel()

		l := &listing{pages: 10}
		c := &crawl.Crawler{MaxPages: 2, RetryDelays: []time.Duration{}}

		result := c.Crawl(context.Background(), crawl.Target{
			URL:       "https://www.trustpilot.com/review/x?page=1",
			Fetcher:   l.fetcher(),
			Extractor: l.extractor(reviewscout.PlatformTrustpilot),
		}, nil)

		assert.Equal(t, 2, result.Pages)
		assert.Len(t, l.fetched, 2)
	})

	t.Run("stops on a page without reviews", func(t *testing.T) {
		t.Parallel()

		l := &listing{pages: 5}
		ext := l.extractor(reviewscout.PlatformTrustpilot)
		ext.ExtractFn = func(page string, pageNum int) *reviewscout.ExtractResult {
			return &reviewscout.ExtractResult{}
		}
		c := &crawl.Crawler{RetryDelays: []time.Duration{}}

		result := c.Crawl(context.Background(), crawl.Target{
			URL:       "https://www.trustpilot.com/review/x?page=1",
			Fetcher:   l.fetcher(),
			Extractor: ext,
		}, nil)

		assert.Equal(t, 1, result.Pages)
		assert.Empty(t, result.Reviews)
	})

	t.Run("stops on a pagination loop", func(t *testing.T) {
		t.Parallel()

		l := &listing{pages: 5}
		ext := l.extractor(reviewscout.PlatformTrustpilot)
		ext.NextPageFn = func(page string) (string, bool) { return "?page=1", true }
		c := &crawl.Crawler{RetryDelays: []time.Duration{}, Seen: bloom.NewFilter(100, 0.001)}

		result := c.Crawl(context.Background(), crawl.Target{
			URL:       "https://www.trustpilot.com/review/x?page=1",
			Fetcher:   l.fetcher(),
			Extractor: ext,
		}, nil)

		assert.Equal(t, 1, result.Pages)
		assert.NoError(t, result.Err)
	})

	t.Run("keeps reviews gathered before a fetch failure", func(t *testing.T) {
		t.Parallel()

		l := &listing{pages: 5}
		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				calls++
				if calls > 1 {
					return "", reviewscout.Errorf(reviewscout.ENOTFOUND, "HTTP 404 for %s", url)
				}
				return url, nil
			},
		}
		c := &crawl.Crawler{RetryDelays: []time.Duration{time.Millisecond}}

		var events []crawl.ProgressEvent
		result := c.Crawl(context.Background(), crawl.Target{
			URL:       "https://www.coursereport.com/reviews?page=1",
			Fetcher:   fetcher,
			Extractor: l.extractor(reviewscout.PlatformCourseReport),
		}, func(e crawl.ProgressEvent) { events = append(events, e) })

		assert.Equal(t, reviewscout.ENOTFOUND, reviewscout.ErrorCode(result.Err))
		assert.Len(t, result.Reviews, 2)
		assert.Equal(t, 2, calls, "404 is not retried")
		require.Len(t, events, 2)
		assert.NoError(t, events[0].Error)
		assert.Equal(t, 2, events[0].Reviews)
		assert.Error(t, events[1].Error)
		assert.Equal(t, 2, events[1].Page)
	})

	t.Run("suppresses reviews repeated across pages", func(t *testing.T) {
		t.Parallel()

		l := &listing{pages: 3}
		ext := l.extractor(reviewscout.PlatformTrustpilot)
		ext.ExtractFn = func(page string, pageNum int) *reviewscout.ExtractResult {
			r := reviewscout.NewReview(reviewscout.PlatformTrustpilot, pageNum)
			r.ReviewerName = "Same Person"
			r.ReviewContent = "Pinned review shown on every page."
			return &reviewscout.ExtractResult{Reviews: []*reviewscout.Review{r}}
		}
		c := &crawl.Crawler{RetryDelays: []time.Duration{}, Seen: bloom.NewFilter(100, 0.001)}

		result := c.Crawl(context.Background(), crawl.Target{
			URL:       "https://www.trustpilot.com/review/x?page=1",
			Fetcher:   l.fetcher(),
			Extractor: ext,
		}, nil)

		assert.Equal(t, 3, result.Pages)
		require.Len(t, result.Reviews, 1)
		assert.Equal(t, 1, result.Reviews[0].Page)
		assert.Equal(t, 2, result.Duplicates)
	})

	t.Run("labels and stores reviews", func(t *testing.T) {
		t.Parallel()

		l := &listing{pages: 1}
		var stored []*reviewscout.Review
		c := &crawl.Crawler{
			RetryDelays: []time.Duration{},
			Classifier: &mock.Classifier{
				ClassifyFn: func(_ context.Context, content string, platform reviewscout.Platform) reviewscout.Verdict {
					return reviewscout.Verdict{Relevant: true, Stage: reviewscout.StageTheme, Reason: "theme"}
				},
			},
			Reviews: &mock.ReviewService{
				CreateReviewsFn: func(_ context.Context, reviews []*reviewscout.Review) (int, error) {
					stored = reviews
					return 1, nil
				},
			},
		}

		result := c.Crawl(context.Background(), crawl.Target{
			URL:       "https://www.coursereport.com/reviews?page=1",
			Fetcher:   l.fetcher(),
			Extractor: l.extractor(reviewscout.PlatformCourseReport),
		}, nil)

		require.NoError(t, result.Err)
		assert.Equal(t, 1, result.Inserted)
		assert.Equal(t, 2, result.Stats.Relevant)
		assert.Equal(t, 2, result.Stats.Stages[reviewscout.StageTheme])
		require.Len(t, stored, 2)
		for _, r := range stored {
			require.NotNil(t, r.Relevant)
			assert.True(t, *r.Relevant)
		}
	})

	t.Run("reports storage errors", func(t *testing.T) {
		t.Parallel()

		l := &listing{pages: 1}
		c := &crawl.Crawler{
			RetryDelays: []time.Duration{},
			Reviews: &mock.ReviewService{
				CreateReviewsFn: func(_ context.Context, _ []*reviewscout.Review) (int, error) {
					return 0, errors.New("disk full")
				},
			},
		}

		result := c.Crawl(context.Background(), crawl.Target{
			URL:       "https://www.coursereport.com/reviews?page=1",
			Fetcher:   l.fetcher(),
			Extractor: l.extractor(reviewscout.PlatformCourseReport),
		}, nil)

		require.EqualError(t, result.Err, "disk full")
		assert.Len(t, result.Reviews, 2)
	})

	t.Run("waits on the rate limiter per page", func(t *testing.T) {
		t.Parallel()

		l := &listing{pages: 2}
		var domains []string
		c := &crawl.Crawler{
			RetryDelays: []time.Duration{},
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					domains = append(domains, domain)
					return nil
				},
			},
		}

		c.Crawl(context.Background(), crawl.Target{
			URL:       "https://www.coursereport.com/reviews?page=1",
			Fetcher:   l.fetcher(),
			Extractor: l.extractor(reviewscout.PlatformCourseReport),
		}, nil)

		assert.Equal(t, []string{"www.coursereport.com", "www.coursereport.com"}, domains)
	})

	t.Run("sleeps between pages and honours cancellation", func(t *testing.T) {
		t.Parallel()

		l := &listing{pages: 3}
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		c := &crawl.Crawler{RetryDelays: []time.Duration{}, RequestDelay: time.Hour}

		result := c.Crawl(ctx, crawl.Target{
			URL:       "https://www.coursereport.com/reviews?page=1",
			Fetcher:   l.fetcher(),
			Extractor: l.extractor(reviewscout.PlatformCourseReport),
		}, nil)

		assert.ErrorIs(t, result.Err, context.DeadlineExceeded)
		assert.Equal(t, 1, result.Pages)
	})
}

func TestCrawler_CrawlAll(t *testing.T) {
	t.Parallel()

	t.Run("returns results in target order", func(t *testing.T) {
		t.Parallel()

		cr := &listing{pages: 2}
		tp := &listing{pages: 1}
		c := &crawl.Crawler{RetryDelays: []time.Duration{}, Concurrency: 2}

		results, err := c.CrawlAll(context.Background(), []crawl.Target{
			{URL: "https://www.coursereport.com/reviews?page=1", Fetcher: cr.fetcher(), Extractor: cr.extractor(reviewscout.PlatformCourseReport)},
			{URL: "https://www.trustpilot.com/review/x?page=1", Fetcher: tp.fetcher(), Extractor: tp.extractor(reviewscout.PlatformTrustpilot)},
		}, nil)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, reviewscout.PlatformCourseReport, results[0].Platform)
		assert.Len(t, results[0].Reviews, 4)
		assert.Equal(t, reviewscout.PlatformTrustpilot, results[1].Platform)
		assert.Len(t, results[1].Reviews, 2)
	})

	t.Run("one failing platform does not stop the others", func(t *testing.T) {
		t.Parallel()

		ok := &listing{pages: 1}
		failing := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", reviewscout.Errorf(reviewscout.EINVALID, "bad url")
			},
		}
		c := &crawl.Crawler{RetryDelays: []time.Duration{}}

		results, err := c.CrawlAll(context.Background(), []crawl.Target{
			{URL: "https://www.coursereport.com/reviews?page=1", Fetcher: failing, Extractor: ok.extractor(reviewscout.PlatformCourseReport)},
			{URL: "https://www.trustpilot.com/review/x?page=1", Fetcher: ok.fetcher(), Extractor: ok.extractor(reviewscout.PlatformTrustpilot)},
		}, nil)

		require.NoError(t, err)
		assert.Error(t, results[0].Err)
		assert.NoError(t, results[1].Err)
		assert.Len(t, results[1].Reviews, 2)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		l := &listing{pages: 1}
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, _ string) (string, error) { return "", ctx.Err() },
		}
		c := &crawl.Crawler{RetryDelays: []time.Duration{}}

		_, err := c.CrawlAll(ctx, []crawl.Target{
			{URL: "https://www.trustpilot.com/review/x?page=1", Fetcher: fetcher, Extractor: l.extractor(reviewscout.PlatformTrustpilot)},
		}, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
