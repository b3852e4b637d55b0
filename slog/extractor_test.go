package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/akash-new/reviewscout"
	"github.com/akash-new/reviewscout/mock"
	rsslog "github.com/akash-new/reviewscout/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor(t *testing.T) {
	t.Parallel()

	newInner := func(res *reviewscout.ExtractResult) *mock.Extractor {
		return &mock.Extractor{
			PlatformFn: func() reviewscout.Platform { return reviewscout.PlatformCourseReport },
			ExtractFn: func(page string, pageNum int) *reviewscout.ExtractResult {
				return res
			},
			NextPageFn: func(page string) (string, bool) {
				return "https://www.coursereport.com/schools/example?page=3", true
			},
		}
	}

	t.Run("logs strategy and review count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		res := &reviewscout.ExtractResult{
			Reviews:  []*reviewscout.Review{reviewscout.NewReview(reviewscout.PlatformCourseReport, 2)},
			Strategy: "review-container",
		}

		got := rsslog.NewLoggingExtractor(newInner(res), logger).Extract("<html></html>", 2)

		assert.Same(t, res, got)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, `platform="Course Report"`)
		assert.Contains(t, output, "page=2")
		assert.Contains(t, output, "strategy=review-container")
		assert.Contains(t, output, "reviews=1")
	})

	t.Run("warns on fallback", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		res := &reviewscout.ExtractResult{
			Reviews:  []*reviewscout.Review{reviewscout.NewReview(reviewscout.PlatformCourseReport, 1)},
			Strategy: "fallback",
			Fallback: true,
		}

		rsslog.NewLoggingExtractor(newInner(res), logger).Extract("Hello world", 1)

		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "fallback=true")
	})

	t.Run("delegates next page and platform", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		e := rsslog.NewLoggingExtractor(newInner(&reviewscout.ExtractResult{}), logger)

		next, ok := e.NextPage("<html></html>")

		require.True(t, ok)
		assert.Equal(t, "https://www.coursereport.com/schools/example?page=3", next)
		assert.Equal(t, reviewscout.PlatformCourseReport, e.Platform())
		assert.Contains(t, buf.String(), "next page")
	})
}
