package prometheus_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/akash-new/reviewscout"
	"github.com/akash-new/reviewscout/mock"
	rsprom "github.com/akash-new/reviewscout/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor(t *testing.T) {
	t.Parallel()

	m := rsprom.NewMetrics()
	results := []*reviewscout.ExtractResult{
		{
			Reviews:  []*reviewscout.Review{{}, {}, {}},
			Strategy: "review-card",
		},
		{
			Reviews:  []*reviewscout.Review{{}},
			Strategy: "fallback",
			Fallback: true,
		},
	}
	i := 0
	e := rsprom.NewExtractor(&mock.Extractor{
		PlatformFn: func() reviewscout.Platform { return reviewscout.PlatformCourseReport },
		ExtractFn: func(page string, pageNum int) *reviewscout.ExtractResult {
			defer func() { i++ }()
			return results[i]
		},
	}, m)

	e.Extract("one", 1)
	e.Extract("two", 2)

	assert.InDelta(t, 3, testutil.ToFloat64(m.ReviewsExtracted.WithLabelValues("course_report", "review-card")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ReviewsExtracted.WithLabelValues("course_report", "fallback")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FallbackPages.WithLabelValues("course_report")), 0)
}

func TestClassifier(t *testing.T) {
	t.Parallel()

	m := rsprom.NewMetrics()
	c := rsprom.NewClassifier(&mock.Classifier{
		ClassifyFn: func(ctx context.Context, content string, platform reviewscout.Platform) reviewscout.Verdict {
			return reviewscout.Verdict{Relevant: content == "yes", Stage: reviewscout.StageTheme}
		},
	}, m)

	v := c.Classify(context.Background(), "yes", reviewscout.PlatformTrustpilot)
	c.Classify(context.Background(), "no", reviewscout.PlatformTrustpilot)
	c.Classify(context.Background(), "no", reviewscout.PlatformTrustpilot)

	assert.True(t, v.Relevant)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Verdicts.WithLabelValues("trustpilot", "theme", "true")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Verdicts.WithLabelValues("trustpilot", "theme", "false")), 0)
}

func TestArbiter(t *testing.T) {
	t.Parallel()

	m := rsprom.NewMetrics()
	responses := []struct {
		resp string
		err  error
	}{
		{resp: "yes"},
		{resp: " "},
		{err: errors.New("unavailable")},
	}
	i := 0
	a := rsprom.NewArbiter(&mock.Arbiter{
		ArbitrateFn: func(ctx context.Context, prompt string) (string, error) {
			defer func() { i++ }()
			return responses[i].resp, responses[i].err
		},
	}, m)

	for range responses {
		_, _ = a.Arbitrate(context.Background(), "prompt")
	}

	assert.InDelta(t, 1, testutil.ToFloat64(m.Arbitrations.WithLabelValues(rsprom.OutcomeAnswered)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Arbitrations.WithLabelValues(rsprom.OutcomeEmpty)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Arbitrations.WithLabelValues(rsprom.OutcomeError)), 0)
	assert.Equal(t, 3, testutil.CollectAndCount(m.Arbitrations))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ArbitrationDuration))
}

func TestMetrics_WriteToTextfile(t *testing.T) {
	t.Parallel()

	m := rsprom.NewMetrics()
	m.FallbackPages.WithLabelValues("trustpilot").Inc()
	path := filepath.Join(t.TempDir(), "reviewscout.prom")

	require.NoError(t, m.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `reviewscout_fallback_pages_total{platform="trustpilot"} 1`)
}
