package prometheus

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/akash-new/reviewscout"
)

var (
	_ reviewscout.Extractor  = (*Extractor)(nil)
	_ reviewscout.Classifier = (*Classifier)(nil)
	_ reviewscout.Arbiter    = (*Arbiter)(nil)
)

// Extractor counts the reviews produced by a wrapped Extractor.
type Extractor struct {
	next    reviewscout.Extractor
	metrics *Metrics
}

// NewExtractor wraps next.
func NewExtractor(next reviewscout.Extractor, m *Metrics) *Extractor {
	return &Extractor{next: next, metrics: m}
}

func (e *Extractor) Platform() reviewscout.Platform {
	return e.next.Platform()
}

func (e *Extractor) Extract(page string, pageNum int) *reviewscout.ExtractResult {
	res := e.next.Extract(page, pageNum)
	platform := label(string(e.next.Platform()))
	if len(res.Reviews) > 0 {
		e.metrics.ReviewsExtracted.WithLabelValues(platform, res.Strategy).Add(float64(len(res.Reviews)))
	}
	if res.Fallback {
		e.metrics.FallbackPages.WithLabelValues(platform).Inc()
	}
	return res
}

func (e *Extractor) NextPage(page string) (string, bool) {
	return e.next.NextPage(page)
}

// Classifier counts verdicts of a wrapped Classifier.
type Classifier struct {
	next    reviewscout.Classifier
	metrics *Metrics
}

// NewClassifier wraps next.
func NewClassifier(next reviewscout.Classifier, m *Metrics) *Classifier {
	return &Classifier{next: next, metrics: m}
}

func (c *Classifier) Classify(ctx context.Context, content string, platform reviewscout.Platform) reviewscout.Verdict {
	v := c.next.Classify(ctx, content, platform)
	c.metrics.Verdicts.WithLabelValues(label(string(platform)), string(v.Stage), strconv.FormatBool(v.Relevant)).Inc()
	return v
}

// Arbiter counts and times calls to a wrapped Arbiter.
type Arbiter struct {
	next    reviewscout.Arbiter
	metrics *Metrics
}

// NewArbiter wraps next.
func NewArbiter(next reviewscout.Arbiter, m *Metrics) *Arbiter {
	return &Arbiter{next: next, metrics: m}
}

func (a *Arbiter) Arbitrate(ctx context.Context, prompt string) (resp string, err error) {
	defer func(begin time.Time) {
		a.metrics.ArbitrationDuration.Observe(time.Since(begin).Seconds())
		outcome := OutcomeAnswered
		switch {
		case err != nil:
			outcome = OutcomeError
		case strings.TrimSpace(resp) == "":
			outcome = OutcomeEmpty
		}
		a.metrics.Arbitrations.WithLabelValues(outcome).Inc()
	}(time.Now())
	return a.next.Arbitrate(ctx, prompt)
}
