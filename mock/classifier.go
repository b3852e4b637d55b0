package mock

import (
	"context"

	"github.com/akash-new/reviewscout"
)

var (
	_ reviewscout.Classifier     = (*Classifier)(nil)
	_ reviewscout.Arbiter        = (*Arbiter)(nil)
	_ reviewscout.KeywordMatcher = (*KeywordMatcher)(nil)
)

// Classifier is a mock implementation of reviewscout.Classifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, content string, platform reviewscout.Platform) reviewscout.Verdict
}

func (c *Classifier) Classify(ctx context.Context, content string, platform reviewscout.Platform) reviewscout.Verdict {
	return c.ClassifyFn(ctx, content, platform)
}

// Arbiter is a mock implementation of reviewscout.Arbiter.
type Arbiter struct {
	ArbitrateFn func(ctx context.Context, prompt string) (string, error)
}

func (a *Arbiter) Arbitrate(ctx context.Context, prompt string) (string, error) {
	return a.ArbitrateFn(ctx, prompt)
}

// KeywordMatcher is a mock implementation of reviewscout.KeywordMatcher.
type KeywordMatcher struct {
	MatchFn func(text string) []string
}

func (m *KeywordMatcher) Match(text string) []string {
	return m.MatchFn(text)
}
