// Package relevance decides whether review content is about the subject of
// interest. A deterministic keyword screen runs first; an optional arbiter
// settles content that names the subject but matches no theme.
package relevance

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/akash-new/reviewscout"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var _ reviewscout.Classifier = (*Classifier)(nil)

var headingRE = regexp.MustCompile(`(?m)^#{1,6} `)

// MatcherFunc builds a keyword matcher over normalized keywords.
type MatcherFunc func(keywords []string) reviewscout.KeywordMatcher

// Classifier implements reviewscout.Classifier.
type Classifier struct {
	lexicon reviewscout.Lexicon
	policy  reviewscout.FilterPolicy
	arbiter reviewscout.Arbiter
	logger  *slog.Logger

	newMatcher MatcherFunc
	profile    reviewscout.KeywordMatcher
	names      reviewscout.KeywordMatcher
	themes     reviewscout.KeywordMatcher

	// abbreviations is nil when the lexicon has none.
	abbreviations *regexp.Regexp
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithPolicy sets which platforms are screened. By default every platform is.
func WithPolicy(p reviewscout.FilterPolicy) Option {
	return func(c *Classifier) {
		c.policy = p
	}
}

// WithArbiter enables arbitration of ambiguous content.
func WithArbiter(a reviewscout.Arbiter) Option {
	return func(c *Classifier) {
		c.arbiter = a
	}
}

// WithMatcher sets the keyword matcher implementation.
func WithMatcher(fn MatcherFunc) Option {
	return func(c *Classifier) {
		if fn != nil {
			c.newMatcher = fn
		}
	}
}

// WithLogger sets the logger used for arbitration failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClassifier returns a classifier tuned by lexicon.
func NewClassifier(lexicon reviewscout.Lexicon, opts ...Option) (*Classifier, error) {
	if err := lexicon.Validate(); err != nil {
		return nil, err
	}

	c := &Classifier{
		lexicon:    lexicon,
		policy:     reviewscout.FilterPolicy{Default: true},
		logger:     slog.New(slog.DiscardHandler),
		newMatcher: NewSubstringMatcher,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.profile = c.newMatcher(normalizeAll(lexicon.ProfileMarkers))
	c.names = c.newMatcher(normalizeAll(lexicon.Names))
	c.themes = c.newMatcher(normalizeAll(lexicon.ThemeKeywords()))

	if abbrs := normalizeAll(lexicon.Abbreviations); len(abbrs) > 0 {
		quoted := make([]string, len(abbrs))
		for i, a := range abbrs {
			quoted[i] = regexp.QuoteMeta(a)
		}
		// \b only knows ASCII word characters, so boundaries are spelled out.
		re, err := regexp.Compile(`(?:^|[^\p{L}\p{N}_])(` + strings.Join(quoted, "|") + `)(?:[^\p{L}\p{N}_]|$)`)
		if err != nil {
			return nil, reviewscout.Errorf(reviewscout.EINVALID, "invalid abbreviation: %v", err)
		}
		c.abbreviations = re
	}
	return c, nil
}

// Classify implements reviewscout.Classifier.
func (c *Classifier) Classify(ctx context.Context, content string, platform reviewscout.Platform) reviewscout.Verdict {
	if !c.policy.Applies(platform) {
		return reviewscout.Verdict{Relevant: true, Stage: reviewscout.StageBypass, Reason: "platform not filtered"}
	}

	text := Normalize(content)
	if strings.TrimSpace(text) == "" {
		return reviewscout.Verdict{Stage: reviewscout.StageNoReference, Reason: "empty content"}
	}

	if markers := c.profile.Match(text); len(markers) > 0 {
		return reviewscout.Verdict{Stage: reviewscout.StageProfile, Reason: "marker " + markers[0]}
	}
	if c.pageShaped(text) {
		return reviewscout.Verdict{Stage: reviewscout.StageProfile, Reason: "page-shaped content"}
	}

	ref, ok := c.reference(text)
	if !ok {
		return reviewscout.Verdict{Stage: reviewscout.StageNoReference}
	}

	if len(strings.Fields(text)) < c.lexicon.ShortContentTokens {
		return reviewscout.Verdict{Relevant: true, Stage: reviewscout.StageShort, Reason: "reference " + ref}
	}

	if kws := c.themes.Match(text); len(kws) > 0 {
		return reviewscout.Verdict{
			Relevant: true,
			Stage:    reviewscout.StageTheme,
			Reason:   fmt.Sprintf("theme %s: %s", c.lexicon.ThemeOf(kws[0]), kws[0]),
		}
	}

	tentative := reviewscout.Verdict{Stage: reviewscout.StageTheme, Reason: "no theme keyword"}
	return c.arbitrate(ctx, content, tentative)
}

// pageShaped reports whether text looks like a whole scraped page rather
// than a single review.
func (c *Classifier) pageShaped(text string) bool {
	p := c.lexicon.Profile
	if p.Words <= 0 {
		return false
	}
	return len(strings.Fields(text)) > p.Words &&
		strings.Count(text, "\n\n") > p.ParagraphBreaks &&
		len(headingRE.FindAllStringIndex(text, -1)) > p.Headings
}

// reference returns the first subject name or standalone abbreviation
// found in normalized text.
func (c *Classifier) reference(text string) (string, bool) {
	if names := c.names.Match(text); len(names) > 0 {
		return names[0], true
	}
	if c.abbreviations != nil {
		if m := c.abbreviations.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// arbitrate asks the arbiter to settle content the screen rejected. Any
// failure keeps the tentative verdict.
func (c *Classifier) arbitrate(ctx context.Context, content string, tentative reviewscout.Verdict) reviewscout.Verdict {
	if c.arbiter == nil {
		return tentative
	}

	resp, err := c.ask(ctx, BuildPrompt(c.lexicon, content))
	if err != nil {
		c.logger.Warn("arbitration failed", "error", err)
		return tentative
	}
	relevant, err := ParseAnswer(resp)
	if err != nil {
		c.logger.Warn("arbitration answer rejected", "error", err)
		return tentative
	}

	v := reviewscout.Verdict{Relevant: relevant, Stage: reviewscout.StageArbiter, Reason: "arbiter said no"}
	if relevant {
		v.Reason = "arbiter said yes"
	}
	return v
}

func (c *Classifier) ask(ctx context.Context, prompt string) (resp string, err error) {
	defer func() {
		if v := recover(); v != nil {
			resp, err = "", fmt.Errorf("arbiter panic: %v", v)
		}
	}()
	return c.arbiter.Arbitrate(ctx, prompt)
}

// Normalize returns s in the form keywords are matched against: NFKC
// normalized and case folded.
func Normalize(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

func normalizeAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.TrimSpace(Normalize(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
