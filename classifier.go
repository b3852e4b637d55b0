package reviewscout

import "context"

// Stage identifies the classification step that decided a verdict.
type Stage string

// Classification stages.
const (
	// StageBypass marks platforms the filter policy does not gate.
	StageBypass Stage = "bypass"
	// StageProfile marks company-profile content.
	StageProfile Stage = "profile"
	// StageNoReference marks content that never names the subject.
	StageNoReference Stage = "no-reference"
	// StageShort marks short content that names the subject.
	StageShort Stage = "short"
	// StageTheme marks the outcome of the theme keyword screen.
	StageTheme Stage = "theme"
	// StageArbiter marks verdicts decided by the arbiter.
	StageArbiter Stage = "arbiter"
)

// Verdict is the outcome of classifying one piece of review content.
type Verdict struct {
	Relevant bool
	Stage    Stage
	Reason   string
}

// Classifier labels review content as relevant or not to the subject.
type Classifier interface {
	// Classify returns the verdict for content found on platform.
	// It never fails; arbitration problems degrade to the deterministic verdict.
	Classify(ctx context.Context, content string, platform Platform) Verdict
}

// Arbiter provides an external yes/no judgement for ambiguous content.
type Arbiter interface {
	// Arbitrate sends a bounded natural-language prompt and returns the
	// free-text response.
	Arbitrate(ctx context.Context, prompt string) (string, error)
}

// KeywordMatcher finds which of a fixed keyword set occur in a text.
type KeywordMatcher interface {
	// Match returns the distinct keywords found in text, in keyword order.
	Match(text string) []string
}

// FilterPolicy maps platforms to whether relevance filtering applies.
type FilterPolicy struct {
	// Default applies to platforms missing from Platforms.
	Default bool

	Platforms map[Platform]bool
}

// Applies reports whether relevance filtering applies to platform.
func (p FilterPolicy) Applies(platform Platform) bool {
	if v, ok := p.Platforms[platform]; ok {
		return v
	}
	return p.Default
}
