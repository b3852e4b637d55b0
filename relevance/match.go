package relevance

import (
	"strings"

	"github.com/akash-new/reviewscout"
)

// SubstringMatcher matches keywords with strings.Contains. It expects
// keywords and text already normalized.
type SubstringMatcher []string

// NewSubstringMatcher returns a SubstringMatcher as a MatcherFunc result.
func NewSubstringMatcher(keywords []string) reviewscout.KeywordMatcher {
	return SubstringMatcher(keywords)
}

// Match implements reviewscout.KeywordMatcher.
func (m SubstringMatcher) Match(text string) []string {
	var out []string
	for _, kw := range m {
		if strings.Contains(text, kw) {
			out = append(out, kw)
		}
	}
	return out
}
