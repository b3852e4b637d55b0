// Package ahocorasick implements keyword matching over review text with an
// Aho-Corasick automaton.
package ahocorasick

import (
	"strings"

	"github.com/akash-new/reviewscout"
	"github.com/cloudflare/ahocorasick"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var _ reviewscout.KeywordMatcher = (*Matcher)(nil)

// Matcher finds keywords as case-insensitive substrings. Keywords and text
// are NFKC-normalized and case-folded before matching.
type Matcher struct {
	matcher  *ahocorasick.Matcher
	keywords []string
}

// NewMatcher builds a matcher for keywords. Blank and duplicate keywords
// are dropped.
func NewMatcher(keywords []string) *Matcher {
	m := &Matcher{}
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		normalized := Normalize(kw)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		m.keywords = append(m.keywords, normalized)
	}
	if len(m.keywords) > 0 {
		m.matcher = ahocorasick.NewStringMatcher(m.keywords)
	}
	return m
}

// Match implements reviewscout.KeywordMatcher. Matched keywords are
// returned in their normalized form. Safe for concurrent use.
func (m *Matcher) Match(text string) []string {
	if m.matcher == nil || text == "" {
		return nil
	}
	hits := m.matcher.MatchThreadSafe([]byte(Normalize(text)))
	if len(hits) == 0 {
		return nil
	}

	found := make(map[int]bool, len(hits))
	for _, i := range hits {
		found[i] = true
	}
	out := make([]string, 0, len(found))
	for i, kw := range m.keywords {
		if found[i] {
			out = append(out, kw)
		}
	}
	return out
}

// Len returns the number of distinct keywords.
func (m *Matcher) Len() int {
	return len(m.keywords)
}

// Normalize applies NFKC normalization and case folding and trims s.
func Normalize(s string) string {
	return strings.TrimSpace(cases.Fold().String(norm.NFKC.String(s)))
}
