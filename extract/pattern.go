package extract

import (
	"regexp"
	"strings"

	"github.com/akash-new/reviewscout"
)

var (
	_ reviewscout.Pattern = (*Regexp)(nil)
	_ reviewscout.Pattern = (*RegexpJoin)(nil)
)

// Regexp is a Pattern backed by a regular expression. The value is the
// first capture group, the whole match when the expression has no groups,
// or the expansion of a template.
type Regexp struct {
	re       *regexp.Regexp
	template string
}

// Re returns a Regexp pattern for expr. It panics if expr does not compile,
// so patterns belong in package-level variables.
func Re(expr string) *Regexp {
	return &Regexp{re: regexp.MustCompile(expr)}
}

// ReExpand returns a Regexp pattern whose value is template expanded with
// the match, as in regexp.Regexp.Expand.
func ReExpand(expr, template string) *Regexp {
	return &Regexp{re: regexp.MustCompile(expr), template: template}
}

// Find implements reviewscout.Pattern.
func (p *Regexp) Find(block string) (string, bool) {
	m := p.re.FindStringSubmatchIndex(block)
	if m == nil {
		return "", false
	}
	if p.template != "" {
		return string(p.re.ExpandString(nil, p.template, block, m)), true
	}
	if p.re.NumSubexp() == 0 {
		return block[m[0]:m[1]], true
	}
	if m[2] < 0 {
		return "", false
	}
	return block[m[2]:m[3]], true
}

// RegexpJoin is a Pattern whose value joins every participating capture
// group with a separator.
type RegexpJoin struct {
	re  *regexp.Regexp
	sep string
}

// ReJoin returns a RegexpJoin pattern for expr.
func ReJoin(expr, sep string) *RegexpJoin {
	return &RegexpJoin{re: regexp.MustCompile(expr), sep: sep}
}

// Find implements reviewscout.Pattern.
func (p *RegexpJoin) Find(block string) (string, bool) {
	m := p.re.FindStringSubmatch(block)
	if m == nil {
		return "", false
	}
	var parts []string
	for _, g := range m[1:] {
		if g = strings.TrimSpace(g); g != "" {
			parts = append(parts, g)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, p.sep), true
}

// first returns the cleaned value of the first pattern that matches block
// with a non-empty result.
func first(patterns []reviewscout.Pattern, block string) (string, bool) {
	for _, p := range patterns {
		raw, ok := p.Find(block)
		if !ok {
			continue
		}
		if v := Clean(raw); v != "" {
			return v, true
		}
	}
	return "", false
}
