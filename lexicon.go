package reviewscout

import (
	"strings"
)

// ThemeBucket is a named group of topic keywords.
type ThemeBucket struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// ProfileThresholds describe the shape of long company-profile text. Content
// exceeding all three thresholds is treated as a company profile.
type ProfileThresholds struct {
	Words           int `yaml:"words"`
	ParagraphBreaks int `yaml:"paragraph_breaks"`
	Headings        int `yaml:"headings"`
}

// Lexicon holds the phrase lists and thresholds the relevance classifier is
// tuned with.
type Lexicon struct {
	// Subject is the display name used in arbitration prompts.
	Subject string `yaml:"subject"`

	// Topics are the aspects the arbiter is asked about.
	Topics []string `yaml:"topics"`

	// Names are matched as case-insensitive substrings.
	Names []string `yaml:"names"`

	// Abbreviations are matched as standalone words only.
	Abbreviations []string `yaml:"abbreviations"`

	ProfileMarkers []string          `yaml:"profile_markers"`
	Profile        ProfileThresholds `yaml:"profile"`

	// ShortContentTokens is the token count below which content that names
	// the subject is relevant without a theme match.
	ShortContentTokens int `yaml:"short_content_tokens"`

	Themes []ThemeBucket `yaml:"themes"`
}

// Validate returns an error if the lexicon cannot drive a classifier.
func (l *Lexicon) Validate() error {
	if strings.TrimSpace(l.Subject) == "" {
		return Errorf(EINVALID, "lexicon subject required")
	}
	if len(l.Names) == 0 && len(l.Abbreviations) == 0 {
		return Errorf(EINVALID, "lexicon requires at least one name or abbreviation")
	}
	for _, abbr := range l.Abbreviations {
		if strings.TrimSpace(abbr) == "" {
			return Errorf(EINVALID, "lexicon abbreviation must not be blank")
		}
	}
	if l.ShortContentTokens < 0 {
		return Errorf(EINVALID, "short content tokens must not be negative")
	}
	return nil
}

// ThemeKeywords returns the keywords of every theme bucket in bucket order.
func (l *Lexicon) ThemeKeywords() []string {
	var keywords []string
	for _, b := range l.Themes {
		keywords = append(keywords, b.Keywords...)
	}
	return keywords
}

// ThemeOf returns the name of the first bucket containing keyword.
func (l *Lexicon) ThemeOf(keyword string) string {
	for _, b := range l.Themes {
		for _, k := range b.Keywords {
			if strings.EqualFold(k, keyword) {
				return b.Name
			}
		}
	}
	return ""
}
