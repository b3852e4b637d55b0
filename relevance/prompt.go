package relevance

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/akash-new/reviewscout"
)

// MaxPromptContent bounds the number of content characters sent to the
// arbiter.
const MaxPromptContent = 4000

// BuildPrompt returns the yes/no question put to the arbiter.
func BuildPrompt(lexicon reviewscout.Lexicon, content string) string {
	topics := lexicon.Topics
	if len(topics) == 0 {
		topics = []string{"courses", "instructors", "fees", "overall experience"}
	}
	return fmt.Sprintf("Does this text discuss %s's %s? Answer yes or no.\n\nText: \"%s\"",
		lexicon.Subject, joinOr(topics), bound(content, MaxPromptContent))
}

// ParseAnswer reads a free-text arbiter response. The answer is yes when the
// response contains "yes" and its first four characters do not contain "no".
func ParseAnswer(resp string) (bool, error) {
	resp = strings.ToLower(strings.TrimSpace(resp))
	if resp == "" {
		return false, reviewscout.Errorf(reviewscout.EINVALID, "empty arbiter response")
	}
	return strings.Contains(resp, "yes") && !strings.Contains(bound(resp, 4), "no"), nil
}

func joinOr(items []string) string {
	switch len(items) {
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
}

func bound(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
