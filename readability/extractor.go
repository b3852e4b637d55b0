package readability

import (
	"strings"

	"github.com/akash-new/reviewscout"
	"github.com/go-shiori/go-readability"
)

// Ensure TextExtractor implements reviewscout.TextExtractor at compile time.
var _ reviewscout.TextExtractor = (*TextExtractor)(nil)

// TextExtractor wraps go-readability to extract the article text of a page.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText implements reviewscout.TextExtractor.
func (e *TextExtractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", reviewscout.Errorf(reviewscout.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(article.TextContent), nil
}
