package trafilatura

import (
	"strings"

	"github.com/akash-new/reviewscout"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure TextExtractor implements reviewscout.TextExtractor at compile time.
var _ reviewscout.TextExtractor = (*TextExtractor)(nil)

// TextExtractor wraps go-trafilatura to pull the readable text out of a
// review page, dropping navigation and other boilerplate.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	if text := strings.TrimSpace(result.ContentText); text != "" {
		return text, nil
	}
	if result.ContentNode != nil {
		return strings.TrimSpace(nodeText(result.ContentNode)), nil
	}
	return "", nil
}

// nodeText concatenates the text of n, separating block elements with
// newlines.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "p", "div", "br", "li", "h1", "h2", "h3", "h4", "h5", "h6":
				defer b.WriteString("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
