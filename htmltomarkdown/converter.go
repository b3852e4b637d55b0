// Package htmltomarkdown renders review pages as markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/akash-new/reviewscout"
)

var _ reviewscout.Converter = (*Converter)(nil)

// DefaultPrune lists page chrome removed before conversion. Header and
// aside elements are kept: review cards hold the reviewer line in them.
const DefaultPrune = "nav, footer, form, noscript, iframe"

// Converter renders review pages as markdown so that marker-based
// strategies written against markdown snapshots also run on HTML.
type Converter struct {
	conv  *converter.Converter
	prune string
}

// Option configures a Converter.
type Option func(*Converter)

// WithPrune replaces the selector of elements dropped before conversion.
// An empty selector keeps the whole page.
func WithPrune(selector string) Option {
	return func(c *Converter) {
		c.prune = selector
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
		prune: DefaultPrune,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", reviewscout.Errorf(reviewscout.EINVALID, "empty HTML input")
	}
	if c.prune != "" {
		pruned, err := c.pruneChrome(html)
		if err != nil {
			return "", err
		}
		html = pruned
	}
	return c.conv.ConvertString(html)
}

func (c *Converter) pruneChrome(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	sel := doc.Find(c.prune)
	if sel.Length() == 0 {
		return html, nil
	}
	sel.Remove()
	return doc.Html()
}
