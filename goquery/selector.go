package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/akash-new/reviewscout"
)

var _ reviewscout.Pattern = (*Selector)(nil)

// Selector is a field pattern that returns the inner HTML, or an attribute,
// of the first element matching a CSS selector.
type Selector struct {
	selector string
	attr     string
}

// Select returns a Selector pattern for selector.
func Select(selector string) *Selector {
	return &Selector{selector: selector}
}

// SelectAttr returns a Selector pattern yielding attribute attr.
func SelectAttr(selector, attr string) *Selector {
	return &Selector{selector: selector, attr: attr}
}

// Find implements reviewscout.Pattern.
func (s *Selector) Find(block string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(block))
	if err != nil {
		return "", false
	}
	sel := doc.Find(s.selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	if s.attr != "" {
		return sel.Attr(s.attr)
	}
	v, err := sel.Html()
	if err != nil {
		return "", false
	}
	return v, true
}
