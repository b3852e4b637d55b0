// Package goquery implements extraction strategies, field patterns and
// pagination over HTML documents using CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/akash-new/reviewscout"
)

var _ reviewscout.Strategy = (*ContainerStrategy)(nil)

// ContainerStrategy finds review containers with a CSS selector. Each
// matching element, rendered back to HTML, is one block.
type ContainerStrategy struct {
	name     string
	selector string
	leaves   bool
}

// NewContainerStrategy returns a strategy selecting containers by selector.
func NewContainerStrategy(name, selector string) *ContainerStrategy {
	return &ContainerStrategy{name: name, selector: selector}
}

// NewLooseContainerStrategy returns a strategy for broad selectors that may
// match nested elements. Only matches containing no other match become
// blocks, so neither a list wrapper nor a nested element duplicates a
// container.
func NewLooseContainerStrategy(name, selector string) *ContainerStrategy {
	return &ContainerStrategy{name: name, selector: selector, leaves: true}
}

// Name implements reviewscout.Strategy.
func (s *ContainerStrategy) Name() string {
	return s.name
}

// Blocks implements reviewscout.Strategy.
func (s *ContainerStrategy) Blocks(page string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, reviewscout.Errorf(reviewscout.EINVALID, "failed to parse HTML: %v", err)
	}

	var blocks []string
	var firstErr error
	doc.Find(s.selector).Each(func(_ int, sel *goquery.Selection) {
		if s.leaves && sel.Find(s.selector).Length() > 0 {
			return
		}
		block, err := goquery.OuterHtml(sel)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		blocks = append(blocks, block)
	})
	if len(blocks) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return blocks, nil
}
