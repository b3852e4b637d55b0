package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/akash-new/reviewscout"
)

var _ reviewscout.Paginator = (*Paginator)(nil)

// nextLabels are anchor texts that point to the following page.
var nextLabels = []string{"next", "›", "»", ">", "next page"}

// nextSelectors identify explicit next-page anchors.
const nextSelectors = `a[rel="next"], a[name="pagination-button-next"], link[rel="next"]`

// Paginator finds the next-page link on a review listing.
type Paginator struct {
	base *url.URL
}

// NewPaginator returns a Paginator. When baseURL is a valid absolute URL,
// relative links are resolved against it.
func NewPaginator(baseURL string) *Paginator {
	p := &Paginator{}
	if u, err := url.Parse(baseURL); err == nil && u.IsAbs() {
		p.base = u
	}
	return p
}

// NextPage implements reviewscout.Paginator. It looks for the entry after
// the active one in a pagination list, then for an explicit next link or an
// anchor labeled as one. Pages without either are the last page.
func (p *Paginator) NextPage(page string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", false
	}

	if href, ok := p.href(doc.Find("ul.pagination li.active").First().Next().Find("a[href]").First()); ok {
		return href, true
	}

	var next string
	doc.Find(nextSelectors).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if href, ok := p.href(sel); ok {
			next = href
			return false
		}
		return true
	})
	if next != "" {
		return next, true
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		label := strings.ToLower(strings.TrimSpace(sel.Text()))
		if label == "" {
			label = strings.ToLower(strings.TrimSpace(sel.AttrOr("aria-label", "")))
		}
		for _, l := range nextLabels {
			if label == l {
				if href, ok := p.href(sel); ok {
					next = href
					return false
				}
			}
		}
		return true
	})
	return next, next != ""
}

func (p *Paginator) href(sel *goquery.Selection) (string, bool) {
	if sel.Length() == 0 {
		return "", false
	}
	href := strings.TrimSpace(sel.AttrOr("href", ""))
	if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
		return "", false
	}
	if p.base == nil {
		return href, true
	}
	resolved := resolveURL(p.base, href)
	return resolved, resolved != ""
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// points back at the base page.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
