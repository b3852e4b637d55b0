package extract

import (
	"regexp"
	"strings"

	"github.com/akash-new/reviewscout"
)

// Fields holds the ordered candidate patterns for each review field.
type Fields struct {
	Name        []reviewscout.Pattern
	Description []reviewscout.Pattern
	Date        []reviewscout.Pattern
	Title       []reviewscout.Pattern
	Content     []reviewscout.Pattern
	Ratings     []Rating

	// Strip removes boilerplate such as "See more" links from content.
	Strip []*regexp.Regexp
}

// Review builds a review from one block. Fields without a match keep their
// placeholder values.
func (f *Fields) Review(platform reviewscout.Platform, page int, block string) *reviewscout.Review {
	r := reviewscout.NewReview(platform, page)

	if v, ok := first(f.Name, block); ok {
		r.ReviewerName = v
	}
	if v, ok := first(f.Description, block); ok {
		r.ReviewerDescription = v
	}
	if v, ok := first(f.Date, block); ok {
		r.ReviewDate = NormalizeDate(v)
	}
	if v, ok := first(f.Title, block); ok {
		r.ReviewTitle = v
	}
	if v, ok := first(f.Content, block); ok {
		r.ReviewContent = f.strip(v)
	}

	schema := reviewscout.RatingKeys(platform)
	for i := range f.Ratings {
		rating := &f.Ratings[i]
		if !contains(schema, rating.Key) {
			continue
		}
		r.Ratings[rating.Key] = rating.value(block, f.labels())
	}
	return r
}

func (f *Fields) strip(s string) string {
	for _, re := range f.Strip {
		s = re.ReplaceAllString(s, "")
	}
	return Clean(s)
}

// labels returns every rating label; each one bounds another category's
// glyph window.
func (f *Fields) labels() []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, r := range f.Ratings {
		if r.Label != nil {
			out = append(out, r.Label)
		}
	}
	return out
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}
