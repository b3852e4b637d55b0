package reviewscout

import (
	"fmt"
	"strings"
)

// FormatReviews formats reviews for display. Each review starts with a
// heading naming the reviewer, platform, page and date; title, ratings and
// relevance follow when present. Reviews are separated by blank lines.
func FormatReviews(reviews []*Review) string {
	if len(reviews) == 0 {
		return ""
	}

	parts := make([]string, 0, len(reviews))
	for _, r := range reviews {
		var b strings.Builder
		fmt.Fprintf(&b, "## %s (%s, page %d, %s)", r.ReviewerName, r.Platform, r.Page, r.ReviewDate)
		if r.ReviewerDescription != "" {
			b.WriteString("\n" + r.ReviewerDescription)
		}
		if r.ReviewTitle != "" {
			b.WriteString("\n### " + r.ReviewTitle)
		}

		var ratings []string
		for _, key := range RatingKeys(r.Platform) {
			if v := r.Rating(key); v != NoRating {
				ratings = append(ratings, strings.TrimSuffix(key, "_rating")+"="+v)
			}
		}
		if len(ratings) > 0 {
			b.WriteString("\nRatings: " + strings.Join(ratings, " "))
		}
		if r.Relevant != nil {
			fmt.Fprintf(&b, "\nRelevant: %t", *r.Relevant)
		}

		b.WriteString("\n" + r.ReviewContent)
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}
