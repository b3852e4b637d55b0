package source

import (
	"regexp"

	"github.com/akash-new/reviewscout"
	"github.com/akash-new/reviewscout/extract"
	"github.com/akash-new/reviewscout/goquery"
)

// Trustpilot strategy names.
const (
	TrustpilotCards  = "review-card"
	TrustpilotLoose  = "loose-review"
	TrustpilotSplit  = "date-of-experience"
	TrustpilotWindow = "rating-window"
)

const (
	trustpilotReviewLink = `\(https://www\.trustpilot\.com/reviews/[0-9a-f]+\)`
	trustpilotDateMarker = `\*\*Date of experience:?\*\*:?`
	trustpilotRated      = `!\[Rated \d out of 5 stars\]`
)

var trustpilotFields = extract.Fields{
	Name: []reviewscout.Pattern{
		goquery.Select(`[data-consumer-name-typography]`),
		goquery.Select(`a[name="consumer-profile"] span`),
		extract.Re(`\[(?:\*\*)?([^\]\*\n!]+?)(?:\*\*)?\]\(https://www\.trustpilot\.com/users/[^)]+\)`),
	},
	Description: []reviewscout.Pattern{
		goquery.Select(`[data-consumer-country-typography]`),
	},
	Date: []reviewscout.Pattern{
		extract.Re(trustpilotDateMarker + `[ \t]*([^\n]+)`),
		extract.Re(`Date of experience:?(?:\s*</[a-z]+>)?:?\s*(?:<[^>]+>\s*)*([A-Z][a-z]+\.? \d{1,2}, \d{4})`),
		goquery.SelectAttr("time", "datetime"),
	},
	Title: []reviewscout.Pattern{
		goquery.Select(`[data-service-review-title-typography]`),
		extract.Re(`\[\*\*(.+?)\*\*\]` + trustpilotReviewLink),
		extract.Re(`\[(?:#+\s*)?([^\]\n]+)\]` + trustpilotReviewLink),
		goquery.Select("h2"),
	},
	Content: []reviewscout.Pattern{
		goquery.Select(`[data-service-review-text-typography]`),
		extract.Re(`(?s)\]` + trustpilotReviewLink + `[ \t]*\n+(.+?)(?:\n\s*` + trustpilotDateMarker + `|\z)`),
		extract.Re(`(?s)` + trustpilotRated + `\([^)]*\)[ \t]*\n\n(.+?)(?:\n\s*` + trustpilotDateMarker + `|\z)`),
	},
	Ratings: []extract.Rating{
		{
			Key: reviewscout.RatingOverall,
			Explicit: []reviewscout.Pattern{
				extract.ReExpand(`Rated (\d) out of 5 stars`, "${1}/5"),
				extract.ReExpand(`data-service-review-rating="(\d)"`, "${1}/5"),
			},
		},
	},
	Strip: []*regexp.Regexp{
		regexp.MustCompile(`\[\*\*[^\]]*\*\*\]` + trustpilotReviewLink),
		regexp.MustCompile(`(?i)\[see more\]\([^)]*\)`),
		regexp.MustCompile(`(?i)\s*\bsee more\s*$`),
	},
}

// Trustpilot returns the cascade for Trustpilot pages. Pages may be raw HTML
// or markdown snapshots; marker strategies see HTML through its markdown
// rendering when a converter is configured.
func Trustpilot(opts Options) *extract.Cascade {
	strategies := []reviewscout.Strategy{
		goquery.NewContainerStrategy(TrustpilotCards, `article[data-service-review-card-paper]`),
		goquery.NewLooseContainerStrategy(TrustpilotLoose, `article[class*="review"], div[class*="reviewCard"]`),
		extract.Markdown(opts.Converter, extract.NewSplitStrategy(TrustpilotSplit, trustpilotDateMarker, extract.SplitAfter)),
		extract.Markdown(opts.Converter, extract.NewWindowStrategy(TrustpilotWindow, trustpilotRated, 0, 700,
			extract.WithStop(trustpilotRated+`|`+trustpilotDateMarker))),
	}
	return extract.NewCascade(reviewscout.PlatformTrustpilot, trustpilotFields, strategies, opts.cascadeOptions()...)
}
