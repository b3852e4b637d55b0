package source

import (
	"regexp"

	"github.com/akash-new/reviewscout"
	"github.com/akash-new/reviewscout/extract"
	"github.com/akash-new/reviewscout/goquery"
)

// Course Report strategy names.
const (
	CourseReportContainers = "review-container"
	CourseReportLoose      = "loose-review"
	CourseReportSplit      = "reviewer-line"
	CourseReportWindow     = "rating-window"
)

// courseReportGlyph matches a filled star in markup or plain text.
var courseReportGlyph = regexp.MustCompile(`\bfilled-star\b|★`)

// courseReportMetaLine captures the two to four bullet-separated parts of a
// reviewer line such as "Engineer • Student • Austin".
const courseReportMetaLine = `(?m)^[ \t]*([^\n<>•]*[^\s<>•])` +
	`[ \t]*•[ \t]*([^\n<>•]*[^\s<>•])` +
	`(?:[ \t]*•[ \t]*([^\n<>•]*[^\s<>•]))?` +
	`(?:[ \t]*•[ \t]*([^\n<>•]*[^\s<>•]))?[ \t]*$`

var courseReportFields = extract.Fields{
	Name: []reviewscout.Pattern{
		goquery.Select("h3"),
		goquery.Select("h4"),
		extract.Re(`(?m)^[ \t]*([^\n•<>]+?)[ \t]*\n[^\n]*\S[ \t]+•[ \t]+\S`),
	},
	Description: []reviewscout.Pattern{
		goquery.Select(`p[class^="reviewer-desc"], div[class^="meta"]`),
		extract.ReJoin(courseReportMetaLine, " • "),
		extract.Re(`(?m)^[ \t]*([^\n<>]*\S[ \t]+•[ \t]+[^\n<>]+)$`),
	},
	Date: []reviewscout.Pattern{
		goquery.Select(`div[class^="date"], time`),
		goquery.SelectAttr("time", "datetime"),
		extract.Re(`\b([A-Z][a-z]{2,8}\.? \d{1,2}, \d{4})\b`),
		extract.Re(`\b(\d{4}-\d{2}-\d{2})\b`),
	},
	Title: []reviewscout.Pattern{
		goquery.Select(`h2, div[class^="title"]`),
		extract.Re(`Job Assistance[ \t]*[★☆]+[ \t]*\n[ \t]*([^\n★☆<]+)`),
		extract.Re(`Overall Experience[ \t]*[★☆]+[ \t]+([^\n★☆<]+)`),
	},
	Content: []reviewscout.Pattern{
		goquery.Select(`div[class^="review-content"], p[class^="review-text"], div.review-body`),
		extract.Re(`(?s)Job Assistance[ \t]*[★☆]+[ \t]*\n[^\n]*\n(.+)`),
		extract.Re(`(?s)Job Assistance[ \t]*[★☆]+[ \t]*\n(.+)`),
	},
	Ratings: []extract.Rating{
		courseReportRating(reviewscout.RatingOverall, `Overall Experience`),
		courseReportRating(reviewscout.RatingInstructor, `Instructors`),
		courseReportRating(reviewscout.RatingCurriculum, `Curriculum`),
		courseReportRating(reviewscout.RatingJobAssistance, `Job Assistance`),
	},
}

func courseReportRating(key, label string) extract.Rating {
	return extract.Rating{
		Key:      key,
		Explicit: []reviewscout.Pattern{extract.Re(label + `[^0-9\n<★☆]{0,20}(\d(?:\.\d)?/\d)`)},
		Label:    regexp.MustCompile(label),
		Glyph:    courseReportGlyph,
	}
}

// CourseReport returns the cascade for Course Report pages.
func CourseReport(opts Options) *extract.Cascade {
	strategies := []reviewscout.Strategy{
		goquery.NewContainerStrategy(CourseReportContainers, `div.review-container, div.review-card, div[data-testid="review-card"]`),
		goquery.NewLooseContainerStrategy(CourseReportLoose, `div[class*="review"]:has(h3, h4)`),
		extract.NewSplitStrategy(CourseReportSplit, `(?m)^[^\n•<>]+\n[^\n]*\S[ \t]+•[ \t]+\S`, extract.SplitBefore),
		extract.NewWindowStrategy(CourseReportWindow, `Overall Experience`, 200, 1000),
	}
	return extract.NewCascade(reviewscout.PlatformCourseReport, courseReportFields, strategies, opts.cascadeOptions()...)
}
