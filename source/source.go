// Package source assembles the extraction cascades for each supported
// review platform.
package source

import (
	"log/slog"

	"github.com/akash-new/reviewscout"
	"github.com/akash-new/reviewscout/extract"
	"github.com/akash-new/reviewscout/goquery"
)

// Options carries the collaborators shared by every cascade.
type Options struct {
	// Converter renders HTML pages as markdown for marker strategies.
	Converter reviewscout.Converter

	// Text supplies fallback content for HTML pages.
	Text reviewscout.TextExtractor

	// BaseURL resolves relative next-page links.
	BaseURL string

	Logger *slog.Logger
}

func (o Options) cascadeOptions() []extract.Option {
	return []extract.Option{
		extract.WithPaginator(goquery.NewPaginator(o.BaseURL)),
		extract.WithTextExtractor(o.Text),
		extract.WithLogger(o.Logger),
	}
}

// New returns the extractor for platform.
func New(platform reviewscout.Platform, opts Options) (reviewscout.Extractor, error) {
	switch platform {
	case reviewscout.PlatformCourseReport:
		return CourseReport(opts), nil
	case reviewscout.PlatformTrustpilot:
		return Trustpilot(opts), nil
	default:
		return nil, reviewscout.Errorf(reviewscout.ENOTFOUND, "no extractor for platform %q", platform)
	}
}

// Supported reports whether platform has an extractor.
func Supported(platform reviewscout.Platform) bool {
	switch platform {
	case reviewscout.PlatformCourseReport, reviewscout.PlatformTrustpilot:
		return true
	}
	return false
}
