package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/akash-new/reviewscout"
)

var _ reviewscout.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs which strategy produced each
// page's reviews. Pages that fell back to whole-page content log a warning.
type LoggingExtractor struct {
	next   reviewscout.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next reviewscout.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Platform delegates to the wrapped extractor.
func (e *LoggingExtractor) Platform() reviewscout.Platform {
	return e.next.Platform()
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(page string, pageNum int) (res *reviewscout.ExtractResult) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if res.Fallback {
			level = slog.LevelWarn
		}
		e.logger.Log(context.Background(), level, "extract",
			"platform", e.next.Platform(),
			"page", pageNum,
			"strategy", res.Strategy,
			"reviews", len(res.Reviews),
			"fallback", res.Fallback,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(page, pageNum)
}

// NextPage delegates to the wrapped extractor and logs the locator found.
func (e *LoggingExtractor) NextPage(page string) (string, bool) {
	next, ok := e.next.NextPage(page)
	e.logger.Debug("next page",
		"platform", e.next.Platform(),
		"url", next,
		"found", ok,
	)
	return next, ok
}
