// Package extract implements the extraction cascade: an ordered list of
// block-finding strategies, per-field candidate patterns and a whole-page
// fallback that guarantees at least one review for any non-blank page.
package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/akash-new/reviewscout"
)

var _ reviewscout.Extractor = (*Cascade)(nil)

// Fallback review content limits.
const (
	FallbackLimit  = 500
	FallbackMarker = "..."

	// FallbackStrategy names the whole-page fallback in results.
	FallbackStrategy = "fallback"
)

// Cascade extracts reviews by trying strategies in order until one yields a
// retained review.
type Cascade struct {
	platform   reviewscout.Platform
	strategies []reviewscout.Strategy
	fields     Fields
	paginator  reviewscout.Paginator
	text       reviewscout.TextExtractor
	logger     *slog.Logger
}

// Option configures a Cascade.
type Option func(*Cascade)

// WithPaginator sets the next-page finder.
func WithPaginator(p reviewscout.Paginator) Option {
	return func(c *Cascade) {
		c.paginator = p
	}
}

// WithTextExtractor sets the extractor that supplies fallback content for
// HTML pages.
func WithTextExtractor(t reviewscout.TextExtractor) Option {
	return func(c *Cascade) {
		c.text = t
	}
}

// WithLogger sets the logger used for skipped blocks and strategies.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cascade) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCascade returns a cascade for platform.
func NewCascade(platform reviewscout.Platform, fields Fields, strategies []reviewscout.Strategy, opts ...Option) *Cascade {
	c := &Cascade{
		platform:   platform,
		strategies: strategies,
		fields:     fields,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Platform implements reviewscout.Extractor.
func (c *Cascade) Platform() reviewscout.Platform {
	return c.platform
}

// Extract implements reviewscout.Extractor.
func (c *Cascade) Extract(page string, pageNum int) *reviewscout.ExtractResult {
	if strings.TrimSpace(page) == "" {
		return &reviewscout.ExtractResult{}
	}

	for _, s := range c.strategies {
		blocks, err := c.blocks(s, page)
		if err != nil {
			c.logger.Warn("strategy failed", "platform", c.platform, "strategy", s.Name(), "error", err)
			continue
		}
		if len(blocks) == 0 {
			c.logger.Debug("strategy found no blocks", "platform", c.platform, "strategy", s.Name())
			continue
		}

		var reviews []*reviewscout.Review
		for i, block := range blocks {
			r, err := c.review(block, pageNum)
			if err != nil {
				c.logger.Warn("block skipped", "platform", c.platform, "strategy", s.Name(), "block", i, "error", err)
				continue
			}
			if r.Retained() {
				reviews = append(reviews, r)
			}
		}
		if len(reviews) > 0 {
			return &reviewscout.ExtractResult{Reviews: reviews, Strategy: s.Name()}
		}
		c.logger.Debug("strategy retained no reviews", "platform", c.platform, "strategy", s.Name(), "blocks", len(blocks))
	}

	c.logger.Warn("all strategies failed, using page text", "platform", c.platform, "page", pageNum)
	r := reviewscout.NewReview(c.platform, pageNum)
	r.ReviewContent = Truncate(c.pageText(page), FallbackLimit, FallbackMarker)
	return &reviewscout.ExtractResult{
		Reviews:  []*reviewscout.Review{r},
		Strategy: FallbackStrategy,
		Fallback: true,
	}
}

// NextPage implements reviewscout.Extractor.
func (c *Cascade) NextPage(page string) (next string, ok bool) {
	if c.paginator == nil {
		return "", false
	}
	defer func() {
		if v := recover(); v != nil {
			c.logger.Warn("paginator panicked", "platform", c.platform, "panic", v)
			next, ok = "", false
		}
	}()
	return c.paginator.NextPage(page)
}

func (c *Cascade) blocks(s reviewscout.Strategy, page string) (blocks []string, err error) {
	defer func() {
		if v := recover(); v != nil {
			blocks, err = nil, fmt.Errorf("panic: %v", v)
		}
	}()
	return s.Blocks(page)
}

func (c *Cascade) review(block string, pageNum int) (r *reviewscout.Review, err error) {
	defer func() {
		if v := recover(); v != nil {
			r, err = nil, fmt.Errorf("panic: %v", v)
		}
	}()
	return c.fields.Review(c.platform, pageNum, block), nil
}

// pageText returns the fallback content for page.
func (c *Cascade) pageText(page string) string {
	if c.text != nil && IsHTML(page) {
		text, err := c.extractText(page)
		if err != nil {
			c.logger.Warn("text extraction failed", "platform", c.platform, "error", err)
		} else if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return strings.TrimSpace(page)
}

func (c *Cascade) extractText(page string) (text string, err error) {
	defer func() {
		if v := recover(); v != nil {
			text, err = "", fmt.Errorf("panic: %v", v)
		}
	}()
	return c.text.ExtractText(page)
}
