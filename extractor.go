package reviewscout

// ExtractResult holds the reviews extracted from one page.
type ExtractResult struct {
	// Reviews are the extracted reviews in page order.
	Reviews []*Review

	// Strategy names the strategy that produced Reviews.
	// Informational only.
	Strategy string

	// Fallback is true when no structural strategy succeeded and the
	// whole-page fallback produced the single review.
	Fallback bool
}

// Extractor turns a raw page snapshot into reviews for one platform.
type Extractor interface {
	// Platform returns the platform every extracted review is tagged with.
	Platform() Platform

	// Extract parses a page and returns its reviews. It never fails: a
	// non-blank page yields at least one review, a blank page yields none.
	Extract(page string, pageNum int) *ExtractResult

	// NextPage returns the locator of the next page, or false when the page
	// is the last one.
	NextPage(page string) (string, bool)
}

// Strategy isolates candidate review blocks within a page.
type Strategy interface {
	// Name identifies the strategy in logs and extraction results.
	Name() string

	// Blocks returns the candidate review blocks found in page, in page
	// order. An empty result means the strategy did not match.
	Blocks(page string) ([]string, error)
}

// Pattern locates a single field value within a review block.
type Pattern interface {
	// Find returns the raw field value and true on a match.
	Find(block string) (string, bool)
}

// Paginator finds the next-page locator on a listing page.
type Paginator interface {
	NextPage(page string) (string, bool)
}

// TextExtractor returns the readable text of an HTML page. It supplies the
// content of the whole-page fallback review.
type TextExtractor interface {
	ExtractText(html string) (string, error)
}
