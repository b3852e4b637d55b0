package mock

import "github.com/akash-new/reviewscout"

var _ reviewscout.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of reviewscout.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (t *TextExtractor) ExtractText(html string) (string, error) {
	return t.ExtractTextFn(html)
}
