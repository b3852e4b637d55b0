package extract

import (
	"errors"
	"strings"

	"github.com/akash-new/reviewscout"
)

var _ reviewscout.TextExtractor = TextChain(nil)

// TextChain is a TextExtractor that returns the first non-empty text
// produced by its members.
type TextChain []reviewscout.TextExtractor

// ExtractText implements reviewscout.TextExtractor.
func (c TextChain) ExtractText(html string) (string, error) {
	var errs []error
	for _, t := range c {
		text, err := t.ExtractText(html)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text, nil
		}
	}
	return "", errors.Join(errs...)
}
