package mock

import "github.com/akash-new/reviewscout"

var _ reviewscout.Converter = (*Converter)(nil)

// Converter is a mock implementation of reviewscout.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
