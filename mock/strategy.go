package mock

import "github.com/akash-new/reviewscout"

var _ reviewscout.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of reviewscout.Strategy.
type Strategy struct {
	NameFn   func() string
	BlocksFn func(page string) ([]string, error)
}

func (s *Strategy) Name() string {
	return s.NameFn()
}

func (s *Strategy) Blocks(page string) ([]string, error) {
	return s.BlocksFn(page)
}
