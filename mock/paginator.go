package mock

import "github.com/akash-new/reviewscout"

var _ reviewscout.Paginator = (*Paginator)(nil)

// Paginator is a mock implementation of reviewscout.Paginator.
type Paginator struct {
	NextPageFn func(page string) (string, bool)
}

func (p *Paginator) NextPage(page string) (string, bool) {
	return p.NextPageFn(page)
}
