package mock

import "github.com/akash-new/reviewscout"

var _ reviewscout.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of reviewscout.Extractor.
type Extractor struct {
	PlatformFn func() reviewscout.Platform
	ExtractFn  func(page string, pageNum int) *reviewscout.ExtractResult
	NextPageFn func(page string) (string, bool)
}

func (e *Extractor) Platform() reviewscout.Platform {
	return e.PlatformFn()
}

func (e *Extractor) Extract(page string, pageNum int) *reviewscout.ExtractResult {
	return e.ExtractFn(page, pageNum)
}

func (e *Extractor) NextPage(page string) (string, bool) {
	return e.NextPageFn(page)
}
