package mock

import (
	"context"

	"github.com/akash-new/reviewscout"
)

var _ reviewscout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of reviewscout.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
