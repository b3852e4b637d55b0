package mock

import (
	"context"

	"github.com/akash-new/reviewscout"
)

var _ reviewscout.ReviewService = (*ReviewService)(nil)

// ReviewService is a mock implementation of reviewscout.ReviewService.
type ReviewService struct {
	CreateReviewsFn           func(ctx context.Context, reviews []*reviewscout.Review) (int, error)
	FindReviewsFn             func(ctx context.Context, filter reviewscout.ReviewFilter) ([]*reviewscout.Review, error)
	DeleteReviewsByPlatformFn func(ctx context.Context, platform reviewscout.Platform) error
}

func (s *ReviewService) CreateReviews(ctx context.Context, reviews []*reviewscout.Review) (int, error) {
	return s.CreateReviewsFn(ctx, reviews)
}

func (s *ReviewService) FindReviews(ctx context.Context, filter reviewscout.ReviewFilter) ([]*reviewscout.Review, error) {
	return s.FindReviewsFn(ctx, filter)
}

func (s *ReviewService) DeleteReviewsByPlatform(ctx context.Context, platform reviewscout.Platform) error {
	return s.DeleteReviewsByPlatformFn(ctx, platform)
}
