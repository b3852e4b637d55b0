package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akash-new/reviewscout"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ reviewscout.ReviewService = (*ReviewService)(nil)

// ReviewService implements reviewscout.ReviewService using SQLite.
type ReviewService struct {
	db *DB
}

// NewReviewService creates a new ReviewService.
func NewReviewService(db *DB) *ReviewService {
	return &ReviewService{db: db}
}

// ReviewKey returns the deduplication key of r: the xxHash of its identity
// as a hex string.
func ReviewKey(r *reviewscout.Review) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(r.Identity()))
}

const reviewColumns = `id, platform, page, reviewer_name, reviewer_description, review_date,
	review_title, review_content, ratings, relevant, created_at`

// CreateReviews inserts reviews in one transaction. Reviews whose key is
// already stored are skipped and keep an empty ID.
func (s *ReviewService) CreateReviews(ctx context.Context, reviews []*reviewscout.Review) (int, error) {
	for _, r := range reviews {
		if err := r.Validate(); err != nil {
			return 0, err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO reviews (id, review_key, platform, page, reviewer_name, reviewer_description, review_date,
			review_title, review_content, ratings, relevant, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(review_key) DO NOTHING
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	inserted := 0
	for _, r := range reviews {
		ratings, err := json.Marshal(r.Ratings)
		if err != nil {
			return 0, fmt.Errorf("failed to encode ratings: %w", err)
		}

		id := uuid.New().String()
		res, err := stmt.ExecContext(ctx, id, ReviewKey(r), string(r.Platform), r.Page,
			r.ReviewerName, r.ReviewerDescription, r.ReviewDate, r.ReviewTitle, r.ReviewContent,
			string(ratings), relevantValue(r.Relevant), formatTime(now))
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		if n == 0 {
			continue
		}
		r.ID = id
		r.CreatedAt = now
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// FindReviews retrieves reviews matching the filter, ordered by platform,
// page and insertion order.
func (s *ReviewService) FindReviews(ctx context.Context, filter reviewscout.ReviewFilter) ([]*reviewscout.Review, error) {
	q := newSelect(reviewColumns, "reviews")
	if filter.Platform != nil {
		q.where("platform = ?", string(*filter.Platform))
	}
	if filter.Relevant != nil {
		q.where("relevant = ?", relevantValue(filter.Relevant))
	}
	query, args := q.build("platform ASC, page ASC, rowid ASC", filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*reviewscout.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}

	return reviews, rows.Err()
}

// DeleteReviewsByPlatform removes every review stored for platform.
func (s *ReviewService) DeleteReviewsByPlatform(ctx context.Context, platform reviewscout.Platform) error {
	if platform == "" {
		return reviewscout.Errorf(reviewscout.EINVALID, "platform required")
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM reviews WHERE platform = ?", string(platform))
	return err
}

func scanReview(rows *sql.Rows) (*reviewscout.Review, error) {
	var (
		r         reviewscout.Review
		platform  string
		ratings   string
		relevant  sql.NullBool
		createdAt string
	)
	if err := rows.Scan(&r.ID, &platform, &r.Page, &r.ReviewerName, &r.ReviewerDescription, &r.ReviewDate,
		&r.ReviewTitle, &r.ReviewContent, &ratings, &relevant, &createdAt); err != nil {
		return nil, err
	}

	r.Platform = reviewscout.Platform(platform)
	if err := json.Unmarshal([]byte(ratings), &r.Ratings); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}
	if r.Ratings == nil {
		r.Ratings = make(map[string]string)
	}
	if relevant.Valid {
		r.SetRelevant(relevant.Bool)
	}

	var err error
	r.CreatedAt, err = parseTime(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// relevantValue maps an optional verdict to a nullable column value.
func relevantValue(v *bool) any {
	if v == nil {
		return nil
	}
	if *v {
		return 1
	}
	return 0
}
