package reviewscout

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// Platform identifies a review source. Platforms are always taken from
// configuration and never inferred from page content.
type Platform string

// Supported review platforms.
const (
	PlatformCourseReport Platform = "Course Report"
	PlatformTrustpilot   Platform = "Trustpilot"
)

// Placeholder values used when a field could not be extracted.
const (
	UnknownReviewer = "Unknown"
	UnknownDate     = "Unknown"
	NoRating        = "0"
)

// Rating field keys.
const (
	RatingOverall       = "overall_experience_rating"
	RatingInstructor    = "instructor_rating"
	RatingCurriculum    = "curriculum_rating"
	RatingJobAssistance = "job_assistance_rating"
)

// ratingSchemas lists the rating fields each platform carries.
var ratingSchemas = map[Platform][]string{
	PlatformCourseReport: {RatingOverall, RatingInstructor, RatingCurriculum, RatingJobAssistance},
	PlatformTrustpilot:   {RatingOverall},
}

// RatingKeys returns the rating fields carried by reviews from a platform.
// Platforms without a dedicated schema carry the overall rating only.
func RatingKeys(p Platform) []string {
	if keys, ok := ratingSchemas[p]; ok {
		return slices.Clone(keys)
	}
	return []string{RatingOverall}
}

// MinContentLength is the content length (in characters) a review must
// exceed to be retained when its reviewer name is unknown.
const MinContentLength = 10

// Review represents one review extracted from a page.
type Review struct {
	ID string `json:"-"`

	ReviewerName        string
	ReviewerDescription string
	ReviewDate          string
	ReviewTitle         string
	ReviewContent       string

	// Ratings holds one numeric string per key in RatingKeys(Platform).
	Ratings map[string]string

	Platform Platform
	Page     int

	// Relevant is nil until the review has been classified.
	Relevant *bool

	CreatedAt time.Time `json:"-"`
}

// NewReview returns a review for the given platform and page with every
// field set to its placeholder.
func NewReview(platform Platform, page int) *Review {
	r := &Review{
		ReviewerName: UnknownReviewer,
		ReviewDate:   UnknownDate,
		Ratings:      make(map[string]string),
		Platform:     platform,
		Page:         page,
	}
	for _, key := range RatingKeys(platform) {
		r.Ratings[key] = NoRating
	}
	return r
}

// Rating returns the rating stored under key, or NoRating.
func (r *Review) Rating(key string) string {
	if v, ok := r.Ratings[key]; ok && v != "" {
		return v
	}
	return NoRating
}

// Retained reports whether the review passes the retention gate: content
// longer than MinContentLength characters or a known reviewer name.
func (r *Review) Retained() bool {
	return utf8.RuneCountInString(r.ReviewContent) > MinContentLength || r.ReviewerName != UnknownReviewer
}

// SetRelevant records a relevance verdict. A verdict is set at most once;
// later calls leave the first verdict in place and return false.
func (r *Review) SetRelevant(relevant bool) bool {
	if r.Relevant != nil {
		return false
	}
	r.Relevant = &relevant
	return true
}

// IsRelevant reports whether the review has been classified as relevant.
func (r *Review) IsRelevant() bool {
	return r.Relevant != nil && *r.Relevant
}

// Identity returns the fields that make two reviews the same review:
// platform, reviewer, date and content, joined by NUL bytes.
func (r *Review) Identity() string {
	return strings.Join([]string{string(r.Platform), r.ReviewerName, r.ReviewDate, r.ReviewContent}, "\x00")
}

// Validate returns an error if the review contains invalid fields.
func (r *Review) Validate() error {
	if r.Platform == "" {
		return Errorf(EINVALID, "review platform required")
	}
	if r.Page < 1 {
		return Errorf(EINVALID, "review page must be positive")
	}
	return nil
}

// Record returns the review as a mapping with a fixed key set. Every key is
// present; rating keys follow the platform schema and "relevant" appears
// once the review has been classified.
func (r *Review) Record() map[string]any {
	m := map[string]any{
		"reviewer_name":        r.ReviewerName,
		"reviewer_description": r.ReviewerDescription,
		"review_date":          r.ReviewDate,
		"review_title":         r.ReviewTitle,
		"review_content":       r.ReviewContent,
		"platform":             string(r.Platform),
		"page":                 r.Page,
	}
	for _, key := range RatingKeys(r.Platform) {
		m[key] = r.Rating(key)
	}
	if r.Relevant != nil {
		m["relevant"] = *r.Relevant
	}
	return m
}

// MarshalJSON encodes the review using its record mapping.
func (r *Review) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Record())
}

// ReviewService represents a service for persisting reviews.
type ReviewService interface {
	// CreateReviews stores reviews, skipping any whose platform, reviewer,
	// date and content match a stored review. Returns the number inserted.
	CreateReviews(ctx context.Context, reviews []*Review) (int, error)

	// FindReviews retrieves reviews matching the filter.
	FindReviews(ctx context.Context, filter ReviewFilter) ([]*Review, error)

	// DeleteReviewsByPlatform removes all reviews for a platform.
	DeleteReviewsByPlatform(ctx context.Context, platform Platform) error
}

// ReviewFilter represents a filter for FindReviews.
type ReviewFilter struct {
	Platform *Platform `json:"platform"`
	Relevant *bool     `json:"relevant"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Exporter writes reviews to an external destination such as a spreadsheet.
type Exporter interface {
	Export(ctx context.Context, reviews []*Review) error
}
