package main_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/akash-new/reviewscout"
	main "github.com/akash-new/reviewscout/cmd/reviewscout"
	"github.com/akash-new/reviewscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	stored := func(got *reviewscout.ReviewFilter) *mock.ReviewService {
		return &mock.ReviewService{
			FindReviewsFn: func(_ context.Context, filter reviewscout.ReviewFilter) ([]*reviewscout.Review, error) {
				if got != nil {
					*got = filter
				}
				return []*reviewscout.Review{
					review(reviewscout.PlatformCourseReport, 1, "Priya S.", "Great instructors.", ptr(true)),
					review(reviewscout.PlatformTrustpilot, 1, "Sam", "Helpful mock interviews.", ptr(true)),
				}, nil
			},
		}
	}

	t.Run("writes a spreadsheet for .xlsx paths", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "reviews.xlsx")
		deps, stdout, _ := newDeps(t, stored(nil))

		err := (&main.ExportCmd{Path: path}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Exported 2 reviews")

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, []string{"Course Report", "Trustpilot"}, f.GetSheetList())
	})

	t.Run("writes JSON files for other paths", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "out")
		deps, _, _ := newDeps(t, stored(nil))

		err := (&main.ExportCmd{Path: dir}).Run(deps)

		require.NoError(t, err)
		for _, name := range []string{"all_reviews.json", "course_report_reviews.json", "trustpilot_reviews.json"} {
			_, err := os.Stat(filepath.Join(dir, name))
			assert.NoError(t, err, name)
		}
	})

	t.Run("filters by platform and relevance", func(t *testing.T) {
		t.Parallel()

		var got reviewscout.ReviewFilter
		deps, _, _ := newDeps(t, stored(&got))

		err := (&main.ExportCmd{Path: t.TempDir(), Platform: "Course Report", RelevantOnly: true}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Platform)
		assert.Equal(t, reviewscout.PlatformCourseReport, *got.Platform)
		require.NotNil(t, got.Relevant)
		assert.True(t, *got.Relevant)
	})

	t.Run("fails when nothing is stored", func(t *testing.T) {
		t.Parallel()

		reviews := &mock.ReviewService{
			FindReviewsFn: func(_ context.Context, _ reviewscout.ReviewFilter) ([]*reviewscout.Review, error) {
				return nil, nil
			},
		}
		deps, _, stderr := newDeps(t, reviews)

		err := (&main.ExportCmd{Path: t.TempDir()}).Run(deps)

		assert.Equal(t, reviewscout.ENOTFOUND, reviewscout.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no reviews to export")
	})
}
