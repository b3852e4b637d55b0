package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/akash-new/reviewscout"
	main "github.com/akash-new/reviewscout/cmd/reviewscout"
	"github.com/akash-new/reviewscout/yaml"
	"github.com/stretchr/testify/require"
)

// newDeps returns dependencies with the default configuration and
// captured output.
func newDeps(t *testing.T, reviews reviewscout.ReviewService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	cfg, err := yaml.Default()
	require.NoError(t, err)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  stderr,
		Config:  cfg,
		Reviews: reviews,
	}, stdout, stderr
}

func review(platform reviewscout.Platform, page int, name, content string, relevant *bool) *reviewscout.Review {
	r := reviewscout.NewReview(platform, page)
	r.ReviewerName = name
	r.ReviewContent = content
	r.Relevant = relevant
	return r
}

func ptr[T any](v T) *T {
	return &v
}
