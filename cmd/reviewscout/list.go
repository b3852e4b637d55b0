package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/akash-new/reviewscout"
)

// previewLength is the number of content characters shown without --full.
const previewLength = 80

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := reviewscout.ReviewFilter{Limit: c.Limit}
	if c.Platform != "" {
		platform := reviewscout.Platform(c.Platform)
		if src, err := deps.Config.Source(platform); err == nil {
			platform = src.Platform
		}
		filter.Platform = &platform
	}
	switch {
	case c.Relevant:
		v := true
		filter.Relevant = &v
	case c.NotRelevant:
		v := false
		filter.Relevant = &v
	}

	reviews, err := deps.Reviews.FindReviews(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", reviewscout.ErrorMessage(err))
		return err
	}

	if len(reviews) == 0 {
		fmt.Fprintln(deps.Stdout, "No reviews found. Use 'reviewscout scrape' to collect some.")
		return nil
	}

	if c.Full {
		fmt.Fprintln(deps.Stdout, reviewscout.FormatReviews(reviews))
		return nil
	}

	for _, r := range reviews {
		fmt.Fprintf(deps.Stdout, "%s  p%d  %s  %s  %s  %s\n",
			r.Platform, r.Page, relevanceMark(r), r.ReviewDate, r.ReviewerName, preview(r.ReviewContent))
	}

	return nil
}

func relevanceMark(r *reviewscout.Review) string {
	switch {
	case r.Relevant == nil:
		return "?"
	case *r.Relevant:
		return "+"
	default:
		return "-"
	}
}

// preview returns the first line of content, cut to previewLength
// characters.
func preview(content string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(content), "\n")
	if utf8.RuneCountInString(line) <= previewLength {
		return line
	}
	return string([]rune(line)[:previewLength]) + "..."
}
