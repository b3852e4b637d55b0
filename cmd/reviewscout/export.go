package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akash-new/reviewscout"
	"github.com/akash-new/reviewscout/excelize"
	"github.com/akash-new/reviewscout/fs"
)

// Run executes the export command. Paths ending in .xlsx produce a
// spreadsheet; any other path is a directory for JSON files.
func (c *ExportCmd) Run(deps *Dependencies) error {
	var filter reviewscout.ReviewFilter
	if c.Platform != "" {
		platform := reviewscout.Platform(c.Platform)
		if src, err := deps.Config.Source(platform); err == nil {
			platform = src.Platform
		}
		filter.Platform = &platform
	}
	if c.RelevantOnly {
		v := true
		filter.Relevant = &v
	}

	reviews, err := deps.Reviews.FindReviews(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", reviewscout.ErrorMessage(err))
		return err
	}
	if len(reviews) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no reviews to export. Use 'reviewscout scrape' to collect some.")
		return reviewscout.Errorf(reviewscout.ENOTFOUND, "no reviews to export")
	}

	var exporter reviewscout.Exporter
	if strings.EqualFold(filepath.Ext(c.Path), ".xlsx") {
		exporter = excelize.NewExporter(c.Path)
	} else {
		exporter = fs.NewJSONExporter(c.Path)
	}

	if err := exporter.Export(deps.Ctx, reviews); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", reviewscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d reviews to %s\n", len(reviews), c.Path)
	return nil
}
