package main

import (
	"fmt"
	"strings"

	"github.com/akash-new/reviewscout"
	"github.com/akash-new/reviewscout/crawl"
	"github.com/akash-new/reviewscout/excelize"
	"github.com/akash-new/reviewscout/fs"
	"github.com/akash-new/reviewscout/source"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	sources, err := c.sources(deps.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", reviewscout.ErrorMessage(err))
		return err
	}
	if len(sources) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no platform allows scraping. Use 'reviewscout platforms' to see the configuration.")
		return reviewscout.Errorf(reviewscout.EINVALID, "no scrapeable platforms")
	}

	crawler := deps.Crawler
	switch {
	case c.AllPages:
		crawler.MaxPages = 0
	case c.MaxPages > 0:
		crawler.MaxPages = c.MaxPages
	}
	if c.RequestDelay > 0 {
		crawler.RequestDelay = c.RequestDelay
	}
	if c.Concurrency > 0 {
		crawler.Concurrency = c.Concurrency
	}

	targets := make([]crawl.Target, 0, len(sources))
	for _, src := range sources {
		fetcher, err := deps.Fetcher(src.Fetch)
		if err != nil {
			return err
		}
		extractor, err := deps.Extractor(src)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", reviewscout.ErrorMessage(err))
			return err
		}
		targets = append(targets, crawl.Target{URL: src.URL, Fetcher: fetcher, Extractor: extractor})
	}

	progress := func(event crawl.ProgressEvent) {
		if event.Error != nil {
			fmt.Fprintf(deps.Stderr, "  %s page %d: %v\n", event.Platform, event.Page, event.Error)
			return
		}
		suffix := ""
		if event.Fallback {
			suffix = " (whole page)"
		}
		fmt.Fprintf(deps.Stdout, "  %s page %d: %d reviews%s\n", event.Platform, event.Page, event.Reviews, suffix)
	}

	results, err := crawler.CrawlAll(deps.Ctx, targets, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	var all []*reviewscout.Review
	var failed []string
	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%s: %d reviews from %d pages (%d new, %d duplicates, %d relevant)\n",
			r.Platform, len(r.Reviews), r.Pages, r.Inserted, r.Duplicates, r.Stats.Relevant)
		if r.Err != nil {
			failed = append(failed, string(r.Platform))
		}
		all = append(all, r.Reviews...)
	}

	if c.Xlsx != "" && len(all) > 0 {
		if err := excelize.NewExporter(c.Xlsx).Export(deps.Ctx, all); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", reviewscout.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Xlsx)
	}
	if c.JSONDir != "" {
		if err := fs.NewJSONExporter(c.JSONDir).Export(deps.Ctx, all); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", reviewscout.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote JSON files to %s\n", c.JSONDir)
	}
	if c.MetricsFile != "" && deps.Metrics != nil {
		if err := deps.Metrics.WriteToTextfile(c.MetricsFile); err != nil {
			fmt.Fprintf(deps.Stderr, "error: writing metrics: %v\n", err)
			return err
		}
	}

	if len(failed) > 0 {
		return reviewscout.Errorf(reviewscout.EINTERNAL, "scraping stopped early for %s", strings.Join(failed, ", "))
	}
	return nil
}

// sources resolves the requested platforms against the configuration. With
// no platforms named, every scrapeable source is returned.
func (c *ScrapeCmd) sources(cfg *reviewscout.Config) ([]reviewscout.Source, error) {
	if len(c.Platforms) == 0 {
		var out []reviewscout.Source
		for _, src := range cfg.ScrapeableSources() {
			if source.Supported(src.Platform) {
				out = append(out, src)
			}
		}
		return out, nil
	}

	out := make([]reviewscout.Source, 0, len(c.Platforms))
	for _, name := range c.Platforms {
		src, err := cfg.Source(reviewscout.Platform(name))
		if err != nil {
			return nil, err
		}
		if !src.ScrapeAllowed {
			return nil, reviewscout.Errorf(reviewscout.EINVALID, "scraping %s is not allowed", src.Platform)
		}
		if !source.Supported(src.Platform) {
			return nil, reviewscout.Errorf(reviewscout.EINVALID, "no extractor for %s", src.Platform)
		}
		out = append(out, src)
	}
	return out, nil
}
