package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/akash-new/reviewscout"
	"github.com/akash-new/reviewscout/crawl"
	"github.com/akash-new/reviewscout/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *reviewscout.Config

	Reviews reviewscout.ReviewService

	// Scrape wiring, set only for the scrape command.
	Crawler    *crawl.Crawler
	Fetcher    func(mode reviewscout.FetchMode) (reviewscout.Fetcher, error)
	Extractor  func(src reviewscout.Source) (reviewscout.Extractor, error)
	Metrics    *prometheus.Metrics
	Classifier reviewscout.Classifier
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Configuration file overlaid on the built-in defaults" env:"REVIEWSCOUT_CONFIG" type:"path"`
	Verbose bool   `short:"v" help:"Log debug output to stderr"`

	Scrape    ScrapeCmd    `cmd:"" help:"Scrape, label and store reviews"`
	List      ListCmd      `cmd:"" help:"List stored reviews"`
	Export    ExportCmd    `cmd:"" help:"Export stored reviews to a spreadsheet or JSON files"`
	Delete    DeleteCmd    `cmd:"" help:"Delete stored reviews of a platform"`
	Platforms PlatformsCmd `cmd:"" help:"List configured platforms"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Platforms    []string      `arg:"" optional:"" help:"Platforms to scrape (default: every platform that allows scraping)"`
	MaxPages     int           `help:"Pages per platform (0 uses the configured value)"`
	AllPages     bool          `help:"Follow pagination to the last page"`
	RequestDelay time.Duration `help:"Delay between pages of one platform (0 uses the configured value)"`
	Browser      bool          `help:"Fetch every platform with the headless browser"`
	NoArbiter    bool          `help:"Never consult the language model for ambiguous reviews"`
	Xlsx         string        `help:"Write the scraped reviews to this spreadsheet" type:"path"`
	JSONDir      string        `name:"json-dir" help:"Write per-platform JSON files into this directory" type:"path"`
	MetricsFile  string        `help:"Write Prometheus metrics to this file" type:"path"`
	Concurrency  int           `short:"c" default:"2" help:"Platforms crawled at once"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Platform    string `short:"p" help:"Only list reviews of this platform"`
	Relevant    bool   `help:"Only list relevant reviews" xor:"relevance"`
	NotRelevant bool   `help:"Only list reviews that are not relevant" xor:"relevance"`
	Full        bool   `help:"Show full review content"`
	Limit       int    `short:"n" help:"Maximum number of reviews"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Path         string `arg:"" help:"Spreadsheet (.xlsx) or directory for JSON files" type:"path"`
	Platform     string `short:"p" help:"Only export reviews of this platform"`
	RelevantOnly bool   `help:"Only export relevant reviews"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Platform string `arg:"" help:"Platform whose reviews are deleted"`
	Force    bool   `help:"Confirm deletion"`
}

// PlatformsCmd is the "platforms" subcommand.
type PlatformsCmd struct{}
