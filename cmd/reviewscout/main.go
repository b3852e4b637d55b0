package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/akash-new/reviewscout"
	"github.com/akash-new/reviewscout/ahocorasick"
	"github.com/akash-new/reviewscout/bloom"
	"github.com/akash-new/reviewscout/crawl"
	"github.com/akash-new/reviewscout/extract"
	"github.com/akash-new/reviewscout/gemini"
	"github.com/akash-new/reviewscout/htmltomarkdown"
	rshttp "github.com/akash-new/reviewscout/http"
	"github.com/akash-new/reviewscout/prometheus"
	"github.com/akash-new/reviewscout/readability"
	"github.com/akash-new/reviewscout/redis"
	"github.com/akash-new/reviewscout/relevance"
	"github.com/akash-new/reviewscout/rod"
	rsslog "github.com/akash-new/reviewscout/slog"
	"github.com/akash-new/reviewscout/source"
	"github.com/akash-new/reviewscout/sqlite"
	"github.com/akash-new/reviewscout/trafilatura"
	"github.com/akash-new/reviewscout/yaml"
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := loadEnvFile(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ReviewService reviewscout.ReviewService

	// Getenv reads environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Getenv: os.Getenv,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i].Close())
	}
	m.closers = nil
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("reviewscout"),
		kong.Description("Scrape third-party reviews and label them by relevance."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'reviewscout --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = kongCtx.Selected().Name

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Config, err = yaml.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", reviewscout.ErrorMessage(err))
		return err
	}

	if cmd != "platforms" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set REVIEWSCOUT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		m.ReviewService = sqlite.NewReviewService(m.DB)
		deps.Reviews = m.ReviewService
	}
	defer m.Close()

	if cmd == "scrape" {
		if err := m.wireScrape(ctx, deps, &cli.Scrape); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wireScrape builds the fetch, extract and classify pipeline.
func (m *Main) wireScrape(ctx context.Context, deps *Dependencies, c *ScrapeCmd) error {
	cfg := deps.Config
	logger := deps.Logger
	metrics := prometheus.NewMetrics()

	arbiter, err := m.arbiter(ctx, deps, c.NoArbiter, metrics)
	if err != nil {
		return err
	}

	opts := []relevance.Option{
		relevance.WithPolicy(cfg.Filter.Policy()),
		relevance.WithMatcher(func(keywords []string) reviewscout.KeywordMatcher {
			return ahocorasick.NewMatcher(keywords)
		}),
		relevance.WithLogger(logger),
	}
	if arbiter != nil {
		opts = append(opts, relevance.WithArbiter(arbiter))
	}
	classifier, err := relevance.NewClassifier(cfg.Lexicon, opts...)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", reviewscout.ErrorMessage(err))
		return err
	}

	converter := htmltomarkdown.NewConverter()
	text := extract.TextChain{trafilatura.NewTextExtractor(), readability.NewTextExtractor()}

	fetchers := make(map[reviewscout.FetchMode]reviewscout.Fetcher)

	deps.Metrics = metrics
	deps.Classifier = prometheus.NewClassifier(classifier, metrics)
	deps.Crawler = &crawl.Crawler{
		Classifier:   deps.Classifier,
		Reviews:      deps.Reviews,
		Seen:         bloom.NewFilter(10000, 0.001),
		RateLimiter:  crawl.NewDomainLimiter(cfg.Scrape.RequestDelay),
		MaxPages:     cfg.Scrape.MaxPages,
		RequestDelay: cfg.Scrape.RequestDelay,
		Concurrency:  c.Concurrency,
		Logger:       logger,
	}
	deps.Fetcher = func(mode reviewscout.FetchMode) (reviewscout.Fetcher, error) {
		if c.Browser {
			mode = reviewscout.FetchBrowser
		}
		if f, ok := fetchers[mode]; ok {
			return f, nil
		}

		var f reviewscout.Fetcher
		switch mode {
		case reviewscout.FetchBrowser:
			rf, err := rod.NewFetcher(
				rod.WithFetchTimeout(cfg.Scrape.Timeout),
				rod.WithUserAgent(cfg.Scrape.UserAgent),
			)
			if err != nil {
				fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
				return nil, fmt.Errorf("failed to start browser: %w", err)
			}
			f = rf
		default:
			f = rshttp.NewFetcher(
				rshttp.WithTimeout(cfg.Scrape.Timeout),
				rshttp.WithUserAgent(cfg.Scrape.UserAgent),
			)
		}
		f = rsslog.NewLoggingFetcher(f, logger)
		fetchers[mode] = f
		m.closers = append(m.closers, f)
		return f, nil
	}
	deps.Extractor = func(src reviewscout.Source) (reviewscout.Extractor, error) {
		ext, err := source.New(src.Platform, source.Options{
			Converter: converter,
			Text:      text,
			BaseURL:   src.URL,
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}
		return prometheus.NewExtractor(rsslog.NewLoggingExtractor(ext, logger), metrics), nil
	}

	return nil
}

// arbiter returns the Gemini arbiter, decorated with logging, metrics and
// an optional Redis cache. It returns nil when arbitration is disabled or
// GEMINI_API_KEY is unset.
func (m *Main) arbiter(ctx context.Context, deps *Dependencies, disabled bool, metrics *prometheus.Metrics) (reviewscout.Arbiter, error) {
	if disabled {
		return nil, nil
	}
	apiKey := m.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		deps.Logger.Info("GEMINI_API_KEY not set, ambiguous reviews keep their keyword verdict")
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	model := m.Getenv("GEMINI_MODEL")
	if model == "" {
		model = gemini.DefaultModel
	}

	var arbiter reviewscout.Arbiter = gemini.NewArbiter(client, model)
	arbiter = rsslog.NewLoggingArbiter(arbiter, deps.Logger)
	arbiter = prometheus.NewArbiter(arbiter, metrics)

	if redisURL := m.Getenv("REDIS_URL"); redisURL != "" {
		rc, err := redis.NewClient(redisURL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", reviewscout.ErrorMessage(err))
			return nil, err
		}
		m.closers = append(m.closers, rc)
		arbiter = redis.NewCachingArbiter(rc, arbiter, redis.WithLogger(deps.Logger))
	}

	return arbiter, nil
}

func defaultDBPath() string {
	if path := os.Getenv("REVIEWSCOUT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "reviews.db"
	}
	dir := filepath.Join(home, ".reviewscout")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "reviews.db")
}

// loadEnvFile loads variables from path without overriding the
// environment. A missing file is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
