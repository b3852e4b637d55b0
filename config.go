package reviewscout

import (
	"strings"
	"time"
)

// FetchMode selects how a source's pages are retrieved.
type FetchMode string

// Fetch modes.
const (
	FetchHTTP    FetchMode = "http"
	FetchBrowser FetchMode = "browser"
)

// Source describes one configured review platform.
type Source struct {
	Platform Platform  `yaml:"platform"`
	URL      string    `yaml:"url"`
	Fetch    FetchMode `yaml:"fetch"`

	// ScrapeAllowed is false for platforms whose terms forbid scraping.
	ScrapeAllowed bool `yaml:"scrape_allowed"`
}

// FilterConfig describes which platforms relevance filtering applies to.
type FilterConfig struct {
	Enabled      bool       `yaml:"enabled"`
	AllPlatforms bool       `yaml:"all_platforms"`
	Platforms    []Platform `yaml:"platforms"`
}

// Policy converts the filter configuration into a FilterPolicy. A disabled
// filter gates nothing; AllPlatforms gates every platform, listed or not.
func (c FilterConfig) Policy() FilterPolicy {
	if !c.Enabled {
		return FilterPolicy{}
	}
	if c.AllPlatforms {
		return FilterPolicy{Default: true}
	}
	p := FilterPolicy{Platforms: make(map[Platform]bool, len(c.Platforms))}
	for _, platform := range c.Platforms {
		p.Platforms[platform] = true
	}
	return p
}

// ScrapeConfig holds crawler settings.
type ScrapeConfig struct {
	MaxPages     int           `yaml:"max_pages"`
	RequestDelay time.Duration `yaml:"request_delay"`
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout"`
}

// Config is the full application configuration.
type Config struct {
	Sources []Source     `yaml:"sources"`
	Filter  FilterConfig `yaml:"filter"`
	Scrape  ScrapeConfig `yaml:"scrape"`
	Lexicon Lexicon      `yaml:"lexicon"`
}

// Source returns the configured source for platform, matched without
// regard to case.
func (c *Config) Source(platform Platform) (Source, error) {
	for _, s := range c.Sources {
		if strings.EqualFold(string(s.Platform), string(platform)) {
			return s, nil
		}
	}
	return Source{}, Errorf(ENOTFOUND, "unknown platform %q", platform)
}

// ScrapeableSources returns the sources whose scraping is allowed.
func (c *Config) ScrapeableSources() []Source {
	var out []Source
	for _, s := range c.Sources {
		if s.ScrapeAllowed {
			out = append(out, s)
		}
	}
	return out
}

// Validate returns an error if the configuration is unusable. Filter
// platforms are resolved against the sources and rewritten to the source's
// spelling.
func (c *Config) Validate() error {
	seen := make(map[Platform]bool, len(c.Sources))
	for _, s := range c.Sources {
		if s.Platform == "" {
			return Errorf(EINVALID, "source platform required")
		}
		if seen[s.Platform] {
			return Errorf(ECONFLICT, "duplicate source %q", s.Platform)
		}
		seen[s.Platform] = true
		if s.URL == "" {
			return Errorf(EINVALID, "source %q: url required", s.Platform)
		}
		switch s.Fetch {
		case "", FetchHTTP, FetchBrowser:
		default:
			return Errorf(EINVALID, "source %q: unknown fetch mode %q", s.Platform, s.Fetch)
		}
	}
	for i, platform := range c.Filter.Platforms {
		src, err := c.Source(platform)
		if err != nil {
			return Errorf(EINVALID, "filter: unknown platform %q", platform)
		}
		c.Filter.Platforms[i] = src.Platform
	}
	if c.Scrape.MaxPages < 0 {
		return Errorf(EINVALID, "max pages must not be negative")
	}
	return c.Lexicon.Validate()
}
