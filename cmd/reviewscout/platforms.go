package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/akash-new/reviewscout"
	"github.com/akash-new/reviewscout/source"
)

// Run executes the platforms command.
func (c *PlatformsCmd) Run(deps *Dependencies) error {
	policy := deps.Config.Filter.Policy()

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLATFORM\tSCRAPE\tFETCH\tFILTERED\tURL")
	for _, src := range deps.Config.Sources {
		scrape := "no"
		switch {
		case src.ScrapeAllowed && source.Supported(src.Platform):
			scrape = "yes"
		case src.ScrapeAllowed:
			scrape = "unsupported"
		}
		fetch := src.Fetch
		if fetch == "" {
			fetch = reviewscout.FetchHTTP
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", src.Platform, scrape, fetch, yesNo(policy.Applies(src.Platform)), src.URL)
	}
	return w.Flush()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
