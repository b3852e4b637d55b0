package extract

import (
	"strings"
	"time"
)

// dateLayouts are tried in order; the first successful parse wins.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"Jan. 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// NormalizeDate rewrites s as YYYY-MM-DD when it matches a known date
// layout. Anything else is returned unchanged.
func NormalizeDate(s string) string {
	v := strings.Join(strings.Fields(s), " ")
	if v == "" {
		return s
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}
