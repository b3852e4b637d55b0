package extract

import (
	"regexp"
	"strconv"

	"github.com/akash-new/reviewscout"
)

// DefaultRatingWindow bounds how far after a category label glyphs are
// counted.
const DefaultRatingWindow = 600

// Rating extracts one rating category from a review block.
type Rating struct {
	// Key is the rating field the value is stored under.
	Key string

	// Explicit patterns yield a value such as "4/5" that is kept verbatim.
	Explicit []reviewscout.Pattern

	// Label locates the category label preceding the rating glyphs.
	Label *regexp.Regexp

	// Glyph matches one filled rating glyph.
	Glyph *regexp.Regexp

	// Window is the number of bytes after the label searched for glyphs.
	// Zero means DefaultRatingWindow.
	Window int
}

// value returns the rating in block, or reviewscout.NoRating. The glyph
// window ends early at the next match of any label in stops.
func (r *Rating) value(block string, stops []*regexp.Regexp) string {
	if v, ok := first(r.Explicit, block); ok {
		return v
	}
	if r.Label == nil || r.Glyph == nil {
		return reviewscout.NoRating
	}
	loc := r.Label.FindStringIndex(block)
	if loc == nil {
		return reviewscout.NoRating
	}

	size := r.Window
	if size <= 0 {
		size = DefaultRatingWindow
	}
	start := loc[1]
	end := runeFloor(block, start+size)
	window := block[start:end]
	for _, stop := range stops {
		if m := stop.FindStringIndex(window); m != nil {
			window = window[:m[0]]
		}
	}

	if n := len(r.Glyph.FindAllStringIndex(window, -1)); n > 0 {
		return strconv.Itoa(n)
	}
	return reviewscout.NoRating
}
