package extract

import (
	"regexp"
	"strings"

	"github.com/akash-new/reviewscout"
)

var (
	_ reviewscout.Strategy = (*SplitStrategy)(nil)
	_ reviewscout.Strategy = (*WindowStrategy)(nil)
	_ reviewscout.Strategy = (*markdownStrategy)(nil)
)

// SplitMode says where the split marker sits within a segment.
type SplitMode int

const (
	// SplitBefore starts each segment at a marker.
	SplitBefore SplitMode = iota
	// SplitAfter ends each segment with the line holding a marker. Text after
	// the last marker line is not a segment.
	SplitAfter
)

// SplitStrategy segments a page on a recurring inline marker.
type SplitStrategy struct {
	name   string
	marker *regexp.Regexp
	mode   SplitMode
}

// NewSplitStrategy returns a SplitStrategy. It panics if marker does not
// compile.
func NewSplitStrategy(name, marker string, mode SplitMode) *SplitStrategy {
	return &SplitStrategy{name: name, marker: regexp.MustCompile(marker), mode: mode}
}

// Name implements reviewscout.Strategy.
func (s *SplitStrategy) Name() string { return s.name }

// Blocks implements reviewscout.Strategy.
func (s *SplitStrategy) Blocks(page string) ([]string, error) {
	locs := s.marker.FindAllStringIndex(page, -1)
	if len(locs) == 0 {
		return nil, nil
	}

	var blocks []string
	add := func(b string) {
		if b = strings.TrimSpace(b); b != "" {
			blocks = append(blocks, b)
		}
	}

	switch s.mode {
	case SplitAfter:
		prev := 0
		for _, loc := range locs {
			end := lineEnd(page, loc[1])
			if end <= prev {
				continue
			}
			add(page[prev:end])
			prev = end
		}
	default:
		for i, loc := range locs {
			end := len(page)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			add(page[loc[0]:end])
		}
	}
	return blocks, nil
}

func lineEnd(s string, i int) int {
	if j := strings.IndexByte(s[i:], '\n'); j >= 0 {
		return i + j
	}
	return len(s)
}

// WindowStrategy takes a fixed-size window around every anchor match.
type WindowStrategy struct {
	name   string
	anchor *regexp.Regexp
	before int
	after  int
	stop   *regexp.Regexp
}

// WindowOption configures a WindowStrategy.
type WindowOption func(*WindowStrategy)

// WithStop cuts each window at the first match of expr after its anchor.
func WithStop(expr string) WindowOption {
	return func(w *WindowStrategy) {
		w.stop = regexp.MustCompile(expr)
	}
}

// NewWindowStrategy returns a WindowStrategy spanning before bytes ahead of
// each anchor match and after bytes past it.
func NewWindowStrategy(name, anchor string, before, after int, opts ...WindowOption) *WindowStrategy {
	w := &WindowStrategy{
		name:   name,
		anchor: regexp.MustCompile(anchor),
		before: before,
		after:  after,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name implements reviewscout.Strategy.
func (w *WindowStrategy) Name() string { return w.name }

// Blocks implements reviewscout.Strategy. Window edges never split a
// multi-byte character.
func (w *WindowStrategy) Blocks(page string) ([]string, error) {
	var blocks []string
	for _, loc := range w.anchor.FindAllStringIndex(page, -1) {
		start := runeCeil(page, loc[0]-w.before)
		end := runeFloor(page, loc[1]+w.after)
		if w.stop != nil {
			if m := w.stop.FindStringIndex(page[loc[1]:end]); m != nil {
				end = loc[1] + m[0]
			}
		}
		if b := strings.TrimSpace(page[start:end]); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks, nil
}

// markdownStrategy runs a strategy against the markdown rendering of HTML
// pages.
type markdownStrategy struct {
	converter reviewscout.Converter
	inner     reviewscout.Strategy
}

// Markdown wraps strategy so that HTML pages are converted to markdown
// before segmentation. Other pages pass through unchanged.
func Markdown(converter reviewscout.Converter, strategy reviewscout.Strategy) reviewscout.Strategy {
	if converter == nil {
		return strategy
	}
	return &markdownStrategy{converter: converter, inner: strategy}
}

func (m *markdownStrategy) Name() string { return m.inner.Name() }

func (m *markdownStrategy) Blocks(page string) ([]string, error) {
	if !IsHTML(page) {
		return m.inner.Blocks(page)
	}
	md, err := m.converter.Convert(page)
	if err != nil {
		return nil, err
	}
	return m.inner.Blocks(md)
}
