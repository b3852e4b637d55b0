package relevance

import (
	"context"
	"log/slog"

	"github.com/akash-new/reviewscout"
)

// Stats counts the verdicts of one Label call.
type Stats struct {
	Total       int
	Relevant    int
	NotRelevant int

	// Skipped counts reviews that already carried a verdict.
	Skipped int

	Stages map[reviewscout.Stage]int
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("total", s.Total),
		slog.Int("relevant", s.Relevant),
		slog.Int("not_relevant", s.NotRelevant),
	}
	if s.Skipped > 0 {
		attrs = append(attrs, slog.Int("skipped", s.Skipped))
	}
	for _, stage := range []reviewscout.Stage{
		reviewscout.StageBypass,
		reviewscout.StageProfile,
		reviewscout.StageNoReference,
		reviewscout.StageShort,
		reviewscout.StageTheme,
		reviewscout.StageArbiter,
	} {
		if n := s.Stages[stage]; n > 0 {
			attrs = append(attrs, slog.Int(string(stage), n))
		}
	}
	return slog.GroupValue(attrs...)
}

// Label classifies every review that has no verdict yet and records the
// verdict on it. Reviews are never dropped.
func Label(ctx context.Context, c reviewscout.Classifier, reviews []*reviewscout.Review) Stats {
	stats := Stats{Stages: make(map[reviewscout.Stage]int)}
	for _, r := range reviews {
		stats.Total++
		if r.Relevant != nil {
			stats.Skipped++
			stats.count(*r.Relevant)
			continue
		}
		v := c.Classify(ctx, r.ReviewContent, r.Platform)
		r.SetRelevant(v.Relevant)
		stats.Stages[v.Stage]++
		stats.count(v.Relevant)
	}
	return stats
}

func (s *Stats) count(relevant bool) {
	if relevant {
		s.Relevant++
	} else {
		s.NotRelevant++
	}
}
