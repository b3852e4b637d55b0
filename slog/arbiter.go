package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/akash-new/reviewscout"
)

var _ reviewscout.Arbiter = (*LoggingArbiter)(nil)

// LoggingArbiter wraps an Arbiter with logging.
type LoggingArbiter struct {
	next   reviewscout.Arbiter
	logger *slog.Logger
}

// NewLoggingArbiter creates a new LoggingArbiter.
func NewLoggingArbiter(next reviewscout.Arbiter, logger *slog.Logger) *LoggingArbiter {
	return &LoggingArbiter{next: next, logger: logger}
}

// Arbitrate delegates to the wrapped arbiter and logs the exchange.
func (a *LoggingArbiter) Arbitrate(ctx context.Context, prompt string) (resp string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("arbitrate",
			"prompt_bytes", len(prompt),
			"response", resp,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Arbitrate(ctx, prompt)
}
