package rdb

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/code19m/errx"
	"github.com/rise-and-shine/agrovida/observability/logger"
	"github.com/uptrace/bun"
)

// WaitReady pings db until it answers, at most attempts times with a fixed delay.
func WaitReady(ctx context.Context, db *bun.DB, attempts uint, delay time.Duration) error {
	err := retry.Do(
		func() error {
			return db.PingContext(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Named("rdb").
				With("attempt", n+1, "error", err.Error()).
				Warn("database is not ready yet")
		}),
	)
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"attempts": attempts}))
	}
	return nil
}
