// Package notifier delivers alert bodies to the configured chat webhooks.
// Deliveries are independent per endpoint per record; nothing blocks
// anything else and nothing is retried.
package notifier

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/fin-tools/tier-sentinel/pkg/models/api"
)

// Fanout fans each inbound record out to every configured target.
type Fanout struct {
	targets []Target
}

func NewFanout(targets ...Target) *Fanout {
	return &Fanout{targets: targets}
}

// Enabled reports whether any endpoint is configured at all.
func (f *Fanout) Enabled() bool {
	return len(f.targets) > 0
}

// Deliver attempts every record against every target concurrently. A failed
// delivery is logged and counted, never propagated, so one dead endpoint
// cannot block the others.
func (f *Fanout) Deliver(ctx context.Context, records []string) api.NotifyResult {
	logger := zerolog.Ctx(ctx)

	if !f.Enabled() {
		logger.Warn().Msg("no webhook endpoints configured, skipping delivery")
		return api.NotifyResult{OK: true, Records: len(records)}
	}

	var attempted, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)

	for _, record := range records {
		for _, target := range f.targets {
			record, target := record, target
			g.Go(func() error {
				attempted.Add(1)
				if err := target.Deliver(gctx, record); err != nil {
					failed.Add(1)
					logger.Error().
						Err(err).
						Str("target", string(target.Kind())).
						Msg("webhook delivery failed")
				}
				return nil
			})
		}
	}
	// Delivery goroutines always return nil; failures are only counted.
	_ = g.Wait()

	return api.NotifyResult{
		OK:        true,
		Records:   len(records),
		Attempted: int(attempted.Load()),
		Failed:    int(failed.Load()),
	}
}
