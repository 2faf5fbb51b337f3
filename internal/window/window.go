// Package window assembles the historical evidence for a claim: one
// observation per calendar day, ending at the claim's anchor date.
package window

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agroshield/claim-validation-service/internal/gateway"
	"github.com/agroshield/claim-validation-service/internal/models"
	"github.com/agroshield/claim-validation-service/internal/observability"
)

// DefaultFetchConcurrency bounds parallel provider calls per window build.
const DefaultFetchConcurrency = 8

// Builder produces historical windows by calling the gateway once per day.
// The window is best-effort: days whose fetch fails are dropped, not
// zero-filled, so the result may be shorter than requested and may be empty.
type Builder struct {
	gw          gateway.WeatherGateway
	concurrency int
	logger      *zap.Logger
}

// NewBuilder returns a Builder over the given gateway. concurrency <= 0
// falls back to DefaultFetchConcurrency.
func NewBuilder(gw gateway.WeatherGateway, concurrency int, logger *zap.Logger) *Builder {
	if concurrency <= 0 {
		concurrency = DefaultFetchConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{gw: gw, concurrency: concurrency, logger: logger}
}

// Build fetches observations for the days days ending at anchor inclusive,
// spanning [anchor-(days-1), anchor]. Fetches run concurrently; the window
// is reassembled in ascending date order. Failed days are dropped without
// retry. Returns ctx.Err if the context ends before the build completes.
func (b *Builder) Build(ctx context.Context, location string, anchor time.Time, days int) (models.HistoricalWindow, error) {
	if days <= 0 {
		return nil, nil
	}

	results := make([]*models.Observation, days)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i := 0; i < days; i++ {
		i := i
		g.Go(func() error {
			date := anchor.AddDate(0, 0, i-(days-1))
			obs, err := b.gw.Fetch(gctx, location, date, gateway.DefaultHour)
			if err != nil {
				// A failed day is an absence, never fatal for the window.
				b.logger.Debug("day dropped from window",
					zap.String("location", location),
					zap.String("date", date.Format(models.DateLayout)),
					zap.Error(err))
				return nil
			}
			results[i] = &obs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	win := make(models.HistoricalWindow, 0, days)
	for _, obs := range results {
		if obs != nil {
			win = append(win, *obs)
		}
	}

	observability.WindowDaysFetchedTotal.Add(float64(len(win)))
	observability.WindowDaysDroppedTotal.Add(float64(days - len(win)))
	return win, nil
}
