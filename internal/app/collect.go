package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/eiga"
	"github.com/five82/marquee/internal/schedule"
)

// Collect fetches every configured theater in order, pausing cfg.RequestDelay
// between requests. A theater that fails is kept with Err set and no movies.
// Once ctx is done the remaining theaters are marked with the context error.
func Collect(ctx context.Context, fetcher eiga.Fetcher, cfg config.Config, logger *slog.Logger) schedule.Listings {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	listings := schedule.Listings{Theaters: make([]schedule.Theater, 0, len(cfg.Theaters))}
	for i, th := range cfg.Theaters {
		theater := schedule.Theater{Name: th.Name, Area: th.Area, URL: th.URL}

		if i > 0 {
			if err := sleep(ctx, cfg.RequestDelay); err != nil {
				theater.Err = err
				listings.Theaters = append(listings.Theaters, theater)
				continue
			}
		}
		if err := ctx.Err(); err != nil {
			theater.Err = err
			listings.Theaters = append(listings.Theaters, theater)
			continue
		}

		start := time.Now()
		movies, err := fetcher.FetchTheater(ctx, th.URL)
		theater.FetchedAt = time.Now()
		if err != nil {
			theater.Err = err
			logger.Warn("theater fetch failed",
				"theater", th.Name,
				"url", th.URL,
				"elapsed", time.Since(start),
				"error", err,
			)
		} else {
			theater.Movies = movies
			logger.Debug("theater fetched",
				"theater", th.Name,
				"movies", len(movies),
				"elapsed", time.Since(start),
			)
		}
		listings.Theaters = append(listings.Theaters, theater)
	}

	listings.FetchedAt = time.Now()
	return listings
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
