package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/eiga"
	"github.com/five82/marquee/internal/state"
)

const (
	defaultPollInterval = time.Minute
	maxBackoff          = 15 * time.Minute
)

// ErrAllTheatersFailed is recorded when a pass produced no usable theater.
var ErrAllTheatersFailed = errors.New("every theater failed to load")

// Poller keeps the store fresh: it collects when the cached listings are
// stale and when a refresh is requested.
type Poller struct {
	store   *state.Store
	fetcher eiga.Fetcher
	cfg     config.Config
	logger  *slog.Logger
	kick    chan struct{}
}

// NewPoller wires a poller to its store and fetcher.
func NewPoller(store *state.Store, fetcher eiga.Fetcher, cfg config.Config, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Poller{
		store:   store,
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
		kick:    make(chan struct{}, 1),
	}
}

// Kick requests an immediate refresh that ignores the cache. It never blocks.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Start launches the background loop. It returns immediately.
func (p *Poller) Start(ctx context.Context) {
	go p.loop(ctx)
}

func (p *Poller) loop(ctx context.Context) {
	interval := p.cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	for {
		if p.store.Stale(time.Now(), p.cfg.CacheTTL) {
			_ = p.Refresh(ctx)
		}

		wait := calculateBackoff(p.store.Snapshot().ConsecutiveFailures, interval)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-p.kick:
			timer.Stop()
			p.store.Invalidate()
		case <-timer.C:
		}
	}
}

// Refresh runs one collection pass and stores the result.
func (p *Poller) Refresh(ctx context.Context) error {
	p.store.SetFetching(true)
	defer p.store.SetFetching(false)

	start := time.Now()
	listings := Collect(ctx, p.fetcher, p.cfg, p.logger)
	if err := ctx.Err(); err != nil {
		return err
	}

	failed := len(listings.Failed())
	if len(listings.Theaters) > 0 && failed == len(listings.Theaters) {
		err := fmt.Errorf("%w (%d theaters)", ErrAllTheatersFailed, failed)
		p.store.Update(listings, err)
		p.logger.Error("schedule refresh failed", "error", err, "elapsed", time.Since(start))
		return err
	}

	p.store.Update(listings, nil)
	p.logger.Info("schedule refreshed",
		"theaters", len(listings.Theaters),
		"failed", failed,
		"movies", listings.MovieCount(),
		"elapsed", time.Since(start),
	)
	return nil
}

// calculateBackoff doubles the base interval for each consecutive failure,
// capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return max(maxBackoff, base)
		}
	}
	return backoff
}
