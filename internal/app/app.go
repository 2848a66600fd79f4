package app

import (
	"context"
	"fmt"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/eiga"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/ui"
)

// Options configure the marquee application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses $XDG_CONFIG_HOME/marquee/prefs.toml
	LogPath    string // empty uses $XDG_STATE_HOME/marquee/marquee.log
	Verbose    bool
}

// NewClient builds the theater page client described by cfg.
func NewClient(cfg config.Config) *eiga.Client {
	return eiga.NewClient(eiga.Options{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.RequestTimeout,
		Rules: eiga.Rules{
			Ignored:     cfg.Ignored,
			SkipMarkers: cfg.SkipTableMarkers,
		},
	})
}

// Run boots the marquee TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := openLogFile(opts.LogPath, opts.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("prefs unreadable, using defaults", "error", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := &state.Store{}
	poller := NewPoller(store, NewClient(cfg), cfg, logger)
	poller.Start(ctx)

	logger.Info("marquee started", "theaters", len(cfg.Theaters), "cache_ttl", cfg.CacheTTL)

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Config:    cfg,
		Refresh:   poller.Kick,
		ThemeName: userPrefs.Theme,
		TabName:   userPrefs.Tab,
		PrefsPath: opts.PrefsPath,
		Logger:    logger,
	})
}
