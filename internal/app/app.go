package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/five82/dex/internal/cache"
	"github.com/five82/dex/internal/config"
	"github.com/five82/dex/internal/logging"
	"github.com/five82/dex/internal/logtail"
	"github.com/five82/dex/internal/pokeapi"
	"github.com/five82/dex/internal/prefetch"
	"github.com/five82/dex/internal/prefs"
	"github.com/five82/dex/internal/route"
	"github.com/five82/dex/internal/ui"
)

// Options configure the dex application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/dex/prefs.toml
	APIBase    string // overrides api_base when set
	LogLevel   string // overrides log_level when set
	Route      route.Route
}

// Run boots the dex TUI until the user quits or the context is cancelled.
// It returns the route of the view the user left from.
func Run(ctx context.Context, opts Options) (route.Route, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return opts.Route, err
	}

	logger, closer, err := logging.Open(cfg.LogFile, cfg.SlogLevel())
	if err != nil {
		return opts.Route, fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs failed", slog.String("error", err.Error()))
	}

	client, err := pokeapi.NewClient(cfg.APIBase,
		pokeapi.WithTimeout(cfg.RequestTimeout),
		pokeapi.WithLogger(logger),
	)
	if err != nil {
		return opts.Route, fmt.Errorf("init api client: %w", err)
	}

	logger.Info("dex starting",
		slog.String("route", opts.Route.String()),
		slog.String("api_base", cfg.APIBase),
		slog.String("locale", cfg.Locale))

	sess := cache.New()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(runCtx)

	uiOpts := ui.Options{
		Context:        gCtx,
		Client:         client,
		Cache:          sess,
		Route:          opts.Route,
		Locale:         cfg.Locale,
		FallbackLocale: cfg.FallbackLocale,
		SearchDelay:    cfg.SearchDebounce,
		LogPath:        cfg.LogFile,
		Logger:         logger,
		ThemeName:      userPrefs.Theme,
		PrefsPath:      opts.PrefsPath,
	}

	if cfg.PrefetchWorkers > 0 {
		pf := prefetch.New(client, sess, prefetch.Options{
			Workers:  cfg.PrefetchWorkers,
			Interval: cfg.PrefetchInterval,
			Logger:   logger,
		})
		uiOpts.Prefetcher = pf
		g.Go(func() error {
			return pf.Run(gCtx)
		})
	}

	logChanges := make(chan struct{}, 1)
	uiOpts.LogChanges = logChanges
	g.Go(func() error {
		if err := logtail.Watch(gCtx, cfg.LogFile, logger, notify(logChanges)); err != nil {
			logger.Warn("log watch disabled", slog.String("error", err.Error()))
		}
		return nil
	})

	final, uiErr := ui.Run(uiOpts)
	cancel()
	if err := g.Wait(); err != nil {
		logger.Warn("background workers stopped", slog.String("error", err.Error()))
	}
	logger.Info("dex stopped", slog.String("route", final.String()), slog.Int("cached", sess.Len()))

	if uiErr != nil {
		return final, fmt.Errorf("run ui: %w", uiErr)
	}
	return final, nil
}

// resolveConfig loads the config file and applies command-line overrides.
func resolveConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	overridden := false
	if v := strings.TrimSpace(opts.APIBase); v != "" {
		cfg.APIBase = v
		overridden = true
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
		overridden = true
	}
	if overridden {
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("invalid flags: %w", err)
		}
	}
	return cfg, nil
}

// notify returns a callback that signals ch without blocking. Pending
// signals collapse into one.
func notify(ch chan<- struct{}) func() {
	return func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
