// Package prefetch warms the session cache for catalog entries the user is
// about to open. Work is best-effort: failures are logged at debug level and
// never reach the UI.
package prefetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/five82/dex/internal/cache"
	"github.com/five82/dex/internal/logging"
	"github.com/five82/dex/internal/pokeapi"
)

const (
	defaultWorkers  = 2
	defaultInterval = 150 * time.Millisecond
	queueSize       = 32
)

// ItemSource fetches detail records.
type ItemSource interface {
	GetItem(ctx context.Context, nameOrID string) (pokeapi.DetailRecord, error)
}

// Options tunes the worker pool. A zero Interval disables throttling; a
// negative one selects the default.
type Options struct {
	Workers  int
	Interval time.Duration
	Logger   *slog.Logger
}

// Prefetcher runs a small pool of workers that fetch detail records into a
// cache.Session.
type Prefetcher struct {
	src      ItemSource
	sess     *cache.Session
	logger   *slog.Logger
	workers  int
	throttle *throttle
	queue    chan string
	flight   singleflight.Group
}

// New builds a Prefetcher. Call Run to start the workers.
func New(src ItemSource, sess *cache.Session, opts Options) *Prefetcher {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	interval := opts.Interval
	if interval < 0 {
		interval = defaultInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Prefetcher{
		src:      src,
		sess:     sess,
		logger:   logger,
		workers:  workers,
		throttle: newThrottle(interval),
		queue:    make(chan string, queueSize),
	}
}

// Run starts the workers and blocks until ctx is cancelled.
func (p *Prefetcher) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			p.work(gCtx)
			return nil
		})
	}
	return g.Wait()
}

// Enqueue schedules name for prefetching. It never blocks: names already
// cached are skipped and a full queue drops the request. It reports whether
// the name was queued.
func (p *Prefetcher) Enqueue(name string) bool {
	if p == nil || name == "" || p.sess.Has(cache.Key(name)) {
		return false
	}
	select {
	case p.queue <- name:
		return true
	default:
		p.logger.Debug("prefetch queue full", slog.String("name", name))
		return false
	}
}

// Prefetch fetches name into the cache unless it is already there. Concurrent
// calls for the same name share one request.
func (p *Prefetcher) Prefetch(ctx context.Context, name string) error {
	key := cache.Key(name)
	if p.sess.Has(key) {
		return nil
	}
	_, err, _ := p.flight.Do(key, func() (any, error) {
		if p.sess.Has(key) {
			return nil, nil
		}
		if err := p.throttle.wait(ctx); err != nil {
			return nil, err
		}
		rec, err := p.src.GetItem(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("prefetch %s: %w", name, err)
		}
		return nil, p.sess.PutLive(ctx, key, rec)
	})
	return err
}

func (p *Prefetcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case name := <-p.queue:
			if err := p.Prefetch(ctx, name); err != nil {
				p.logger.Debug("prefetch failed", slog.String("name", name), slog.String("error", err.Error()))
			}
		}
	}
}
