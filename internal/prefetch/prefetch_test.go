package prefetch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/dex/internal/cache"
	"github.com/five82/dex/internal/pokeapi"
)

type countingSource struct {
	calls   atomic.Int32
	release chan struct{}
	fail    bool
}

func (s *countingSource) GetItem(ctx context.Context, name string) (pokeapi.DetailRecord, error) {
	s.calls.Add(1)
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return pokeapi.DetailRecord{}, ctx.Err()
		}
	}
	if s.fail {
		return pokeapi.DetailRecord{}, fmt.Errorf("get: %w", pokeapi.ErrUnavailable)
	}
	return pokeapi.DetailRecord{ID: 25, Name: name}, nil
}

func TestPrefetchWritesCache(t *testing.T) {
	src := &countingSource{}
	sess := cache.New()
	p := New(src, sess, Options{})

	if err := p.Prefetch(context.Background(), "pikachu"); err != nil {
		t.Fatalf("Prefetch: %v", err)
	}
	rec, ok := sess.Get(cache.Key("pikachu"))
	if !ok || rec.Name != "pikachu" {
		t.Fatalf("cache = %+v, %v", rec, ok)
	}
	if err := p.Prefetch(context.Background(), "pikachu"); err != nil {
		t.Fatalf("second Prefetch: %v", err)
	}
	if got := src.calls.Load(); got != 1 {
		t.Fatalf("GetItem calls = %d, want 1", got)
	}
}

func TestPrefetchDeduplicatesConcurrentCalls(t *testing.T) {
	src := &countingSource{release: make(chan struct{})}
	p := New(src, cache.New(), Options{})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Prefetch(context.Background(), "eevee")
		}()
	}
	// Let the goroutines pile up on the shared flight before releasing it.
	deadline := time.Now().Add(time.Second)
	for src.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()

	if got := src.calls.Load(); got != 1 {
		t.Fatalf("GetItem calls = %d, want 1", got)
	}
}

func TestPrefetchFailureLeavesCacheEmpty(t *testing.T) {
	sess := cache.New()
	p := New(&countingSource{fail: true}, sess, Options{})
	err := p.Prefetch(context.Background(), "missingno")
	if !errors.Is(err, pokeapi.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if sess.Len() != 0 {
		t.Fatalf("cache written on failure")
	}
}

func TestPrefetchCancelledDoesNotWrite(t *testing.T) {
	src := &countingSource{release: make(chan struct{})}
	sess := cache.New()
	p := New(src, sess, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Prefetch(ctx, "pikachu"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if sess.Len() != 0 {
		t.Fatalf("cache written after cancellation")
	}
}

func TestEnqueueSkipsCachedAndRunsWorkers(t *testing.T) {
	src := &countingSource{}
	sess := cache.New()
	sess.Put(cache.Key("bulbasaur"), pokeapi.DetailRecord{ID: 1, Name: "bulbasaur"})
	p := New(src, sess, Options{Workers: 2})

	if p.Enqueue("bulbasaur") {
		t.Fatalf("cached name should not be queued")
	}
	if p.Enqueue("") {
		t.Fatalf("empty name should not be queued")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	if !p.Enqueue("ivysaur") {
		t.Fatalf("Enqueue returned false")
	}
	deadline := time.Now().Add(2 * time.Second)
	for !sess.Has(cache.Key("ivysaur")) {
		if time.Now().After(deadline) {
			t.Fatalf("prefetch did not populate the cache")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}

func TestNilPrefetcherEnqueue(t *testing.T) {
	var p *Prefetcher
	if p.Enqueue("pikachu") {
		t.Fatalf("nil prefetcher should not queue")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(30 * time.Millisecond)
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := th.wait(context.Background()); err != nil {
			t.Fatalf("wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Fatalf("three waits took %v, want >= 60ms", elapsed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := th.wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("wait on cancelled ctx = %v", err)
	}
}
