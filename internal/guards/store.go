// Package guards keeps a refetchable in-memory copy of the marketplace guard list.
package guards

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	applog "github.com/janisto/guardhire/internal/platform/logging"
	"github.com/janisto/guardhire/internal/service/marketplace"
	"github.com/janisto/guardhire/internal/ui"
)

// Fetcher loads the guard list.
type Fetcher interface {
	ListGuards(ctx context.Context) ([]marketplace.Guard, error)
}

// State is the lifecycle position of a Store.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
)

// Snapshot is a consistent view of the cache.
type Snapshot struct {
	Guards  []marketplace.Guard
	Loading bool
	// FetchedAt is when the list was last stored; zero before the first fetch completes.
	FetchedAt time.Time
}

// Store owns the cached guard list. Attach starts it with an initial fetch, Refetch
// replaces the list on demand and Detach tears it down. A failed fetch is reported to
// the diagnostics sink and leaves an empty list; callers never see the error.
//
// Concurrent fetches are neither cancelled nor merged: whichever completes last wins.
type Store struct {
	fetcher Fetcher
	diag    ui.DiagnosticsSink
	now     func() time.Time

	mu        sync.RWMutex
	guards    []marketplace.Guard
	fetchedAt time.Time
	inflight  int
	attached  bool
	gen       uint64
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// Option configures a Store.
type Option func(*Store)

// WithDiagnostics sets where fetch failures are reported.
func WithDiagnostics(d ui.DiagnosticsSink) Option {
	return func(s *Store) {
		if d != nil {
			s.diag = d
		}
	}
}

// WithClock replaces time.Now for fetch timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an idle Store.
func NewStore(fetcher Fetcher, opts ...Option) *Store {
	s := &Store{
		fetcher: fetcher,
		diag:    ui.LogDiagnostics{Component: "guards"},
		now:     time.Now,
		guards:  []marketplace.Guard{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach moves an idle Store to loading and starts the initial fetch in the background.
// The fetch runs on a context owned by the Store, detached from ctx's cancellation but
// keeping its values. Attaching an attached Store does nothing.
func (s *Store) Attach(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attached {
		return
	}
	storeCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.attached = true
	s.gen++
	s.cancel = cancel
	s.inflight++
	gen := s.gen

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.fetch(storeCtx, gen)
	}()
}

// Refetch loads the list again, stores it and returns it. On failure it stores and
// returns an empty list. On an idle Store the result is returned but not kept.
// A fetch that fails because ctx was cancelled is abandoned: the cached list is kept,
// nothing is reported and the cached list is returned.
func (s *Store) Refetch(ctx context.Context) []marketplace.Guard {
	s.mu.Lock()
	s.inflight++
	gen := s.gen
	s.mu.Unlock()

	return s.fetch(ctx, gen)
}

// fetch runs one load. inflight must already count it.
func (s *Store) fetch(ctx context.Context, gen uint64) []marketplace.Guard {
	list, err := s.fetcher.ListGuards(ctx)

	s.mu.Lock()
	s.inflight--
	stale := !s.attached || gen != s.gen
	s.mu.Unlock()

	if err != nil {
		if ctx.Err() != nil {
			// The caller hung up or Detach cancelled the store context; the marketplace did not fail.
			applog.LogDebug(ctx, "guard fetch abandoned", zap.Error(err), zap.Bool("stale", stale))
			return s.Guards()
		}
		s.diag.Report(ctx, "failed to fetch guards", err)
		list = nil
	}
	if list == nil {
		list = []marketplace.Guard{}
	}

	s.mu.Lock()
	if s.attached && gen == s.gen {
		s.guards = list
		s.fetchedAt = s.now()
	}
	s.mu.Unlock()

	applog.LogDebug(ctx, "guard list fetched", zap.Int("count", len(list)), zap.Bool("stored", !stale))
	return slices.Clone(list)
}

// Detach cancels the initial fetch, waits for it and clears the list. The Store returns
// to idle and may be attached again.
func (s *Store) Detach() {
	s.mu.Lock()
	if !s.attached {
		s.mu.Unlock()
		return
	}
	s.attached = false
	s.gen++
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	cancel()
	s.wg.Wait()

	s.mu.Lock()
	s.guards = []marketplace.Guard{}
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}

// Guards returns a copy of the cached list.
func (s *Store) Guards() []marketplace.Guard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.guards)
}

// Loading reports whether any fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Snapshot returns the list and loading flag together.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Guards: slices.Clone(s.guards), Loading: s.inflight > 0, FetchedAt: s.fetchedAt}
}

// State reports the lifecycle position.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case !s.attached:
		return StateIdle
	case s.inflight > 0:
		return StateLoading
	default:
		return StateReady
	}
}
