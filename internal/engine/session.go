// Package engine binds a fixture's correspondence sequence to the
// machinery around it: query memoization, a span per mapping stage, and
// session events for the viewer.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/weft/internal/cache"
	"github.com/zjrosen/weft/internal/fixture"
	"github.com/zjrosen/weft/internal/log"
	"github.com/zjrosen/weft/internal/pubsub"
	"github.com/zjrosen/weft/internal/tracing"
	"github.com/zjrosen/weft/internal/weave"
)

// SessionEvent is the payload published on the session's broker.
type SessionEvent struct {
	SessionID string
	Fixture   string
	Query     string // region notation; empty for load and reload events
	Direction string // "forward" or "back" for query events
	Regions   int    // result count for query events
	Cached    bool   // query served from the memoization cache
	TraceID   string
}

// Config holds session construction options.
type Config struct {
	// CacheEnabled controls query memoization.
	CacheEnabled bool

	// CacheTTL is how long memoized results stay valid.
	CacheTTL time.Duration

	// Tracer emits the query spans. Nil means no tracing.
	Tracer trace.Tracer
}

// DefaultConfig returns session defaults: memoization on, no tracing.
func DefaultConfig() Config {
	return Config{
		CacheEnabled: true,
		CacheTTL:     cache.DefaultExpiration,
	}
}

// Session answers mapping queries against one fixture. It is safe for
// concurrent use; Reload swaps the fixture in place and flushes the cache.
type Session struct {
	id     string
	path   string // empty for the built-in demo
	tracer trace.Tracer
	ttl    time.Duration
	broker *pubsub.Broker[SessionEvent]

	store   *cache.InMemory[string, []weave.Region]
	forward *cache.ReadThrough[string, []weave.Region, weave.Region]
	back    *cache.ReadThrough[string, []weave.Region, weave.Region]

	mu  sync.RWMutex
	fix *fixture.Fixture
	seq *weave.Sequence
	gen int // bumped on reload so stale cache keys never resurface
}

// NewSession binds the fixture to a new session. An empty path marks the
// built-in demo fixture, which Reload leaves alone.
func NewSession(fix *fixture.Fixture, path string, cfg Config) *Session {
	if cfg.Tracer == nil {
		cfg.Tracer = noop.NewTracerProvider().Tracer("noop")
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = cache.DefaultExpiration
	}

	s := &Session{
		id:     uuid.New().String(),
		path:   path,
		tracer: cfg.Tracer,
		ttl:    cfg.CacheTTL,
		broker: pubsub.NewBroker[SessionEvent](),
		store:  cache.NewInMemory[string, []weave.Region]("queries", cfg.CacheTTL, cache.DefaultCleanupInterval),
		fix:    fix,
		seq:    fix.Sequence,
	}
	s.forward = cache.NewReadThrough[string, []weave.Region, weave.Region](s.store, s.computeForward, !cfg.CacheEnabled)
	s.back = cache.NewReadThrough[string, []weave.Region, weave.Region](s.store, s.computeBack, !cfg.CacheEnabled)

	log.Info(log.CatEngine, "fixture bound",
		"session", s.id, "name", fix.Name, "markers", fix.Sequence.Len())
	s.broker.Publish(pubsub.LoadedEvent, SessionEvent{
		SessionID: s.id,
		Fixture:   fix.Name,
	})

	return s
}

// ID returns the session's identifier.
func (s *Session) ID() string {
	return s.id
}

// Path returns the fixture's file path, empty for the built-in demo.
func (s *Session) Path() string {
	return s.path
}

// Fixture returns the currently bound fixture.
func (s *Session) Fixture() *fixture.Fixture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fix
}

// Sequence returns the currently bound correspondence sequence.
func (s *Session) Sequence() *weave.Sequence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}

// Events subscribes to session events. The subscription ends when ctx is
// cancelled or the session closes.
func (s *Session) Events(ctx context.Context) <-chan pubsub.Event[SessionEvent] {
	return s.broker.Subscribe(ctx)
}

// Reload re-reads the fixture from disk, swaps it in, and flushes the
// memoization cache. The built-in demo has no file and reloads to itself.
func (s *Session) Reload(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, tracing.SpanFixtureReload,
		trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	if s.path == "" {
		span.SetStatus(codes.Ok, "")
		return nil
	}

	fix, err := fixture.Load(s.path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatEngine, "reload failed", err, "path", s.path)
		return fmt.Errorf("reload fixture: %w", err)
	}

	s.mu.Lock()
	s.fix = fix
	s.seq = fix.Sequence
	s.gen++
	s.mu.Unlock()

	_ = s.store.Flush(ctx)

	span.AddEvent(tracing.EventFixtureChanged)
	span.SetStatus(codes.Ok, "")

	log.Info(log.CatEngine, "fixture reloaded", "name", fix.Name, "path", s.path)
	s.broker.Publish(pubsub.ReloadedEvent, SessionEvent{
		SessionID: s.id,
		Fixture:   fix.Name,
	})

	return nil
}

// Close shuts down the session's event broker.
func (s *Session) Close() {
	s.broker.Close()
}

// key builds a cache key covering direction, fixture generation, and query.
func (s *Session) key(direction string, query weave.Region) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprintf("%s:%d:%s", direction, s.gen, query)
}

func (s *Session) sequence() *weave.Sequence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}

func (s *Session) fixtureName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fix.Name
}
