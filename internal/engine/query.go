package engine

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/weft/internal/cache"
	"github.com/zjrosen/weft/internal/log"
	"github.com/zjrosen/weft/internal/pubsub"
	"github.com/zjrosen/weft/internal/tracing"
	"github.com/zjrosen/weft/internal/weave"
)

// Map resolves a source query to its derived regions, serving repeated
// queries from the memoization cache.
func (s *Session) Map(ctx context.Context, query weave.Region) ([]weave.Region, error) {
	return s.run(ctx, tracing.SpanSessionMap, "forward", s.forward, query)
}

// MapBack resolves a derived query to its source regions.
func (s *Session) MapBack(ctx context.Context, query weave.Region) ([]weave.Region, error) {
	return s.run(ctx, tracing.SpanSessionMapBack, "back", s.back, query)
}

func (s *Session) run(
	ctx context.Context,
	spanName, direction string,
	rt *cache.ReadThrough[string, []weave.Region, weave.Region],
	query weave.Region,
) ([]weave.Region, error) {
	traceID := tracing.GenerateTraceID()
	ctx = tracing.ContextWithTraceID(ctx, traceID)

	var span trace.Span
	ctx, span = s.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	span.SetAttributes(
		attribute.String(tracing.AttrSessionID, s.id),
		attribute.String(tracing.AttrFixtureName, s.fixtureName()),
		attribute.String(tracing.AttrQueryRegion, query.String()),
		attribute.String(tracing.AttrQueryDirection, direction),
	)

	regions, cached, err := rt.GetWithRefresh(ctx, s.key(direction, query), query, s.ttl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool(tracing.AttrCacheHit, cached),
		attribute.Int(tracing.AttrRegionCount, len(regions)),
	)
	if cached {
		span.AddEvent(tracing.EventCacheHit)
	} else {
		span.AddEvent(tracing.EventCacheMiss)
	}
	span.SetStatus(codes.Ok, "")

	log.Debug(log.CatEngine, "query answered",
		"direction", direction, "query", query.String(),
		"regions", len(regions), "cached", cached, "trace", traceID)
	s.broker.Publish(pubsub.QueriedEvent, SessionEvent{
		SessionID: s.id,
		Fixture:   s.fixtureName(),
		Query:     query.String(),
		Direction: direction,
		Regions:   len(regions),
		Cached:    cached,
		TraceID:   traceID,
	})

	return regions, nil
}

// computeForward runs the three mapping stages with a child span each.
// It mirrors weave.Map stage for stage so the spans line up with what
// actually happened.
func (s *Session) computeForward(ctx context.Context, query weave.Region) ([]weave.Region, error) {
	seq := s.sequence()

	_, span := s.tracer.Start(ctx, tracing.SpanStageResolve)
	left, right := seq.Resolve(query)
	span.SetAttributes(
		attribute.Int(tracing.AttrAnchorLeft, left),
		attribute.Int(tracing.AttrAnchorRight, right),
	)
	span.End()

	if left > right {
		left, right = right, left
	}

	_, span = s.tracer.Start(ctx, tracing.SpanStageEnclose)
	openPos, closePos := seq.Enclose(left, right)
	span.SetAttributes(
		attribute.Int(tracing.AttrUnitOpen, openPos),
		attribute.Int(tracing.AttrUnitClose, closePos),
	)
	span.End()

	_, span = s.tracer.Start(ctx, tracing.SpanStageSynth)
	regions := seq.Synthesize(openPos, closePos)
	span.SetAttributes(attribute.Int(tracing.AttrRegionCount, len(regions)))
	span.End()

	return regions, nil
}

func (s *Session) computeBack(ctx context.Context, query weave.Region) ([]weave.Region, error) {
	return s.sequence().MapBack(query), nil
}
