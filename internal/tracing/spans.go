package tracing

// Span attribute keys for the mapping pipeline. Spans across the engine
// use these so traces can be filtered by fixture or query.
const (
	// Fixture attributes
	AttrFixtureName    = "fixture.name"
	AttrFixturePath    = "fixture.path"
	AttrFixtureMarkers = "fixture.markers"

	// Session attributes
	AttrSessionID = "session.id"

	// Query attributes
	AttrQueryRegion    = "query.region"
	AttrQueryDirection = "query.direction"

	// Pipeline stage attributes
	AttrAnchorLeft  = "resolve.anchor.left"
	AttrAnchorRight = "resolve.anchor.right"
	AttrUnitOpen    = "enclose.unit.open"
	AttrUnitClose   = "enclose.unit.close"
	AttrRegionCount = "result.regions"
	AttrCacheHit    = "cache.hit"

	// Error attributes
	AttrErrorMessage = "error.message"
)

// Span names for the stages of a query.
const (
	SpanSessionMap     = "session.map"
	SpanSessionMapBack = "session.mapback"
	SpanStageResolve   = "weave.resolve"
	SpanStageEnclose   = "weave.enclose"
	SpanStageSynth     = "weave.synthesize"
	SpanFixtureLoad    = "fixture.load"
	SpanFixtureReload  = "fixture.reload"
)

// Event names for span events.
const (
	EventCacheHit       = "cache.hit"
	EventCacheMiss      = "cache.miss"
	EventFixtureChanged = "fixture.changed"
)
