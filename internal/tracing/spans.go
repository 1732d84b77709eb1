package tracing

// Span attribute keys for manifest transformation tracing.
const (
	// Dependency/identity attributes
	AttrSCMURL          = "dependency.scm_url"
	AttrIdentity        = "dependency.identity"
	AttrDeclaredName    = "dependency.declared_name"
	AttrDependencyIndex = "dependency.index"
	AttrDependencyKind  = "dependency.kind"

	// Cache attributes
	AttrCacheHit  = "cache.hit"
	AttrCacheTTL  = "cache.ttl_seconds"
	AttrCacheSize = "cache.size"

	// Mode / rewrite attributes
	AttrMode        = "transform.mode"
	AttrRewriteKind = "rewrite.kind"

	// Manifest attributes
	AttrManifestPath = "manifest.path"
	AttrManifestName = "manifest.display_name"
	AttrTargetName   = "target.name"

	// Registry client attributes
	AttrRegistryKind      = "registry.kind"
	AttrRegistryRequestID = "registry.request_id"

	// Error attributes
	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// SpanKind constants for categorizing span types.
const (
	SpanKindLoad       = "load"
	SpanKindCacheLookup = "cache.lookup"
	SpanKindRegistryCall = "registry.call"
	SpanKindDispatch    = "dispatch"
	SpanKindRewrite     = "rewrite"
	SpanKindWatch       = "watch"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixLoad     = "load."
	SpanPrefixCache    = "cache."
	SpanPrefixRegistry = "registry."
	SpanPrefixDispatch = "dispatch."
	SpanPrefixRewrite  = "rewrite."
)

// Event names for span events.
const (
	EventCacheHit        = "cache.hit"
	EventCacheMiss       = "cache.miss"
	EventLookupFailed    = "lookup.failed"
	EventIdentityResolved = "identity.resolved"
	EventDependencyRewritten = "dependency.rewritten"
	EventTargetRewritten = "target.rewritten"
	EventManifestChanged = "manifest.changed"
	EventErrorOccurred   = "error.occurred"
)
