// Package loader implements the Loader Decorator (spec.md §4.5): it wraps
// an underlying manifest loader and threads the dispatcher+rewriter into
// every Load call, while forwarding ResetCache/PurgeCache verbatim.
package loader

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/manifestry/regmanifest/internal/cache"
	"github.com/manifestry/regmanifest/internal/dispatcher"
	"github.com/manifestry/regmanifest/internal/log"
	"github.com/manifestry/regmanifest/internal/manifest"
	"github.com/manifestry/regmanifest/internal/mapper"
	"github.com/manifestry/regmanifest/internal/obs"
	"github.com/manifestry/regmanifest/internal/registryclient"
	"github.com/manifestry/regmanifest/internal/rewriter"
	"github.com/manifestry/regmanifest/internal/tracing"
)

// LoadRequest names the manifest to load. It mirrors the subset of
// spec.md §6's underlying-loader contract this core actually consumes;
// the archive/filesystem/delegate-queue parameters of that contract are
// the underlying loader's own concern, not threaded through here.
type LoadRequest struct {
	Path         string
	ToolsVersion string
	Identity     string
	Kind         string
	Location     string
	Version      *string
}

// Loader is the three-operation contract spec.md §6 requires of the
// underlying manifest loader, and the contract the decorator itself
// re-exposes so it can be nested or swapped transparently.
type Loader interface {
	Load(ctx context.Context, req LoadRequest) (manifest.Manifest, error)
	ResetCache(ctx context.Context) error
	PurgeCache(ctx context.Context) error
}

// Decorator wraps an underlying Loader, post-processing every loaded
// manifest through the dispatcher and rewriter. Constructed once per
// workspace session (spec.md §3 Lifecycle); the identity cache lives for
// the Decorator's lifetime and is never cleared by ResetCache/PurgeCache.
type Decorator struct {
	underlying Loader
	mapper     *mapper.Mapper
	cache      *cache.IdentityCache
	mode       manifest.Mode
	channel    obs.Channel
	tracer     trace.Tracer
}

// Option configures a Decorator at construction time.
type Option func(*options)

type options struct {
	ttl     time.Duration
	channel obs.Channel
	tracer  trace.Tracer
}

// WithCacheTTL overrides the identity cache's default TTL (300s).
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithObservability installs the channel every warning/info event is
// reported through. Defaults to obs.NoOp.
func WithObservability(channel obs.Channel) Option {
	return func(o *options) { o.channel = channel }
}

// WithTracer installs the tracer each Load call starts its top-level span
// against. Defaults to nil, under which Load does no span work at all.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) { o.tracer = tracer }
}

// New builds a Decorator wrapping underlying, resolving identities via
// client, in mode. Returns manifest.ErrDisabledMode if mode is
// ModeDisabled — callers are expected to bypass the decorator entirely in
// that case (spec.md §4.5), not construct one and no-op it.
func New(underlying Loader, client registryclient.Client, mode manifest.Mode, opts ...Option) (*Decorator, error) {
	if mode == manifest.ModeDisabled {
		return nil, manifest.ErrDisabledMode
	}

	cfg := options{channel: obs.NoOp{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	identityCache := cache.NewIdentityCache(cfg.ttl)
	log.Info(log.CatLoader, "constructed loader decorator", "mode", mode.String())

	return &Decorator{
		underlying: underlying,
		mapper:     mapper.New(identityCache, client),
		cache:      identityCache,
		mode:       mode,
		channel:    cfg.channel,
		tracer:     cfg.tracer,
	}, nil
}

// Load delegates to the underlying loader, then pipes the result through
// the dispatcher and rewriter. A lookup failure never fails the call
// (absorbed as a warning); an underlying loader error is propagated
// verbatim with no rewriting attempted. When a tracer is configured, the
// whole call is wrapped in a single span: dispatcher/rewriter events are
// recorded on it through an obs.TraceChannel, and registry-client spans
// nest underneath it via the context it threads through.
func (d *Decorator) Load(ctx context.Context, req LoadRequest) (manifest.Manifest, error) {
	channel := d.channel
	ctx, span := tracing.StartLoadSpan(ctx, d.tracer, req.Path, d.mode.String())
	if span != nil {
		defer span.End()
		channel = obs.Multi{d.channel, obs.NewTraceChannel(ctx)}
	}

	man, err := d.underlying.Load(ctx, req)
	if err != nil {
		err = fmt.Errorf("loader: underlying load failed: %w", err)
		recordSpanError(span, err)
		return manifest.Manifest{}, err
	}

	assignments, err := dispatcher.Dispatch(ctx, d.mapper, channel, man.Dependencies)
	if err != nil {
		recordSpanError(span, err)
		return manifest.Manifest{}, err
	}

	out, err := rewriter.Rewrite(channel, man, d.mode, assignments)
	if err != nil {
		recordSpanError(span, err)
	}
	return out, err
}

func recordSpanError(span trace.Span, err error) {
	if span == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// ResetCache forwards to the underlying loader verbatim. The identity
// cache is workspace-scoped state, not manifest-content-derived, and is
// deliberately left untouched (spec.md §4.5).
func (d *Decorator) ResetCache(ctx context.Context) error {
	log.Debug(log.CatLoader, "forwarding reset_cache; identity cache left untouched")
	return d.underlying.ResetCache(ctx)
}

// PurgeCache forwards to the underlying loader verbatim, same caveat as
// ResetCache.
func (d *Decorator) PurgeCache(ctx context.Context) error {
	log.Debug(log.CatLoader, "forwarding purge_cache; identity cache left untouched")
	return d.underlying.PurgeCache(ctx)
}

// CacheStats reports the identity cache's cumulative hit/miss counters
// and current entry count, for observability only (never consulted by
// resolution logic).
func (d *Decorator) CacheStats() cache.Stats {
	return d.cache.Stats()
}
