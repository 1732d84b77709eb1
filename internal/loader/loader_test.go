package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/manifestry/regmanifest/internal/manifest"
	"github.com/manifestry/regmanifest/internal/obs"
	"github.com/manifestry/regmanifest/internal/registryclient"
)

type stubLoader struct {
	man        manifest.Manifest
	err        error
	resetCalls int
	purgeCalls int
}

func (s *stubLoader) Load(ctx context.Context, req LoadRequest) (manifest.Manifest, error) {
	return s.man, s.err
}
func (s *stubLoader) ResetCache(ctx context.Context) error { s.resetCalls++; return nil }
func (s *stubLoader) PurgeCache(ctx context.Context) error { s.purgeCalls++; return nil }

func swiftNioManifest() manifest.Manifest {
	return manifest.Manifest{
		Dependencies: []manifest.Dependency{
			manifest.SourceControlDependency{
				DeclaredName: "swift-nio",
				Location:     manifest.RemoteLocation{URL: "https://github.com/apple/swift-nio"},
				Requirement:  manifest.ExactRequirement{Version: "2.0.0"},
			},
			manifest.FilesystemDependency{Path: "/local/pkg"},
		},
	}
}

func TestNew_RejectsDisabledMode(t *testing.T) {
	_, err := New(&stubLoader{}, registryclient.NewMockClient(), manifest.ModeDisabled)
	require.ErrorIs(t, err, manifest.ErrDisabledMode)
}

func TestDecorator_Load_IdentityMode(t *testing.T) {
	underlying := &stubLoader{man: swiftNioManifest()}
	client := registryclient.NewMockClient().WithResponse("https://github.com/apple/swift-nio", "apple.swift-nio")

	d, err := New(underlying, client, manifest.ModeIdentity, WithObservability(obs.NoOp{}))
	require.NoError(t, err)

	out, err := d.Load(context.Background(), LoadRequest{Path: "Package.swift"})
	require.NoError(t, err)

	got := out.Dependencies[0].(manifest.SourceControlDependency)
	require.Equal(t, manifest.Identity("apple.swift-nio"), got.Identity)
}

func TestDecorator_Load_PropagatesUnderlyingError(t *testing.T) {
	boom := errors.New("parse failed")
	underlying := &stubLoader{err: boom}

	d, err := New(underlying, registryclient.NewMockClient(), manifest.ModeIdentity)
	require.NoError(t, err)

	_, err = d.Load(context.Background(), LoadRequest{})
	require.ErrorIs(t, err, boom)
}

func TestDecorator_ResetAndPurgeForwardButLeaveCacheIntact(t *testing.T) {
	underlying := &stubLoader{man: swiftNioManifest()}
	client := registryclient.NewMockClient().WithResponse("https://github.com/apple/swift-nio", "apple.swift-nio")

	d, err := New(underlying, client, manifest.ModeIdentity)
	require.NoError(t, err)

	_, err = d.Load(context.Background(), LoadRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, d.CacheStats().Size)

	require.NoError(t, d.ResetCache(context.Background()))
	require.NoError(t, d.PurgeCache(context.Background()))

	require.Equal(t, 1, underlying.resetCalls)
	require.Equal(t, 1, underlying.purgeCalls)
	require.Equal(t, 1, d.CacheStats().Size, "identity cache must survive reset/purge passthrough")
}

func TestDecorator_CacheIdempotenceWithinTTL(t *testing.T) {
	underlying := &stubLoader{man: swiftNioManifest()}
	client := registryclient.NewMockClient().WithResponse("https://github.com/apple/swift-nio", "apple.swift-nio")

	d, err := New(underlying, client, manifest.ModeIdentity)
	require.NoError(t, err)

	_, err = d.Load(context.Background(), LoadRequest{})
	require.NoError(t, err)
	_, err = d.Load(context.Background(), LoadRequest{})
	require.NoError(t, err)

	require.Equal(t, 1, client.CallCount("https://github.com/apple/swift-nio"))
}

func TestDecorator_Load_StartsTopLevelSpanWhenTracerConfigured(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := provider.Tracer("test")

	underlying := &stubLoader{man: swiftNioManifest()}
	client := registryclient.NewMockClient().WithResponse("https://github.com/apple/swift-nio", "apple.swift-nio")

	d, err := New(underlying, client, manifest.ModeIdentity, WithTracer(tracer))
	require.NoError(t, err)

	_, err = d.Load(context.Background(), LoadRequest{Path: "Package.swift"})
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "load.load", spans[0].Name())
}

func TestDecorator_Load_RecordsErrorOnSpanWhenUnderlyingLoadFails(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := provider.Tracer("test")

	boom := errors.New("parse failed")
	underlying := &stubLoader{err: boom}

	d, err := New(underlying, registryclient.NewMockClient(), manifest.ModeIdentity, WithTracer(tracer))
	require.NoError(t, err)

	_, err = d.Load(context.Background(), LoadRequest{})
	require.ErrorIs(t, err, boom)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "Error", spans[0].Status().Code.String())
}
