package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/manifestry/regmanifest/internal/tracing"
)

func TestTraceChannel_NoActiveSpan_DoesNotPanic(t *testing.T) {
	ch := NewTraceChannel(context.Background())
	require.NotPanics(t, func() {
		ch.Info("hi", "k", "v")
		ch.Warning("hi", errors.New("boom"))
		ch.Error("hi", errors.New("boom"))
	})
}

func TestTraceChannel_WithActiveSpan(t *testing.T) {
	provider, err := tracing.NewProvider(tracing.Config{Enabled: true, Exporter: "none"})
	require.NoError(t, err)
	defer provider.Shutdown(context.Background())

	ctx, span := provider.Tracer().Start(context.Background(), "test-span")
	defer span.End()

	ch := NewTraceChannel(ctx)
	require.NotPanics(t, func() {
		ch.Info("dependency rewritten", "dependency.identity", "apple.swift-nio")
		ch.Warning("lookup failed", errors.New("registry down"))
		ch.Error("fatal", errors.New("boom"))
	})
}
