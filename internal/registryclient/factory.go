package registryclient

import (
	"fmt"

	"go.opentelemetry.io/otel/trace"
)

// Kind selects which Client implementation to construct.
type Kind string

const (
	KindMock Kind = "mock"
	KindYAML Kind = "yaml"
	KindHTTP Kind = "http"
)

// Options configures the client constructed by New.
type Options struct {
	Kind        Kind
	BaseURL     string
	FixturePath string
	MaxRetries  uint
	Tracer      trace.Tracer
}

// New constructs the Client implementation named by opts.Kind, for the CLI
// front-end. KindMock (the config default) always returns an empty
// MockClient with no preconfigured responses, so every lookup through it
// fails; callers that want mock data wire a MockClient up themselves.
func New(opts Options) (Client, error) {
	switch opts.Kind {
	case "", KindMock:
		return NewMockClient(), nil
	case KindYAML:
		if opts.FixturePath == "" {
			return nil, fmt.Errorf("registryclient: fixture_path is required for kind %q", KindYAML)
		}
		return NewYAMLClient(opts.FixturePath)
	case KindHTTP:
		if opts.BaseURL == "" {
			return nil, fmt.Errorf("registryclient: base_url is required for kind %q", KindHTTP)
		}
		return NewHTTPClient(opts.BaseURL, opts.Tracer, opts.MaxRetries), nil
	default:
		return nil, fmt.Errorf("registryclient: unknown kind %q", opts.Kind)
	}
}
