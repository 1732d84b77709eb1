package registryclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/manifestry/regmanifest/internal/manifest"
	"github.com/manifestry/regmanifest/internal/tracing"
)

// HTTPClient is an illustrative "production" Client that resolves
// identities against a real HTTP registry endpoint. Retry/backoff lives
// here, outside the core, per spec.md §7 ("no retry at this layer; retry,
// if any, is the registry client's concern").
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	maxTries   uint
}

// NewHTTPClient builds an HTTPClient against baseURL. tracer may be nil,
// in which case no span is started for a lookup.
func NewHTTPClient(baseURL string, tracer trace.Tracer, maxTries uint) *HTTPClient {
	if maxTries == 0 {
		maxTries = 3
	}
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		tracer:     tracer,
		maxTries:   maxTries,
	}
}

type lookupResponse struct {
	Identities []string `json:"identities"`
}

func (c *HTTPClient) LookupIdentities(ctx context.Context, url manifest.SCMURL) ([]manifest.Identity, error) {
	requestID := uuid.NewString()

	var span trace.Span
	if c.tracer != nil {
		ctx, span = c.tracer.Start(ctx, tracing.SpanPrefixRegistry+"lookup",
			trace.WithAttributes(
				attribute.String(tracing.AttrSCMURL, string(url)),
				attribute.String(tracing.AttrRegistryRequestID, requestID),
			),
		)
		defer span.End()
	}

	identities, err := backoff.Retry(ctx, func() ([]manifest.Identity, error) {
		return c.doLookup(ctx, url, requestID)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(c.maxTries))
	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, err
	}
	return identities, nil
}

func (c *HTTPClient) doLookup(ctx context.Context, url manifest.SCMURL, requestID string) ([]manifest.Identity, error) {
	endpoint := fmt.Sprintf("%s/v1/identities?url=%s", c.baseURL, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("registryclient: build request: %w", err)
	}
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registryclient: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("registryclient: server error %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("registryclient: unexpected status %d", resp.StatusCode))
	}

	var parsed lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("registryclient: decode response: %w", err))
	}

	identities := make([]manifest.Identity, len(parsed.Identities))
	for i, id := range parsed.Identities {
		identities[i] = manifest.Identity(id)
	}
	return identities, nil
}
