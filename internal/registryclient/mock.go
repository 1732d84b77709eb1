package registryclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/manifestry/regmanifest/internal/manifest"
)

// MockClient is a deterministic, in-memory Client for unit and property
// tests. Responses and errors are keyed by URL and configured up front;
// there is no network, no timing, and no retry.
type MockClient struct {
	mu        sync.Mutex
	responses map[manifest.SCMURL][]manifest.Identity
	errors    map[manifest.SCMURL]error
	calls     map[manifest.SCMURL]int
}

// NewMockClient returns an empty MockClient. Use WithResponse/WithError to
// configure it before handing it to a mapper under test.
func NewMockClient() *MockClient {
	return &MockClient{
		responses: make(map[manifest.SCMURL][]manifest.Identity),
		errors:    make(map[manifest.SCMURL]error),
		calls:     make(map[manifest.SCMURL]int),
	}
}

// WithResponse configures url to resolve to identities on the next and
// every subsequent call.
func (c *MockClient) WithResponse(url manifest.SCMURL, identities ...manifest.Identity) *MockClient {
	c.responses[url] = identities
	return c
}

// WithError configures url to fail every call with err.
func (c *MockClient) WithError(url manifest.SCMURL, err error) *MockClient {
	c.errors[url] = err
	return c
}

// CallCount reports how many times LookupIdentities was invoked for url —
// used by tests asserting cache idempotence (spec.md §8, properties 7-8).
func (c *MockClient) CallCount(url manifest.SCMURL) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[url]
}

func (c *MockClient) LookupIdentities(ctx context.Context, url manifest.SCMURL) ([]manifest.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.calls[url]++
	c.mu.Unlock()

	if err, ok := c.errors[url]; ok {
		return nil, err
	}
	if ids, ok := c.responses[url]; ok {
		return ids, nil
	}
	return nil, fmt.Errorf("registryclient: no mock response configured for %q", url)
}
