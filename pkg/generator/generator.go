// Package generator defines the story-generation contract shared by every
// backend: the request/result data model, the Generator interface, prompt
// assembly, and a deterministic mock for testing. Concrete backends live in
// subpackages and are wired up by the loader package.
package generator

import "context"

// Generator is the interface every story-generation backend satisfies.
// Implementations must be safe for concurrent use.
type Generator interface {
	// Generate produces story content for the given request. It blocks only
	// for the duration of the underlying transport call and honors ctx
	// cancellation there. Failures surface as a single error wrapping
	// ErrGenerationFailed; there are no retries and no partial results.
	Generate(ctx context.Context, req Request) (*Result, error)

	// Mode reports the backend's generation mode. The value is fixed at
	// construction and never changes over the generator's lifetime.
	Mode() Mode

	// ModelInfo describes the configured model.
	ModelInfo() ModelInfo

	// HealthCheck reports whether the backend can currently serve requests.
	// It never fails: implementations return a cached availability flag or
	// the outcome of a lightweight reachability probe.
	HealthCheck(ctx context.Context) bool

	// Initialized reports whether construction fully succeeded, including
	// credential resolution for cloud backends.
	Initialized() bool

	// Warmup gives the backend a chance to pre-load state, such as paging
	// a local model into memory. It reports success but must never fail
	// the caller.
	Warmup(ctx context.Context) bool
}
