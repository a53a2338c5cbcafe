package ai

import "context"

// Generator produces a model reply for a single prompt. Implementations
// make exactly one attempt per call; there is no retry at this layer, and
// callers are expected to degrade gracefully on error.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
