// Package llm provides clients for text-generation backends. The
// classifier and companion only depend on the Generator interface, so a
// test can substitute a scripted oracle and the backend can be swapped
// per deployment.
package llm

import "context"

// Generator produces a completion for a prompt. One prompt, one call:
// callers decide how to degrade when the call fails.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// HealthChecker is implemented by clients that can probe their backend
// without generating anything.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// GeneratorFunc adapts a plain function to the Generator interface
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
