package synth

import "context"

// Provider is one way of turning a prompt into a full article document
// (frontmatter plus body). Providers are tried in order; the offline
// template provider sits last in the chain and never fails.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}
