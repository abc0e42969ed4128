// Package provider implements the assisted decomposition tiers: external
// LLM APIs that turn task text into a structured plan. Each provider is a
// thin HTTP client plus strict response parsing; anything short of a fully
// valid plan is reported as a provider failure so the engine can advance
// to the next tier.
package provider

import (
	"context"

	"github.com/moltbook/decomposer/internal/plan"
)

// Provider is a single assisted decomposition tier.
//
// Implementations must be safe for concurrent use and must honor context
// cancellation in Decompose.
type Provider interface {
	// Name identifies the tier in logs and failure reports ("anthropic",
	// "openai").
	Name() string

	// Method is the plan method tag stamped on successful results.
	Method() plan.Method

	// Available reports whether the provider is configured with a
	// credential. Unavailable providers are skipped without a network
	// call.
	Available() bool

	// Decompose sends the task text to the provider and parses the
	// response into a validated plan. Failures unwrap to one of the
	// errors package sentinels: ErrProviderUnavailable,
	// ErrProviderCallFailed, or ErrProviderUnparseable.
	Decompose(ctx context.Context, task string) (*plan.Plan, error)
}
