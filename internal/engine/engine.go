// Package engine runs the decomposition fallback chain: assisted provider
// tiers in fixed order, then the heuristic synthesizer as the terminal
// tier that cannot fail.
package engine

import (
	"context"

	"github.com/moltbook/decomposer/internal/errors"
	"github.com/moltbook/decomposer/internal/heuristic"
	"github.com/moltbook/decomposer/internal/logging"
	"github.com/moltbook/decomposer/internal/plan"
	"github.com/moltbook/decomposer/internal/provider"
)

// Mode selects which tiers the engine attempts.
type Mode string

const (
	// ModeAssisted tries the providers in order before falling back to
	// the heuristic synthesizer.
	ModeAssisted Mode = "assisted"

	// ModeHeuristic skips the assisted providers entirely.
	ModeHeuristic Mode = "heuristic"
)

// TierFailure records one failed assisted tier: which provider failed and
// why. The engine collects these so callers can report degradation
// instead of hiding it.
type TierFailure struct {
	Provider string
	Err      error
}

// Result is the outcome of one decomposition run. Plan is never nil; the
// Failures slice lists the assisted tiers that were attempted or skipped
// before the winning tier, in order.
type Result struct {
	Plan     *plan.Plan
	Failures []TierFailure
}

// Engine coordinates the fallback chain. The provider order is fixed at
// construction; each provider is attempted at most once per run.
type Engine struct {
	providers []provider.Provider
	logger    *logging.Logger
}

// New creates an Engine with the given assisted tiers, tried in slice
// order. A nil logger disables logging.
func New(providers []provider.Provider, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Engine{
		providers: providers,
		logger:    logger,
	}
}

// Decompose runs the fallback chain for the task text and always produces
// a plan.
//
// In ModeAssisted each provider is tried in order: an unavailable provider is
// skipped, a failed call or unparseable response advances the chain, and
// the first valid plan wins. Whatever remains falls through to the
// heuristic synthesizer, which always succeeds. ModeHeuristic goes
// straight to the synthesizer.
func (e *Engine) Decompose(ctx context.Context, task string, mode Mode) *Result {
	result := &Result{}

	if mode != ModeHeuristic {
		for _, p := range e.providers {
			log := e.logger.WithTier(p.Name())

			if !p.Available() {
				log.Debug("tier skipped: not configured")
				result.Failures = append(result.Failures, TierFailure{
					Provider: p.Name(),
					Err: errors.NewProviderError("no credential configured", errors.ErrProviderUnavailable).
						WithProvider(p.Name()),
				})
				continue
			}

			log.Debug("attempting assisted decomposition")
			planned, err := p.Decompose(ctx, task)
			if err != nil {
				log.Warn("tier failed", "error", err.Error())
				result.Failures = append(result.Failures, TierFailure{
					Provider: p.Name(),
					Err:      err,
				})
				continue
			}

			log.Info("assisted decomposition succeeded",
				"method", planned.Method.String(),
				"subtasks", planned.SubtaskCount())
			result.Plan = planned
			return result
		}
	}

	result.Plan = heuristic.Synthesize(task)
	e.logger.WithTier("heuristic").Info("heuristic decomposition",
		"subtasks", result.Plan.SubtaskCount(),
		"complexity", result.Plan.Complexity.String())

	return result
}
