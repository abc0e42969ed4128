// Package heuristic implements the deterministic, rule-based decomposition
// strategy.
//
// The pipeline has three stages:
//   - Classification: static keyword tables map free text to domain tags
//     and action verbs (Classify).
//   - Splitting: conjunction-boundary rules segment the task text into
//     candidate subtask phrases (Split).
//   - Synthesis: segments become a subtask chain with per-domain effort
//     estimates and parallelism flags; inputs without enough lexical
//     structure fall back to a fixed three-stage template (Synthesize).
//
// Every stage is a pure function of its input. The package has no failure
// modes: Synthesize returns a valid plan for any input string, including
// the empty string. It is the final tier of the engine's fallback chain
// and therefore must never error.
package heuristic
