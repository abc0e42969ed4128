// Package plan defines the unified decomposition result schema shared by
// every decomposition strategy.
//
// A Plan is constructed once per invocation from a single input string and
// is treated as immutable after rendering: no in-place updates, no persisted
// identity across runs. Both the rule-based synthesizer and the
// model-backed providers produce the same Plan shape so that callers never
// need to know which strategy ran.
package plan

import "time"

// -----------------------------------------------------------------------------
// Closed Tag Sets
// -----------------------------------------------------------------------------

// Domain classifies the subject area of a task or subtask.
type Domain string

const (
	DomainTrading  Domain = "trading"
	DomainCoding   Domain = "coding"
	DomainResearch Domain = "research"
	DomainWriting  Domain = "writing"
	DomainDevops   Domain = "devops"
	DomainSocial   Domain = "social"
	DomainData     Domain = "data"

	// DomainUnknown is the fallback when no keyword table entry matches.
	// Classification never returns an empty domain set.
	DomainUnknown Domain = "unknown"
)

// String returns the string representation of the domain.
func (d Domain) String() string {
	return string(d)
}

// IsValid returns true if this is a recognized domain value.
func (d Domain) IsValid() bool {
	switch d {
	case DomainTrading, DomainCoding, DomainResearch, DomainWriting,
		DomainDevops, DomainSocial, DomainData, DomainUnknown:
		return true
	default:
		return false
	}
}

// Complexity represents the derived complexity of a plan.
//
// Complexity is a pure function of the subtask count; it is never assigned
// independently of the subtasks. See ComplexityForCount.
type Complexity string

const (
	// ComplexitySimple indicates a plan small enough to handle in one pass.
	ComplexitySimple Complexity = "simple"

	// ComplexityMedium indicates a plan best executed sequentially while
	// maintaining context.
	ComplexityMedium Complexity = "medium"

	// ComplexityComplex indicates a plan that benefits from parallel
	// sub-agents.
	ComplexityComplex Complexity = "complex"
)

// String returns the string representation of the complexity.
func (c Complexity) String() string {
	return string(c)
}

// IsValid returns true if this is a recognized complexity value.
func (c Complexity) IsValid() bool {
	switch c {
	case ComplexitySimple, ComplexityMedium, ComplexityComplex:
		return true
	default:
		return false
	}
}

// Method records which strategy produced a plan. Required for observability:
// silent degradation from the assisted tiers to the heuristic path must
// always be visible to the caller.
type Method string

const (
	// MethodLLM tags plans produced by the primary (Anthropic) provider.
	MethodLLM Method = "llm"

	// MethodOpenAI tags plans produced by the secondary (OpenAI) provider.
	MethodOpenAI Method = "openai"

	// MethodRuleBased tags plans produced by the heuristic synthesizer.
	MethodRuleBased Method = "rule-based"
)

// String returns the string representation of the method.
func (m Method) String() string {
	return string(m)
}

// -----------------------------------------------------------------------------
// Complexity Thresholds
// -----------------------------------------------------------------------------

// Subtask-count boundaries for the complexity tag. A single threshold set
// applies to both the segment-derived and template-derived paths.
const (
	// SimpleMaxSubtasks is the largest subtask count still tagged simple.
	SimpleMaxSubtasks = 2

	// MediumMaxSubtasks is the largest subtask count still tagged medium.
	MediumMaxSubtasks = 5
)

// ComplexityForCount derives the complexity tag from a subtask count.
func ComplexityForCount(n int) Complexity {
	switch {
	case n <= SimpleMaxSubtasks:
		return ComplexitySimple
	case n <= MediumMaxSubtasks:
		return ComplexityMedium
	default:
		return ComplexityComplex
	}
}

// RecommendationForCount returns the execution recommendation keyed off the
// subtask count. The strings are advisory and stable.
func RecommendationForCount(n int) string {
	switch {
	case n <= SimpleMaxSubtasks:
		return "Execute directly - simple enough to handle in one pass"
	case n <= MediumMaxSubtasks:
		return "Execute sequentially - moderate complexity, maintain context"
	default:
		return "Consider sub-agents - complex task benefits from parallelization"
	}
}

// -----------------------------------------------------------------------------
// Subtask
// -----------------------------------------------------------------------------

// Subtask represents one unit of work within a plan.
//
// Subtask dependencies form a directed acyclic graph. The heuristic
// synthesizer only ever produces a linear chain; provider-built plans may
// carry arbitrary DAGs, which Validate checks.
type Subtask struct {
	// ID uniquely identifies this subtask within its plan and is stable
	// for the lifetime of the plan.
	ID string `json:"id" yaml:"id"`

	// Description is the non-empty text of the work to perform.
	Description string `json:"description" yaml:"description"`

	// Domain is the subject-area tag assigned by classification (or by the
	// provider in assisted mode).
	Domain Domain `json:"domain" yaml:"domain"`

	// EstimatedMinutes is the positive effort estimate for this subtask.
	EstimatedMinutes int `json:"estimated_minutes" yaml:"estimated_minutes"`

	// Dependencies lists subtask IDs that must complete before this one.
	// Order is meaningful and preserved. A subtask never depends on an ID
	// created after it.
	Dependencies []string `json:"dependencies" yaml:"dependencies"`

	// CanParallelize is true when this subtask is assumed independent
	// enough of the immediately preceding subtask's work to run alongside
	// it. The first subtask of a plan is always flagged true; this is a
	// degenerate but intentional value.
	CanParallelize bool `json:"can_parallelize" yaml:"can_parallelize"`

	// ToolsNeeded lists external tool names. Only the assisted strategy's
	// richer schema populates this; the heuristic path leaves it empty.
	ToolsNeeded []string `json:"tools_needed,omitempty" yaml:"tools_needed,omitempty"`
}

// HasDependencies returns true if this subtask depends on other subtasks.
func (s *Subtask) HasDependencies() bool {
	return len(s.Dependencies) > 0
}

// -----------------------------------------------------------------------------
// Plan
// -----------------------------------------------------------------------------

// Plan is the decomposition result.
//
// OriginalTask is carried verbatim and never mutated. Subtasks are in
// creation order, which is not necessarily execution order. Derived values
// (total minutes, parallelizable count) are recomputed on demand and never
// stored independently.
type Plan struct {
	// ID uniquely identifies this plan. Generated at construction.
	ID string `json:"id" yaml:"id"`

	// OriginalTask is the verbatim input text.
	OriginalTask string `json:"original_task" yaml:"original_task"`

	// Domains lists the domains detected across the whole input, in
	// first-seen (keyword table declaration) order. Populated by the
	// heuristic path; providers may omit it.
	Domains []Domain `json:"domains,omitempty" yaml:"domains,omitempty"`

	// Actions lists the action verbs detected in the input. Heuristic
	// path only.
	Actions []string `json:"actions,omitempty" yaml:"actions,omitempty"`

	// Complexity is derived purely from the subtask count.
	Complexity Complexity `json:"complexity" yaml:"complexity"`

	// Subtasks holds the decomposed units of work in creation order.
	Subtasks []Subtask `json:"subtasks" yaml:"subtasks"`

	// CriticalPath is the longest dependency chain, as subtask IDs.
	// Assisted strategy only; the heuristic path omits it because its
	// linear chain makes the path trivial.
	CriticalPath []string `json:"critical_path,omitempty" yaml:"critical_path,omitempty"`

	// Risks lists provider-identified risks. Assisted strategy only.
	Risks []string `json:"risks,omitempty" yaml:"risks,omitempty"`

	// Recommendation is a short advisory derived from the subtask
	// count/composition.
	Recommendation string `json:"recommendation" yaml:"recommendation"`

	// Method records which strategy produced this plan.
	Method Method `json:"method" yaml:"method"`

	// CreatedAt is when this plan was constructed.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// SubtaskCount returns the number of subtasks in the plan.
func (p *Plan) SubtaskCount() int {
	return len(p.Subtasks)
}

// TotalEstimatedMinutes returns the sum of all subtask estimates. It is
// recomputed on every call rather than stored, so it can never drift from
// the subtasks.
func (p *Plan) TotalEstimatedMinutes() int {
	total := 0
	for _, s := range p.Subtasks {
		total += s.EstimatedMinutes
	}
	return total
}

// ParallelizableSubtasks returns the number of subtasks flagged as
// parallelizable.
func (p *Plan) ParallelizableSubtasks() int {
	n := 0
	for _, s := range p.Subtasks {
		if s.CanParallelize {
			n++
		}
	}
	return n
}

// GetSubtask returns the subtask with the given ID, or nil if not found.
func (p *Plan) GetSubtask(id string) *Subtask {
	for i := range p.Subtasks {
		if p.Subtasks[i].ID == id {
			return &p.Subtasks[i]
		}
	}
	return nil
}
