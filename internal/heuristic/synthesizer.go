package heuristic

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moltbook/decomposer/internal/plan"
)

// Template stage effort estimates, in minutes.
const (
	researchStageMinutes  = 10
	implementStageMinutes = 15
	verifyStageMinutes    = 5
)

// Synthesize decomposes task text into a plan using only the classifier
// and the splitter. It always succeeds: inputs with two or more usable
// segments become a linear subtask chain, and anything else (including the
// empty string) falls back to the fixed three-stage template, whose verify
// stage is unconditional.
func Synthesize(text string) *plan.Plan {
	domains, actions := Classify(text)
	segments := Split(text)

	var subtasks []plan.Subtask
	if len(segments) >= 2 {
		subtasks = subtasksFromSegments(segments)
	} else {
		subtasks = templateSubtasks(text, domains, actions)
	}

	return &plan.Plan{
		ID:             uuid.NewString(),
		OriginalTask:   text,
		Domains:        domains,
		Actions:        actions,
		Complexity:     plan.ComplexityForCount(len(subtasks)),
		Subtasks:       subtasks,
		Recommendation: plan.RecommendationForCount(len(subtasks)),
		Method:         plan.MethodRuleBased,
		CreatedAt:      time.Now(),
	}
}

// subtasksFromSegments builds one subtask per segment, in order.
//
// Dependencies form a strict linear chain: every subtask after the first
// depends on its predecessor. CanParallelize is true for the first subtask
// and for any subtask whose domain differs from the immediately preceding
// one — same-domain neighbors are assumed sequential, a domain switch is
// assumed independent enough to overlap.
func subtasksFromSegments(segments []string) []plan.Subtask {
	subtasks := make([]plan.Subtask, 0, len(segments))

	var prevDomain plan.Domain
	for i, segment := range segments {
		domain := PrimaryDomain(segment)

		st := plan.Subtask{
			ID:               fmt.Sprintf("task_%d", i+1),
			Description:      segment,
			Domain:           domain,
			EstimatedMinutes: EffortEstimate(domain),
			CanParallelize:   i == 0 || domain != prevDomain,
		}
		if i > 0 {
			st.Dependencies = []string{subtasks[i-1].ID}
		}

		subtasks = append(subtasks, st)
		prevDomain = domain
	}

	return subtasks
}

// templateSubtasks builds the fixed three-stage fallback used when the
// splitter found too little structure to decompose lexically.
//
// The research stage is included only when the research domain or a "find"
// keyword is present; the implement stage only when the coding domain or a
// build/create/implement action is present. The closing verify stage is
// mandatory and depends on whichever stage came last. Only a leading
// research stage may run independently.
func templateSubtasks(text string, domains []plan.Domain, actions []string) []plan.Subtask {
	var subtasks []plan.Subtask

	if containsDomain(domains, plan.DomainResearch) || strings.Contains(strings.ToLower(text), "find") {
		subtasks = append(subtasks, plan.Subtask{
			ID:               "research",
			Description:      fmt.Sprintf("Research and gather information about: %s", text),
			Domain:           plan.DomainResearch,
			EstimatedMinutes: researchStageMinutes,
			CanParallelize:   true,
		})
	}

	if containsDomain(domains, plan.DomainCoding) || hasBuildAction(actions) {
		st := plan.Subtask{
			ID:               "implement",
			Description:      "Implement the solution",
			Domain:           plan.DomainCoding,
			EstimatedMinutes: implementStageMinutes,
			CanParallelize:   false,
		}
		if len(subtasks) > 0 {
			st.Dependencies = []string{subtasks[len(subtasks)-1].ID}
		}
		subtasks = append(subtasks, st)
	}

	verify := plan.Subtask{
		ID:               "verify",
		Description:      "Test and verify the result",
		Domain:           plan.DomainDevops,
		EstimatedMinutes: verifyStageMinutes,
		CanParallelize:   false,
	}
	if len(subtasks) > 0 {
		verify.Dependencies = []string{subtasks[len(subtasks)-1].ID}
	}

	return append(subtasks, verify)
}

func containsDomain(domains []plan.Domain, target plan.Domain) bool {
	for _, d := range domains {
		if d == target {
			return true
		}
	}
	return false
}

func hasBuildAction(actions []string) bool {
	for _, a := range actions {
		switch a {
		case "build", "create", "implement":
			return true
		}
	}
	return false
}
