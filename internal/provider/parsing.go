package provider

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/moltbook/decomposer/internal/errors"
	"github.com/moltbook/decomposer/internal/plan"
)

// planPayload is the schema a provider response must match. ID, original
// task, method, and timestamp are never taken from the model; the caller
// stamps them after parsing.
type planPayload struct {
	Complexity     string         `json:"complexity"`
	Subtasks       []plan.Subtask `json:"subtasks"`
	CriticalPath   []string       `json:"critical_path"`
	Risks          []string       `json:"risks"`
	Recommendation string         `json:"recommendation"`
}

// parsePlanResponse extracts and validates a plan from raw model output.
//
// Models wrap JSON in prose and code fences despite instructions, so the
// parser first strips fences, then scans for the outermost JSON object.
// The candidate is probed with gjson before strict decoding; a response
// with no valid object, a missing or unknown complexity, a missing
// recommendation, or a structurally invalid subtask graph is rejected
// wholesale. A failed parse is a provider failure, never a partial plan:
// the result carries only what the provider returned plus the locally
// stamped ID, original task, method, and timestamp.
func parsePlanResponse(providerName string, method plan.Method, task, raw string) (*plan.Plan, error) {
	candidate := extractJSONObject(stripJSONFences(raw))
	if candidate == "" || !gjson.Valid(candidate) {
		return nil, errors.NewProviderError("no JSON object in response", errors.ErrProviderUnparseable).
			WithProvider(providerName)
	}
	if !gjson.Get(candidate, "subtasks").IsArray() {
		return nil, errors.NewProviderError("response has no subtasks array", errors.ErrProviderUnparseable).
			WithProvider(providerName)
	}

	var payload planPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil, errors.NewProviderError("response does not match plan schema", errors.ErrProviderUnparseable).
			WithProvider(providerName)
	}

	// The prompt demands complexity and recommendation; their absence
	// means the response deviated from the schema. Neither is derived
	// locally, so a plan is never half-invented.
	complexity := plan.Complexity(payload.Complexity)
	if !complexity.IsValid() {
		return nil, errors.NewProviderError("missing or unknown complexity", errors.ErrProviderUnparseable).
			WithProvider(providerName)
	}
	recommendation := strings.TrimSpace(payload.Recommendation)
	if recommendation == "" {
		return nil, errors.NewProviderError("missing recommendation", errors.ErrProviderUnparseable).
			WithProvider(providerName)
	}

	p := &plan.Plan{
		ID:             uuid.NewString(),
		OriginalTask:   task,
		Complexity:     complexity,
		Subtasks:       payload.Subtasks,
		CriticalPath:   payload.CriticalPath,
		Risks:          payload.Risks,
		Recommendation: recommendation,
		Method:         method,
		CreatedAt:      time.Now(),
	}

	if err := plan.Validate(p); err != nil {
		return nil, errors.NewProviderError("response plan failed validation", errors.ErrProviderUnparseable).
			WithProvider(providerName)
	}

	return p, nil
}

// stripJSONFences removes markdown code fences around a JSON payload.
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// extractJSONObject returns the outermost brace-balanced object in s, or
// "" when none exists. Braces inside JSON strings are skipped.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}

	return ""
}
