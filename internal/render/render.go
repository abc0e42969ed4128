// Package render turns plans into output text. Four formats are
// supported: json and yaml for machine consumption, markdown for
// checklists, and pretty for terminal display.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/moltbook/decomposer/internal/plan"
)

// Format identifies an output format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatPretty   Format = "pretty"
)

// ParseFormat validates a format string from a flag or config value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatPretty:
		return FormatPretty, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: json, yaml, markdown, pretty)", s)
	}
}

// Render formats a plan in the requested format. The returned string ends
// without a trailing newline; callers add one when printing.
func Render(p *plan.Plan, format Format) (string, error) {
	if p == nil {
		return "", fmt.Errorf("cannot render nil plan")
	}

	switch format {
	case FormatJSON:
		return renderJSON(p)
	case FormatYAML:
		return renderYAML(p)
	case FormatMarkdown:
		return renderMarkdown(p), nil
	case FormatPretty:
		return renderPretty(p), nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

// renderJSON produces indented JSON. The output round-trips through
// ParsePlan without loss.
func renderJSON(p *plan.Plan) (string, error) {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal plan: %w", err)
	}
	return string(b), nil
}

// ParsePlan decodes a plan previously rendered as JSON.
func ParsePlan(data []byte) (*plan.Plan, error) {
	var p plan.Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	if err := plan.Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func renderYAML(p *plan.Plan) (string, error) {
	b, err := yaml.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal plan: %w", err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}

// renderMarkdown produces a checklist document: a header with the task
// summary, one checkbox per subtask with its dependency note, critical
// path and risk sections when the plan carries them, and the closing
// recommendation.
func renderMarkdown(p *plan.Plan) string {
	var sb strings.Builder

	sb.WriteString("# Task Decomposition\n\n")
	fmt.Fprintf(&sb, "**Original:** %s\n\n", p.OriginalTask)
	fmt.Fprintf(&sb, "**Domains:** %s\n", joinDomains(p.Domains))
	fmt.Fprintf(&sb, "**Complexity:** %s\n", p.Complexity)
	fmt.Fprintf(&sb, "**Estimated Time:** %d minutes\n\n", p.TotalEstimatedMinutes())
	sb.WriteString("## Subtasks\n\n")

	for _, st := range p.Subtasks {
		deps := ""
		if len(st.Dependencies) > 0 {
			deps = fmt.Sprintf(" (after: %s)", strings.Join(st.Dependencies, ", "))
		}
		parallel := "✗"
		if st.CanParallelize {
			parallel = "✓"
		}
		tools := ""
		if len(st.ToolsNeeded) > 0 {
			tools = " | Tools: " + strings.Join(st.ToolsNeeded, ", ")
		}
		fmt.Fprintf(&sb, "- [ ] **%s**: %s%s\n", st.ID, st.Description, deps)
		fmt.Fprintf(&sb, "  - Domain: %s | Est: %dmin | Parallel: %s%s\n", st.Domain, st.EstimatedMinutes, parallel, tools)
	}

	if len(p.CriticalPath) > 0 {
		sb.WriteString("\n## Critical Path\n\n")
		sb.WriteString(strings.Join(p.CriticalPath, " → "))
		sb.WriteString("\n")
	}

	if len(p.Risks) > 0 {
		sb.WriteString("\n## Risks\n\n")
		for _, r := range p.Risks {
			fmt.Fprintf(&sb, "- %s\n", r)
		}
	}

	sb.WriteString("\n## Recommendation\n\n")
	sb.WriteString(p.Recommendation)

	return sb.String()
}

func joinDomains(domains []plan.Domain) string {
	if len(domains) == 0 {
		return string(plan.DomainUnknown)
	}
	parts := make([]string, len(domains))
	for i, d := range domains {
		parts[i] = string(d)
	}
	return strings.Join(parts, ", ")
}
