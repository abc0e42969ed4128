package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/moltbook/decomposer/internal/plan"
	"github.com/moltbook/decomposer/internal/util"
)

// Styles for the pretty terminal format.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	subtaskIDStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("228"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	riskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	recommendationStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(lipgloss.Color("78"))
)

// subtaskLineWidth bounds the styled id+description line of each subtask.
const subtaskLineWidth = 64

// renderPretty produces the human-facing terminal layout: a title block,
// the classification summary, an arrow-annotated subtask list, the
// critical path and risks when known, and the recommendation.
// Parallelizable subtasks are marked with ∥, sequential ones with →.
func renderPretty(p *plan.Plan) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("TASK DECOMPOSITION"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "%s %s\n\n", labelStyle.Render("Original:"), p.OriginalTask)
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("Domains:"), joinDomains(p.Domains))
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("Complexity:"), p.Complexity)
	fmt.Fprintf(&sb, "%s %d min\n\n", labelStyle.Render("Total Est. Time:"), p.TotalEstimatedMinutes())

	sb.WriteString(labelStyle.Render("Subtasks:"))
	sb.WriteString("\n")
	for _, st := range p.Subtasks {
		marker := "→"
		if st.CanParallelize {
			marker = "∥"
		}

		// The id is styled before truncation, so the cut has to be
		// escape-sequence aware.
		line := fmt.Sprintf("%s %s %s", marker, subtaskIDStyle.Render("["+st.ID+"]"), st.Description)
		fmt.Fprintf(&sb, "   %s\n", util.TruncateANSI(line, subtaskLineWidth))

		meta := fmt.Sprintf("%s | %dmin", st.Domain, st.EstimatedMinutes)
		if len(st.Dependencies) > 0 {
			meta += fmt.Sprintf(" → needs [%s]", strings.Join(st.Dependencies, ", "))
		}
		if len(st.ToolsNeeded) > 0 {
			meta += " | tools: " + strings.Join(st.ToolsNeeded, ", ")
		}
		fmt.Fprintf(&sb, "      %s\n", metaStyle.Render(meta))
	}

	if path := criticalPath(p); len(path) > 0 {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("Critical Path:"), strings.Join(path, " → "))
	}

	if len(p.Risks) > 0 {
		sb.WriteString("\n")
		sb.WriteString(labelStyle.Render("Risks:"))
		sb.WriteString("\n")
		for _, r := range p.Risks {
			fmt.Fprintf(&sb, "   %s\n", riskStyle.Render("! "+r))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(recommendationStyle.Render(p.Recommendation))

	return sb.String()
}

// criticalPath returns the plan's stored critical path when the provider
// supplied one, deriving it from the dependency graph otherwise. The plan
// itself is never mutated; this is a display-time computation like the
// total-minutes line.
func criticalPath(p *plan.Plan) []string {
	if len(p.CriticalPath) > 0 {
		return p.CriticalPath
	}
	return plan.LongestChain(p)
}
