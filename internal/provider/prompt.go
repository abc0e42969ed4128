package provider

import (
	"fmt"
	"strings"
)

// systemPrompt frames the model as a planner that emits only JSON. Both
// providers share it so their outputs parse identically.
const systemPrompt = `You are a task decomposition engine. Break the user's task into concrete subtasks and respond with a single JSON object, no prose, no code fences.`

// promptTemplate is the user-message template. The schema mirrors the plan
// types exactly; any deviation in the response fails strict parsing.
const promptTemplate = `Decompose this task into subtasks:

%s

Respond with exactly this JSON structure:
{
  "complexity": "simple|medium|complex",
  "subtasks": [
    {
      "id": "task_1",
      "description": "what to do",
      "domain": "trading|coding|research|writing|devops|social|data|unknown",
      "estimated_minutes": 10,
      "dependencies": [],
      "can_parallelize": false,
      "tools_needed": []
    }
  ],
  "critical_path": ["task_1"],
  "risks": ["what could go wrong"],
  "recommendation": "how to execute this plan"
}

Rules:
- Every dependency must reference the id of an earlier subtask.
- Dependencies must not form cycles.
- estimated_minutes must be a positive integer.
- Output only the JSON object.`

// buildPrompt renders the user message for a task.
func buildPrompt(task string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(task))
}
