package plan

import "fmt"

// Validate checks a plan for structural validity: non-empty descriptions,
// positive estimates, unique subtask IDs, known dependency targets, no
// self-references, no forward references, and no cycles.
//
// The forward-reference check is stricter than plain DAG-ness: because
// subtasks are stored in creation order, a dependency on an ID created
// later always indicates a malformed plan, even when it would not cycle.
func Validate(p *Plan) error {
	if p == nil {
		return fmt.Errorf("plan is nil")
	}

	if len(p.Subtasks) == 0 {
		return fmt.Errorf("plan has no subtasks")
	}

	seen := make(map[string]int, len(p.Subtasks))
	for i, s := range p.Subtasks {
		if s.ID == "" {
			return fmt.Errorf("subtask %d has empty id", i)
		}
		if prev, dup := seen[s.ID]; dup {
			return fmt.Errorf("duplicate subtask id %q (positions %d and %d)", s.ID, prev, i)
		}
		seen[s.ID] = i

		if s.Description == "" {
			return fmt.Errorf("subtask %s has empty description", s.ID)
		}
		if s.EstimatedMinutes <= 0 {
			return fmt.Errorf("subtask %s has non-positive estimate %d", s.ID, s.EstimatedMinutes)
		}
	}

	for i, s := range p.Subtasks {
		for _, dep := range s.Dependencies {
			if dep == s.ID {
				return fmt.Errorf("subtask %s depends on itself", s.ID)
			}
			pos, ok := seen[dep]
			if !ok {
				return fmt.Errorf("subtask %s depends on unknown subtask %s", s.ID, dep)
			}
			if pos > i {
				return fmt.Errorf("subtask %s depends on %s, which is created after it", s.ID, dep)
			}
		}
	}

	// Forward references are already excluded above, which rules out
	// cycles for well-ordered plans. Run the scheduling check anyway so a
	// reordered provider payload cannot slip a cycle through.
	if scheduled := countSchedulable(p.Subtasks); scheduled < len(p.Subtasks) {
		return fmt.Errorf("dependency cycle detected: only %d of %d subtasks can be scheduled",
			scheduled, len(p.Subtasks))
	}

	return nil
}

// countSchedulable runs Kahn's algorithm over the subtasks and returns how
// many of them can be scheduled. A result lower than the subtask count
// means the dependency graph contains a cycle.
func countSchedulable(subtasks []Subtask) int {
	inDegree := make(map[string]int, len(subtasks))
	for _, s := range subtasks {
		inDegree[s.ID] = len(s.Dependencies)
	}

	completed := make(map[string]bool, len(subtasks))
	for len(completed) < len(subtasks) {
		var ready []string
		for _, s := range subtasks {
			if !completed[s.ID] && inDegree[s.ID] == 0 {
				ready = append(ready, s.ID)
			}
		}
		if len(ready) == 0 {
			break
		}

		for _, id := range ready {
			completed[id] = true
			for _, s := range subtasks {
				for _, dep := range s.Dependencies {
					if dep == id {
						inDegree[s.ID]--
					}
				}
			}
		}
	}

	return len(completed)
}
