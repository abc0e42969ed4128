package plan

// LongestChain computes the longest dependency chain through a plan,
// weighting each subtask by its estimated minutes. This is the critical
// path under ideal parallelism: no schedule can finish faster than the sum
// of the estimates along the returned chain.
//
// The heuristic synthesizer never stores a critical path (its linear chain
// makes the last subtask's ID the trivial answer); this helper exists for
// callers that need an explicit path for a plan whose provider omitted one.
// Returns nil for plans with no subtasks or with an invalid graph.
func LongestChain(p *Plan) []string {
	if p == nil || len(p.Subtasks) == 0 {
		return nil
	}

	index := make(map[string]*Subtask, len(p.Subtasks))
	for i := range p.Subtasks {
		index[p.Subtasks[i].ID] = &p.Subtasks[i]
	}

	// Forward pass in creation order. Valid plans never reference a later
	// subtask, so a single sweep computes every finish weight.
	finish := make(map[string]int, len(p.Subtasks))
	prev := make(map[string]string, len(p.Subtasks))
	for _, s := range p.Subtasks {
		start := 0
		for _, dep := range s.Dependencies {
			if _, ok := index[dep]; !ok {
				return nil
			}
			if finish[dep] > start {
				start = finish[dep]
				prev[s.ID] = dep
			}
		}
		finish[s.ID] = start + s.EstimatedMinutes
	}

	// The chain ends at the subtask with the largest finish weight. Scan
	// in creation order so ties break deterministically.
	var endID string
	best := -1
	for _, s := range p.Subtasks {
		if finish[s.ID] > best {
			best = finish[s.ID]
			endID = s.ID
		}
	}

	// Walk predecessors back to a root, then reverse.
	var chain []string
	for id := endID; id != ""; id = prev[id] {
		chain = append(chain, id)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain
}
