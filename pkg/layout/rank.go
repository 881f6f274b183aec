package layout

import (
	"github.com/stepflowhq/stepflow/pkg/models"
)

// fallbackRank is assigned to steps unreachable from any start step, so
// disconnected fragments still render below the start row.
const fallbackRank = 1

// AssignRanks computes a layer index per step: start steps get rank 0 and
// every reachable successor takes the maximum of its assigned rank and
// parent rank + 1, so a step reachable over several paths lands after all
// its predecessors. The walk keeps a recursion-path guard, so back-edges
// (loops and rejection paths are legitimate in workflow graphs) terminate
// instead of inflating ranks. This is a heuristic layering, not a
// topological sort.
func AssignRanks(steps []*models.Step, transitions []*models.Transition) map[string]int {
	outgoing := make(map[string][]string, len(steps))
	for _, transition := range transitions {
		outgoing[transition.Source] = append(outgoing[transition.Source], transition.Target)
	}

	known := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		known[step.ID] = struct{}{}
	}

	ranks := make(map[string]int, len(steps))
	onPath := make(map[string]bool, len(steps))

	var walk func(id string, rank int)
	walk = func(id string, rank int) {
		if _, exists := known[id]; !exists {
			return
		}

		if onPath[id] {
			return
		}

		if existing, assigned := ranks[id]; assigned && existing >= rank {
			return
		}

		ranks[id] = rank
		onPath[id] = true

		for _, next := range outgoing[id] {
			walk(next, rank+1)
		}

		onPath[id] = false
	}

	for _, step := range steps {
		if step.IsStart {
			walk(step.ID, 0)
		}
	}

	for _, step := range steps {
		if _, assigned := ranks[step.ID]; !assigned {
			ranks[step.ID] = fallbackRank
		}
	}

	return ranks
}
