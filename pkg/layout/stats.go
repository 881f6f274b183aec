package layout

import (
	"sort"

	"github.com/stepflowhq/stepflow/pkg/models"
)

// GraphStats summarizes the shape of a workflow graph.
type GraphStats struct {
	Steps       int `json:"steps"`
	Transitions int `json:"transitions"`
	StartSteps  int `json:"start_steps"`
	EndSteps    int `json:"end_steps"`

	// Depth is the number of layers the layered layout produces, counting
	// only steps reachable from a start step.
	Depth int `json:"depth"`

	// Unreachable lists step ids with no path from any start step, sorted
	// for stable output.
	Unreachable []string `json:"unreachable"`
}

// Stats computes summary statistics for a graph.
func Stats(steps []*models.Step, transitions []*models.Transition) GraphStats {
	stats := GraphStats{
		Steps:       len(steps),
		Transitions: len(transitions),
		Unreachable: []string{},
	}

	outgoing := make(map[string][]string, len(steps))
	for _, transition := range transitions {
		outgoing[transition.Source] = append(outgoing[transition.Source], transition.Target)
	}

	known := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		known[step.ID] = struct{}{}

		if step.IsStart {
			stats.StartSteps++
		}

		if step.IsEnd {
			stats.EndSteps++
		}
	}

	reachable := make(map[string]struct{}, len(steps))
	queue := make([]string, 0, len(steps))

	for _, step := range steps {
		if step.IsStart {
			reachable[step.ID] = struct{}{}
			queue = append(queue, step.ID)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		for _, next := range outgoing[id] {
			if _, exists := known[next]; !exists {
				continue
			}

			if _, seen := reachable[next]; seen {
				continue
			}

			reachable[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	ranks := AssignRanks(steps, transitions)
	maxRank := -1

	for _, step := range steps {
		if _, ok := reachable[step.ID]; !ok {
			stats.Unreachable = append(stats.Unreachable, step.ID)

			continue
		}

		if rank := ranks[step.ID]; rank > maxRank {
			maxRank = rank
		}
	}

	stats.Depth = maxRank + 1

	sort.Strings(stats.Unreachable)

	return stats
}
