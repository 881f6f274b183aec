package validation

import (
	"github.com/stepflowhq/stepflow/pkg/handles"
	"github.com/stepflowhq/stepflow/pkg/models"
)

// EdgeIssue pairs a rejected transition with its validation errors.
type EdgeIssue struct {
	Transition *models.Transition       `json:"transition"`
	Errors     []models.ValidationIssue `json:"errors"`
}

// GraphResult partitions a scanned edge set into valid, invalid, and
// orphaned buckets.
type GraphResult struct {
	ValidEdges    []*models.Transition `json:"valid_edges"`
	InvalidEdges  []EdgeIssue          `json:"invalid_edges"`
	OrphanedEdges []*models.Transition `json:"orphaned_edges"`
	IsGraphValid  bool                 `json:"is_graph_valid"`
}

// ValidateGraph scans every transition against the current step set. Edges
// referencing a missing step are classified as orphaned (dangling leftovers
// of a node deletion) without further validation. The remaining edges are
// folded in one at a time, so a duplicate tuple within the scanned set is
// caught on its second occurrence and bounded handles accrue their
// connection counts across the set.
func ValidateGraph(steps []*models.Step, transitions []*models.Transition, resolver handles.Resolver, opts Options) GraphResult {
	result := GraphResult{
		ValidEdges:    make([]*models.Transition, 0, len(transitions)),
		InvalidEdges:  make([]EdgeIssue, 0),
		OrphanedEdges: make([]*models.Transition, 0),
	}

	stepIDs := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		stepIDs[step.ID] = struct{}{}
	}

	accepted := make([]*models.Transition, 0, len(transitions))

	for _, transition := range transitions {
		_, sourceExists := stepIDs[transition.Source]
		_, targetExists := stepIDs[transition.Target]

		if !sourceExists || !targetExists {
			result.OrphanedEdges = append(result.OrphanedEdges, transition)

			continue
		}

		conn := Connection{
			Source:       transition.Source,
			Target:       transition.Target,
			SourceHandle: transition.SourceHandle,
			TargetHandle: transition.TargetHandle,
		}

		edgeResult := ValidateConnection(conn, Context{
			Steps:       steps,
			Transitions: accepted,
			Resolver:    resolver,
		}, opts)

		if edgeResult.IsValid {
			accepted = append(accepted, transition)
			result.ValidEdges = append(result.ValidEdges, transition)

			continue
		}

		result.InvalidEdges = append(result.InvalidEdges, EdgeIssue{
			Transition: transition,
			Errors:     edgeResult.Errors,
		})
	}

	result.IsGraphValid = len(result.InvalidEdges) == 0 && len(result.OrphanedEdges) == 0

	return result
}
