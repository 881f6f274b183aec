package validation

import (
	"fmt"

	"github.com/stepflowhq/stepflow/pkg/handles"
	"github.com/stepflowhq/stepflow/pkg/models"
)

// Severity ranks a whole-graph issue. Errors block save; warnings do not.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// GraphCode classifies a whole-graph issue.
type GraphCode string

const (
	GraphCodeNoStartStep           GraphCode = "NO_START_STEP"
	GraphCodeMultipleStartSteps    GraphCode = "MULTIPLE_START_STEPS"
	GraphCodeNoEndStep             GraphCode = "NO_END_STEP"
	GraphCodeDuplicateStepID       GraphCode = "DUPLICATE_STEP_ID"
	GraphCodeDuplicateTransitionID GraphCode = "DUPLICATE_TRANSITION_ID"
	GraphCodeInvalidEdges          GraphCode = "INVALID_EDGES"
	GraphCodeOrphanedEdges         GraphCode = "ORPHANED_EDGES"
)

// GraphIssue is one whole-graph finding.
type GraphIssue struct {
	Severity Severity  `json:"severity"`
	Code     GraphCode `json:"code"`
	Message  string    `json:"message"`
}

// ReadinessReport is the outcome of a save-readiness check. The backend
// independently enforces the same rules; this report is the first line of
// defense before a round-trip.
type ReadinessReport struct {
	Ready  bool         `json:"ready"`
	Issues []GraphIssue `json:"issues"`
	Edges  GraphResult  `json:"edges"`
}

// CheckSaveReadiness validates the whole document for save: id uniqueness,
// the single-start invariant, the end-step recommendation, and a full edge
// scan. A non-empty graph with zero or more than one start step is not
// ready.
func CheckSaveReadiness(data *models.WorkflowData, resolver handles.Resolver, opts Options) ReadinessReport {
	report := ReadinessReport{Issues: make([]GraphIssue, 0)}

	if len(data.Steps) > 0 {
		starts := data.StartSteps()

		switch {
		case len(starts) == 0:
			report.Issues = append(report.Issues, GraphIssue{
				Severity: SeverityError,
				Code:     GraphCodeNoStartStep,
				Message:  "workflow has no start step",
			})
		case len(starts) > 1:
			report.Issues = append(report.Issues, GraphIssue{
				Severity: SeverityError,
				Code:     GraphCodeMultipleStartSteps,
				Message:  fmt.Sprintf("workflow has %d start steps, expected exactly one", len(starts)),
			})
		}

		if len(data.EndSteps()) == 0 {
			report.Issues = append(report.Issues, GraphIssue{
				Severity: SeverityWarning,
				Code:     GraphCodeNoEndStep,
				Message:  "workflow has no end step",
			})
		}
	}

	seenSteps := make(map[string]struct{}, len(data.Steps))

	for _, step := range data.Steps {
		if _, dup := seenSteps[step.ID]; dup {
			report.Issues = append(report.Issues, GraphIssue{
				Severity: SeverityError,
				Code:     GraphCodeDuplicateStepID,
				Message:  fmt.Sprintf("step id %q is used more than once", step.ID),
			})
		}

		seenSteps[step.ID] = struct{}{}
	}

	seenTransitions := make(map[string]struct{}, len(data.Transitions))

	for _, transition := range data.Transitions {
		if _, dup := seenTransitions[transition.ID]; dup {
			report.Issues = append(report.Issues, GraphIssue{
				Severity: SeverityError,
				Code:     GraphCodeDuplicateTransitionID,
				Message:  fmt.Sprintf("transition id %q is used more than once", transition.ID),
			})
		}

		seenTransitions[transition.ID] = struct{}{}
	}

	report.Edges = ValidateGraph(data.Steps, data.Transitions, resolver, opts)

	if len(report.Edges.InvalidEdges) > 0 {
		report.Issues = append(report.Issues, GraphIssue{
			Severity: SeverityError,
			Code:     GraphCodeInvalidEdges,
			Message:  fmt.Sprintf("%d transitions failed validation", len(report.Edges.InvalidEdges)),
		})
	}

	if len(report.Edges.OrphanedEdges) > 0 {
		report.Issues = append(report.Issues, GraphIssue{
			Severity: SeverityError,
			Code:     GraphCodeOrphanedEdges,
			Message:  fmt.Sprintf("%d transitions reference deleted steps", len(report.Edges.OrphanedEdges)),
		})
	}

	report.Ready = true

	for _, issue := range report.Issues {
		if issue.Severity == SeverityError {
			report.Ready = false

			break
		}
	}

	return report
}
