// Package validation implements pure structural validation for workflow
// graphs: single-connection checks, whole-graph edge scans, and
// save-readiness reporting. All functions read a snapshot of the graph and
// report failures as values.
package validation

import (
	"fmt"

	"github.com/stepflowhq/stepflow/pkg/handles"
	"github.com/stepflowhq/stepflow/pkg/models"
)

// Options tunes connection validation behavior.
type Options struct {
	// AllowSelfLoops permits transitions whose source and target are the
	// same step. Disallowed by default.
	AllowSelfLoops bool
}

// Connection is a proposed edge between two step handles.
type Connection struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"source_handle,omitempty"`
	TargetHandle string `json:"target_handle,omitempty"`
}

// Context is the graph snapshot a connection is validated against.
type Context struct {
	Steps       []*models.Step
	Transitions []*models.Transition
	Resolver    handles.Resolver
}

func (c Context) stepByID(id string) *models.Step {
	for _, step := range c.Steps {
		if step.ID == id {
			return step
		}
	}

	return nil
}

// ValidateConnection validates a proposed edge against the handle schema,
// the existing edge set, and the structural rules. Checks run in order and
// short-circuit on the first failing class; cardinality issues for both
// ends are collected together.
func ValidateConnection(conn Connection, graph Context, opts Options) models.ValidationResult {
	source := graph.stepByID(conn.Source)
	target := graph.stepByID(conn.Target)

	var issues []models.ValidationIssue

	if source == nil {
		issues = append(issues, models.ValidationIssue{
			Code:    models.CodeSourceNotFound,
			Message: fmt.Sprintf("source step %q does not exist", conn.Source),
			Details: map[string]any{"step_id": conn.Source},
		})
	}

	if target == nil {
		issues = append(issues, models.ValidationIssue{
			Code:    models.CodeTargetNotFound,
			Message: fmt.Sprintf("target step %q does not exist", conn.Target),
			Details: map[string]any{"step_id": conn.Target},
		})
	}

	if len(issues) > 0 {
		return models.Invalid(issues...)
	}

	if conn.Source == conn.Target && !opts.AllowSelfLoops {
		return models.Invalid(models.ValidationIssue{
			Code:    models.CodeSelfLoop,
			Message: fmt.Sprintf("step %q cannot connect to itself", conn.Source),
			Details: map[string]any{"step_id": conn.Source},
		})
	}

	sourceHandle, sourceIssue := resolveHandle(graph.Resolver, source, conn.SourceHandle, models.HandleTypeOutput)
	targetHandle, targetIssue := resolveHandle(graph.Resolver, target, conn.TargetHandle, models.HandleTypeInput)

	if sourceIssue != nil {
		issues = append(issues, *sourceIssue)
	}

	if targetIssue != nil {
		issues = append(issues, *targetIssue)
	}

	if len(issues) > 0 {
		return models.Invalid(issues...)
	}

	if directionIssues := checkDirection(sourceHandle, targetHandle); len(directionIssues) > 0 {
		return models.Invalid(directionIssues...)
	}

	if dup := findDuplicate(conn, sourceHandle.ID, targetHandle.ID, graph); dup != nil {
		return models.Invalid(models.ValidationIssue{
			Code:    models.CodeDuplicateEdge,
			Message: fmt.Sprintf("an identical connection from %q to %q already exists", conn.Source, conn.Target),
			Details: map[string]any{"transition_id": dup.ID},
		})
	}

	issues = append(issues, checkCardinality(conn, sourceHandle, targetHandle, graph)...)
	if len(issues) > 0 {
		return models.Invalid(issues...)
	}

	return models.Valid()
}

// resolveHandle looks up an explicit handle id on a step, or falls back to
// the step's sole handle of the wanted type when the id is empty.
func resolveHandle(resolver handles.Resolver, step *models.Step, handleID string, want models.HandleType) (models.Handle, *models.ValidationIssue) {
	set := resolver.Resolve(step)

	if handleID != "" {
		handle, ok := handles.Find(set, handleID)
		if !ok {
			return models.Handle{}, &models.ValidationIssue{
				Code:    models.CodeHandleNotFound,
				Message: fmt.Sprintf("handle %q is not defined on step %q", handleID, step.ID),
				Details: map[string]any{"step_id": step.ID, "handle_id": handleID},
			}
		}

		return handle, nil
	}

	handle, ok := handles.FindByType(set, want)
	if !ok {
		return models.Handle{}, &models.ValidationIssue{
			Code:    models.CodeHandleNotFound,
			Message: fmt.Sprintf("step %q has no %s handle", step.ID, want),
			Details: map[string]any{"step_id": step.ID, "handle_type": string(want)},
		}
	}

	return handle, nil
}

// checkDirection enforces that the output end always initiates and the
// input end always receives.
func checkDirection(sourceHandle, targetHandle models.Handle) []models.ValidationIssue {
	var issues []models.ValidationIssue

	if sourceHandle.Type != models.HandleTypeOutput {
		issues = append(issues, models.ValidationIssue{
			Code:    models.CodeInvalidSourceHandle,
			Message: fmt.Sprintf("source handle %q must be an output handle", sourceHandle.ID),
			Details: map[string]any{"handle_id": sourceHandle.ID, "handle_type": string(sourceHandle.Type)},
		})
	}

	if targetHandle.Type != models.HandleTypeInput {
		issues = append(issues, models.ValidationIssue{
			Code:    models.CodeInvalidTargetHandle,
			Message: fmt.Sprintf("target handle %q must be an input handle", targetHandle.ID),
			Details: map[string]any{"handle_id": targetHandle.ID, "handle_type": string(targetHandle.Type)},
		})
	}

	if len(issues) == 0 {
		return nil
	}

	// Classify the failure shape alongside the per-end errors.
	switch {
	case sourceHandle.Type == targetHandle.Type:
		issues = append(issues, models.ValidationIssue{
			Code:    models.CodeSameTypeConnection,
			Message: fmt.Sprintf("cannot connect two %s handles", sourceHandle.Type),
		})
	case sourceHandle.Type == models.HandleTypeInput && targetHandle.Type == models.HandleTypeOutput:
		issues = append(issues, models.ValidationIssue{
			Code:    models.CodeWrongDirection,
			Message: "connection runs input to output; reverse the ends",
		})
	}

	return issues
}

// findDuplicate returns an existing transition matching the proposed tuple
// (source, target, source handle, target handle), comparing resolved handle
// ids so default-handle edges match their explicit equivalents.
func findDuplicate(conn Connection, sourceHandleID, targetHandleID string, graph Context) *models.Transition {
	for _, existing := range graph.Transitions {
		if existing.Source != conn.Source || existing.Target != conn.Target {
			continue
		}

		existingSource, existingTarget, ok := resolvedHandlePair(existing, graph)
		if !ok {
			continue
		}

		if existingSource == sourceHandleID && existingTarget == targetHandleID {
			return existing
		}
	}

	return nil
}

func checkCardinality(conn Connection, sourceHandle, targetHandle models.Handle, graph Context) []models.ValidationIssue {
	var issues []models.ValidationIssue

	if !sourceHandle.Unbounded() {
		count := countHandleUse(graph, conn.Source, sourceHandle.ID, true)
		if count >= sourceHandle.MaxConnections {
			issues = append(issues, models.ValidationIssue{
				Code:    models.CodeCardinalityExceeded,
				Message: fmt.Sprintf("source handle %q on step %q already has %d of %d connections", sourceHandle.ID, conn.Source, count, sourceHandle.MaxConnections),
				Details: map[string]any{"step_id": conn.Source, "handle_id": sourceHandle.ID, "max_connections": sourceHandle.MaxConnections},
			})
		}
	}

	if !targetHandle.Unbounded() {
		count := countHandleUse(graph, conn.Target, targetHandle.ID, false)
		if count >= targetHandle.MaxConnections {
			issues = append(issues, models.ValidationIssue{
				Code:    models.CodeCardinalityExceeded,
				Message: fmt.Sprintf("target handle %q on step %q already has %d of %d connections", targetHandle.ID, conn.Target, count, targetHandle.MaxConnections),
				Details: map[string]any{"step_id": conn.Target, "handle_id": targetHandle.ID, "max_connections": targetHandle.MaxConnections},
			})
		}
	}

	return issues
}

// countHandleUse counts existing edges attached to the given handle,
// outgoing when source is true, incoming otherwise.
func countHandleUse(graph Context, stepID, handleID string, source bool) int {
	count := 0

	for _, existing := range graph.Transitions {
		existingSource, existingTarget, ok := resolvedHandlePair(existing, graph)
		if !ok {
			continue
		}

		if source && existing.Source == stepID && existingSource == handleID {
			count++
		}

		if !source && existing.Target == stepID && existingTarget == handleID {
			count++
		}
	}

	return count
}

// resolvedHandlePair resolves the effective handle ids of an existing
// transition, applying the same default-handle fallback as for proposals.
func resolvedHandlePair(transition *models.Transition, graph Context) (string, string, bool) {
	source := graph.stepByID(transition.Source)
	target := graph.stepByID(transition.Target)

	if source == nil || target == nil {
		return "", "", false
	}

	sourceHandle, sourceIssue := resolveHandle(graph.Resolver, source, transition.SourceHandle, models.HandleTypeOutput)
	targetHandle, targetIssue := resolveHandle(graph.Resolver, target, transition.TargetHandle, models.HandleTypeInput)

	if sourceIssue != nil || targetIssue != nil {
		return "", "", false
	}

	return sourceHandle.ID, targetHandle.ID, true
}
