// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"github.com/google/uuid"

	"github.com/stepflowhq/stepflow/pkg/models"
)

// CreateTestStep creates a test Step with default values that can be overridden.
func CreateTestStep(overrides ...func(*models.Step)) *models.Step {
	step := &models.Step{
		ID:     uuid.New().String(),
		Name:   "Test Step",
		Role:   "agent",
		Design: models.Design{X: 100, Y: 200},
	}

	for _, override := range overrides {
		override(step)
	}

	return step
}

// WithID sets the step id.
func WithID(id string) func(*models.Step) {
	return func(s *models.Step) {
		s.ID = id
	}
}

// WithName sets the step name.
func WithName(name string) func(*models.Step) {
	return func(s *models.Step) {
		s.Name = name
	}
}

// WithRole sets the assignee role.
func WithRole(role string) func(*models.Step) {
	return func(s *models.Step) {
		s.Role = role
	}
}

// WithPosition sets the canvas position.
func WithPosition(x, y float64) func(*models.Step) {
	return func(s *models.Step) {
		s.Design = models.Design{X: x, Y: y}
	}
}

// AsStart flags the step as a start step.
func AsStart() func(*models.Step) {
	return func(s *models.Step) {
		s.IsStart = true
	}
}

// AsEnd flags the step as an end step.
func AsEnd() func(*models.Step) {
	return func(s *models.Step) {
		s.IsEnd = true
	}
}

// WithSLAWeight sets the SLA weight.
func WithSLAWeight(weight int) func(*models.Step) {
	return func(s *models.Step) {
		s.SLAWeight = weight
	}
}

// CreateTestTransition creates a test Transition between two step ids.
func CreateTestTransition(source, target string, overrides ...func(*models.Transition)) *models.Transition {
	transition := &models.Transition{
		ID:     uuid.New().String(),
		Source: source,
		Target: target,
	}

	for _, override := range overrides {
		override(transition)
	}

	return transition
}

// WithHandles sets explicit source and target handles.
func WithHandles(sourceHandle, targetHandle string) func(*models.Transition) {
	return func(t *models.Transition) {
		t.SourceHandle = sourceHandle
		t.TargetHandle = targetHandle
	}
}

// WithConditions sets the transition condition expression.
func WithConditions(conditions string) func(*models.Transition) {
	return func(t *models.Transition) {
		t.Conditions = conditions
	}
}

// CreateTestWorkflow creates a linear three step workflow document that
// passes save readiness checks.
func CreateTestWorkflow(overrides ...func(*models.WorkflowData)) *models.WorkflowData {
	start := CreateTestStep(WithID("start"), WithName("Intake"), AsStart())
	middle := CreateTestStep(WithID("review"), WithName("Review"), WithRole("manager"), WithPosition(100, 400))
	end := CreateTestStep(WithID("done"), WithName("Close"), WithRole("manager"), WithPosition(100, 600), AsEnd())

	data := &models.WorkflowData{
		Name:     "Test Workflow",
		TotalSLA: 24,
		Steps:    []*models.Step{start, middle, end},
		Transitions: []*models.Transition{
			CreateTestTransition("start", "review"),
			CreateTestTransition("review", "done"),
		},
	}

	for _, override := range overrides {
		override(data)
	}

	return data
}

// WithTotalSLA sets the workflow SLA budget in hours.
func WithTotalSLA(hours float64) func(*models.WorkflowData) {
	return func(w *models.WorkflowData) {
		w.TotalSLA = hours
	}
}

// WithSteps replaces the step set.
func WithSteps(steps ...*models.Step) func(*models.WorkflowData) {
	return func(w *models.WorkflowData) {
		w.Steps = steps
	}
}

// WithTransitions replaces the transition set.
func WithTransitions(transitions ...*models.Transition) func(*models.WorkflowData) {
	return func(w *models.WorkflowData) {
		w.Transitions = transitions
	}
}
