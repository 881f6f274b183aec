// Package models defines the core domain models for the workflow graph editor.
package models

// Design holds the rendered position of a step on the editor canvas.
type Design struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Step represents a node in the workflow graph: one stage of work assigned to a role.
type Step struct {
	ID          string `json:"id"          validate:"required"`
	Name        string `json:"name"        validate:"required,min=1"`
	Role        string `json:"role"        validate:"required,min=1"`
	Description string `json:"description,omitempty"`
	Instruction string `json:"instruction,omitempty"`
	Design      Design `json:"design"`
	IsStart     bool   `json:"is_start"`
	IsEnd       bool   `json:"is_end"`
	SLAWeight   int    `json:"sla_weight,omitempty" validate:"omitempty,min=1,max=10"`
}

// Weight returns the effective SLA weight, defaulting to 1 when unset.
func (s *Step) Weight() int {
	if s.SLAWeight < 1 {
		return 1
	}

	return s.SLAWeight
}

// Transition represents a directed edge connecting two steps.
type Transition struct {
	ID           string `json:"id"     validate:"required"`
	Source       string `json:"source" validate:"required"`
	Target       string `json:"target" validate:"required"`
	Name         string `json:"name"`
	SourceHandle string `json:"source_handle,omitempty"`
	TargetHandle string `json:"target_handle,omitempty"`
	Conditions   string `json:"conditions,omitempty"`
}

// WorkflowData is the canonical workflow document edited by a session:
// metadata plus the ordered step and transition sets.
type WorkflowData struct {
	Name        string        `json:"name"        validate:"required,min=3"`
	Description string        `json:"description"`
	TotalSLA    float64       `json:"total_sla"   validate:"min=0"` // hours
	Steps       []*Step       `json:"steps"`
	Transitions []*Transition `json:"transitions"`
}

// StepByID returns the step with the given id, or nil when absent.
func (w *WorkflowData) StepByID(id string) *Step {
	for _, step := range w.Steps {
		if step.ID == id {
			return step
		}
	}

	return nil
}

// TransitionByID returns the transition with the given id, or nil when absent.
func (w *WorkflowData) TransitionByID(id string) *Transition {
	for _, transition := range w.Transitions {
		if transition.ID == id {
			return transition
		}
	}

	return nil
}

// StartSteps returns every step flagged as a start step.
func (w *WorkflowData) StartSteps() []*Step {
	steps := make([]*Step, 0)

	for _, step := range w.Steps {
		if step.IsStart {
			steps = append(steps, step)
		}
	}

	return steps
}

// EndSteps returns every step flagged as an end step.
func (w *WorkflowData) EndSteps() []*Step {
	steps := make([]*Step, 0)

	for _, step := range w.Steps {
		if step.IsEnd {
			steps = append(steps, step)
		}
	}

	return steps
}

// Clone returns a deep copy of the workflow document. History snapshots are
// clones, so mutating the current document never leaks into past entries.
func (w *WorkflowData) Clone() *WorkflowData {
	clone := &WorkflowData{
		Name:        w.Name,
		Description: w.Description,
		TotalSLA:    w.TotalSLA,
		Steps:       make([]*Step, 0, len(w.Steps)),
		Transitions: make([]*Transition, 0, len(w.Transitions)),
	}

	for _, step := range w.Steps {
		stepCopy := *step
		clone.Steps = append(clone.Steps, &stepCopy)
	}

	for _, transition := range w.Transitions {
		transitionCopy := *transition
		clone.Transitions = append(clone.Transitions, &transitionCopy)
	}

	return clone
}
