package session

import (
	"fmt"

	"github.com/stepflowhq/stepflow/pkg/events"
	"github.com/stepflowhq/stepflow/pkg/models"
	"github.com/stepflowhq/stepflow/pkg/validation"
)

// AddStep adds a step to the document. An empty id gets a fresh temporary
// id; the backend exchanges it for a persisted one on save.
func (s *Session) AddStep(step *models.Step) (*models.Step, error) {
	added := *step

	if added.ID == "" {
		added.ID = models.NewTempID()
	}

	if err := s.validate.Struct(&added); err != nil {
		return nil, &MutationError{Op: "AddStep", ID: added.ID, Err: err}
	}

	err := s.mutate(func(data *models.WorkflowData) error {
		if data.StepByID(added.ID) != nil {
			return &MutationError{Op: "AddStep", ID: added.ID, Err: ErrStepExists}
		}

		stepCopy := added
		data.Steps = append(data.Steps, &stepCopy)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(&events.StepAdded{
		BaseEvent: events.NewBaseEvent(events.StepAddedEvent, s.workflowID),
		Step:      &added,
	})

	return &added, nil
}

// UpdateStep replaces an existing step's fields in place.
func (s *Session) UpdateStep(step *models.Step) error {
	if err := s.validate.Struct(step); err != nil {
		return &MutationError{Op: "UpdateStep", ID: step.ID, Err: err}
	}

	err := s.mutate(func(data *models.WorkflowData) error {
		existing := data.StepByID(step.ID)
		if existing == nil {
			return &MutationError{Op: "UpdateStep", ID: step.ID, Err: ErrStepNotFound}
		}

		*existing = *step

		return nil
	})
	if err != nil {
		return err
	}

	s.publish(&events.StepUpdated{
		BaseEvent: events.NewBaseEvent(events.StepUpdatedEvent, s.workflowID),
		Step:      step,
	})

	return nil
}

// DeleteStep removes a step and every transition referencing it as source
// or target, as one atomic snapshot: a single undo restores both. The
// confirmation gate runs first; a declined confirmation changes nothing.
func (s *Session) DeleteStep(id string) error {
	if s.hist.current().StepByID(id) == nil {
		return &MutationError{Op: "DeleteStep", ID: id, Err: ErrStepNotFound}
	}

	if !s.confirmed("delete step", id) {
		return ErrDeleteNotConfirmed
	}

	var removed []string

	err := s.mutate(func(data *models.WorkflowData) error {
		steps := make([]*models.Step, 0, len(data.Steps))

		for _, step := range data.Steps {
			if step.ID != id {
				steps = append(steps, step)
			}
		}

		transitions := make([]*models.Transition, 0, len(data.Transitions))

		for _, transition := range data.Transitions {
			if transition.Source == id || transition.Target == id {
				removed = append(removed, transition.ID)

				continue
			}

			transitions = append(transitions, transition)
		}

		data.Steps = steps
		data.Transitions = transitions

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("Deleted step with cascade", "step_id", id, "removed_transitions", len(removed))

	s.publish(&events.StepDeleted{
		BaseEvent:          events.NewBaseEvent(events.StepDeletedEvent, s.workflowID),
		StepID:             id,
		RemovedTransitions: removed,
	})

	return nil
}

// AddTransition connects two step handles. The connection is validated
// against the current snapshot; an invalid connection is rejected with a
// ConnectionError carrying the structured result.
func (s *Session) AddTransition(transition *models.Transition) (*models.Transition, error) {
	added := *transition

	if added.ID == "" {
		added.ID = models.NewTempID()
	}

	err := s.mutate(func(data *models.WorkflowData) error {
		if data.TransitionByID(added.ID) != nil {
			return &MutationError{Op: "AddTransition", ID: added.ID, Err: ErrTransitionExists}
		}

		result := validation.ValidateConnection(validation.Connection{
			Source:       added.Source,
			Target:       added.Target,
			SourceHandle: added.SourceHandle,
			TargetHandle: added.TargetHandle,
		}, validation.Context{
			Steps:       data.Steps,
			Transitions: data.Transitions,
			Resolver:    s.resolver,
		}, s.opts)

		if !result.IsValid {
			return &ConnectionError{Result: result}
		}

		transitionCopy := added
		data.Transitions = append(data.Transitions, &transitionCopy)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(&events.TransitionAdded{
		BaseEvent:  events.NewBaseEvent(events.TransitionAddedEvent, s.workflowID),
		Transition: &added,
	})

	return &added, nil
}

// UpdateTransition replaces an existing transition after re-validating the
// connection. The transition itself is excluded from the duplicate and
// cardinality context.
func (s *Session) UpdateTransition(transition *models.Transition) error {
	err := s.mutate(func(data *models.WorkflowData) error {
		existing := data.TransitionByID(transition.ID)
		if existing == nil {
			return &MutationError{Op: "UpdateTransition", ID: transition.ID, Err: ErrTransitionNotFound}
		}

		others := make([]*models.Transition, 0, len(data.Transitions)-1)

		for _, sibling := range data.Transitions {
			if sibling.ID != transition.ID {
				others = append(others, sibling)
			}
		}

		result := validation.ValidateConnection(validation.Connection{
			Source:       transition.Source,
			Target:       transition.Target,
			SourceHandle: transition.SourceHandle,
			TargetHandle: transition.TargetHandle,
		}, validation.Context{
			Steps:       data.Steps,
			Transitions: others,
			Resolver:    s.resolver,
		}, s.opts)

		if !result.IsValid {
			return &ConnectionError{Result: result}
		}

		*existing = *transition

		return nil
	})
	if err != nil {
		return err
	}

	s.publish(&events.TransitionUpdated{
		BaseEvent:  events.NewBaseEvent(events.TransitionUpdatedEvent, s.workflowID),
		Transition: transition,
	})

	return nil
}

// DeleteTransition removes one transition, behind the confirmation gate.
func (s *Session) DeleteTransition(id string) error {
	if s.hist.current().TransitionByID(id) == nil {
		return &MutationError{Op: "DeleteTransition", ID: id, Err: ErrTransitionNotFound}
	}

	if !s.confirmed("delete transition", id) {
		return ErrDeleteNotConfirmed
	}

	err := s.mutate(func(data *models.WorkflowData) error {
		transitions := make([]*models.Transition, 0, len(data.Transitions))

		for _, transition := range data.Transitions {
			if transition.ID != id {
				transitions = append(transitions, transition)
			}
		}

		data.Transitions = transitions

		return nil
	})
	if err != nil {
		return err
	}

	s.publish(&events.TransitionDeleted{
		BaseEvent:    events.NewBaseEvent(events.TransitionDeletedEvent, s.workflowID),
		TransitionID: id,
	})

	return nil
}

// UpdateMetadata edits the workflow header fields.
func (s *Session) UpdateMetadata(name, description string, totalSLA float64) error {
	if totalSLA < 0 {
		return &MutationError{Op: "UpdateMetadata", Err: fmt.Errorf("total SLA must be non-negative, got %v", totalSLA)}
	}

	err := s.mutate(func(data *models.WorkflowData) error {
		data.Name = name
		data.Description = description
		data.TotalSLA = totalSLA

		if err := s.validate.StructPartial(data, "Name", "TotalSLA"); err != nil {
			return &MutationError{Op: "UpdateMetadata", Err: err}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.publish(&events.MetadataUpdated{
		BaseEvent:   events.NewBaseEvent(events.MetadataUpdatedEvent, s.workflowID),
		Name:        name,
		Description: description,
		TotalSLA:    totalSLA,
	})

	return nil
}

// SetStepWeight changes one step's SLA weight, redistributing every step's
// effective allocation without touching the stored total SLA.
func (s *Session) SetStepWeight(id string, weight int) error {
	if weight < 1 || weight > 10 {
		return &MutationError{Op: "SetStepWeight", ID: id, Err: ErrInvalidWeight}
	}

	var updated models.Step

	err := s.mutate(func(data *models.WorkflowData) error {
		step := data.StepByID(id)
		if step == nil {
			return &MutationError{Op: "SetStepWeight", ID: id, Err: ErrStepNotFound}
		}

		step.SLAWeight = weight
		updated = *step

		return nil
	})
	if err != nil {
		return err
	}

	s.publish(&events.StepUpdated{
		BaseEvent: events.NewBaseEvent(events.StepUpdatedEvent, s.workflowID),
		Step:      &updated,
	})

	return nil
}
