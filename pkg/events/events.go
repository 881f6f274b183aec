// Package events defines event types for editor session lifecycle
// notifications: graph mutations, history moves, and save outcomes.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/stepflowhq/stepflow/pkg/models"
)

// Topic carries all editor events.
const Topic = "stepflow.editor.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

type EventType string

const (
	StepAddedEvent          EventType = "step.added"
	StepUpdatedEvent        EventType = "step.updated"
	StepDeletedEvent        EventType = "step.deleted"
	TransitionAddedEvent    EventType = "transition.added"
	TransitionUpdatedEvent  EventType = "transition.updated"
	TransitionDeletedEvent  EventType = "transition.deleted"
	MetadataUpdatedEvent    EventType = "workflow.metadata.updated"
	HistoryMovedEvent       EventType = "workflow.history.moved"
	WorkflowSavedEvent      EventType = "workflow.saved"
	WorkflowSaveFailedEvent EventType = "workflow.save.failed"
)

type BaseEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	WorkflowID string    `json:"workflow_id"`
}

func NewBaseEvent(eventType EventType, workflowID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		WorkflowID: workflowID,
	}
}

func (e BaseEvent) GetType() EventType {
	return e.Type
}

type StepAdded struct {
	BaseEvent

	Step *models.Step `json:"step"`
}

type StepUpdated struct {
	BaseEvent

	Step *models.Step `json:"step"`
}

// StepDeleted records a cascade delete: the step plus every transition that
// referenced it, removed as one unit.
type StepDeleted struct {
	BaseEvent

	StepID             string   `json:"step_id"`
	RemovedTransitions []string `json:"removed_transitions"`
}

type TransitionAdded struct {
	BaseEvent

	Transition *models.Transition `json:"transition"`
}

type TransitionUpdated struct {
	BaseEvent

	Transition *models.Transition `json:"transition"`
}

type TransitionDeleted struct {
	BaseEvent

	TransitionID string `json:"transition_id"`
}

type MetadataUpdated struct {
	BaseEvent

	Name        string  `json:"name"`
	Description string  `json:"description"`
	TotalSLA    float64 `json:"total_sla"`
}

// HistoryMoved is published on undo and redo.
type HistoryMoved struct {
	BaseEvent

	Cursor int    `json:"cursor"`
	Move   string `json:"move"` // "undo" or "redo"
}

type WorkflowSaved struct {
	BaseEvent

	TempIDMapping map[string]string `json:"temp_id_mapping,omitempty"`
}

type WorkflowSaveFailed struct {
	BaseEvent

	Reason string `json:"reason"`
}
