package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/stepflowhq/stepflow/pkg/eventbus"
	"github.com/stepflowhq/stepflow/pkg/events"
	"github.com/stepflowhq/stepflow/pkg/models"
	"github.com/stepflowhq/stepflow/pkg/persistence"
)

// Autosaver persists a local draft after every session mutation and drops
// it once a backend save succeeds, so unsaved work survives an editor
// crash. It rides the editor event bus; the session itself stays unaware
// of draft storage.
type Autosaver struct {
	session *Session
	drafts  persistence.DraftRepository
	logger  *slog.Logger
}

func NewAutosaver(session *Session, drafts persistence.DraftRepository, logger *slog.Logger) *Autosaver {
	if logger == nil {
		logger = slog.Default()
	}

	return &Autosaver{
		session: session,
		drafts:  drafts,
		logger:  logger.With("workflow_id", session.WorkflowID()),
	}
}

// mutationEvents lists every event type that changes the document.
var mutationEvents = []events.EventType{
	events.StepAddedEvent,
	events.StepUpdatedEvent,
	events.StepDeletedEvent,
	events.TransitionAddedEvent,
	events.TransitionUpdatedEvent,
	events.TransitionDeletedEvent,
	events.MetadataUpdatedEvent,
	events.HistoryMovedEvent,
}

// Attach registers the autosave handlers on the bus. Call before the bus
// subscription starts.
func (a *Autosaver) Attach(bus eventbus.EventBus) error {
	for _, eventType := range mutationEvents {
		if err := bus.Handle(eventType, a.handleMutation); err != nil {
			return err
		}
	}

	return bus.Handle(events.WorkflowSavedEvent, a.handleSaved)
}

func (a *Autosaver) handleMutation(ctx context.Context, _ interface{}) error {
	draft := &persistence.Draft{
		WorkflowID: a.session.WorkflowID(),
		Data:       a.session.Data().Clone(),
		SavedAt:    time.Now().UTC(),
	}

	if err := a.drafts.SaveDraft(ctx, draft); err != nil {
		a.logger.Warn("Autosave failed", "error", err)

		return err
	}

	return nil
}

func (a *Autosaver) handleSaved(ctx context.Context, _ interface{}) error {
	err := a.drafts.DeleteDraft(ctx, a.session.WorkflowID())
	if err != nil && !persistence.IsDraftNotFound(err) {
		a.logger.Warn("Failed to drop draft after save", "error", err)

		return err
	}

	return nil
}

// Restore loads the autosaved draft for a workflow, if any.
func Restore(ctx context.Context, drafts persistence.DraftRepository, workflowID string) (*models.WorkflowData, error) {
	draft, err := drafts.DraftByWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	return draft.Data, nil
}
