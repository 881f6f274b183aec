package session

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"github.com/stepflowhq/stepflow/pkg/eventbus"
	"github.com/stepflowhq/stepflow/pkg/events"
	"github.com/stepflowhq/stepflow/pkg/handles"
	"github.com/stepflowhq/stepflow/pkg/models"
	"github.com/stepflowhq/stepflow/pkg/validation"
)

// ConfirmFunc gates destructive deletes. It receives the action name and
// the target id and returns whether the user confirmed. A nil ConfirmFunc
// confirms everything; embedders wire their own prompt.
type ConfirmFunc func(action, id string) bool

// Config wires a session's collaborators. Zero values get sensible
// defaults; Client and Bus are optional.
type Config struct {
	Resolver   handles.Resolver
	Validation validation.Options
	Client     Client
	Bus        eventbus.EventBus
	Confirm    ConfirmFunc
	Logger     *slog.Logger
}

// Session is the edit session over one workflow document. It owns the
// canonical snapshot, the bounded undo/redo history, and the save state.
// A session is meant for one editing goroutine; only the save in-flight
// flag is safe against concurrent use.
type Session struct {
	workflowID string
	hist       history
	resolver   handles.Resolver
	opts       validation.Options
	client     Client
	bus        eventbus.EventBus
	confirm    ConfirmFunc
	logger     *slog.Logger
	validate   *validator.Validate
	saving     atomic.Bool
}

// New opens a session over a deep copy of the given document, so the
// caller's value is never aliased by history.
func New(workflowID string, data *models.WorkflowData, cfg Config) *Session {
	if cfg.Resolver == nil {
		cfg.Resolver = handles.NewDefaultResolver()
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Session{
		workflowID: workflowID,
		hist:       newHistory(data.Clone()),
		resolver:   cfg.Resolver,
		opts:       cfg.Validation,
		client:     cfg.Client,
		bus:        cfg.Bus,
		confirm:    cfg.Confirm,
		logger:     cfg.Logger.With("workflow_id", workflowID),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// WorkflowID returns the backend id of the edited workflow.
func (s *Session) WorkflowID() string {
	return s.workflowID
}

// Data returns the current snapshot. Treat it as read-only; all mutations
// go through the session commands.
func (s *Session) Data() *models.WorkflowData {
	return s.hist.current()
}

// Dirty reports whether the current snapshot differs from the last saved one.
func (s *Session) Dirty() bool {
	return s.hist.dirty()
}

// HistoryLength returns the number of retained snapshots.
func (s *Session) HistoryLength() int {
	return s.hist.length()
}

func (s *Session) CanUndo() bool {
	return s.hist.canUndo()
}

func (s *Session) CanRedo() bool {
	return s.hist.canRedo()
}

// Undo moves the cursor one snapshot back. Undo past the oldest retained
// snapshot is a no-op.
func (s *Session) Undo() bool {
	if !s.hist.undo() {
		return false
	}

	s.publishHistoryMove("undo")

	return true
}

// Redo moves the cursor one snapshot forward.
func (s *Session) Redo() bool {
	if !s.hist.redo() {
		return false
	}

	s.publishHistoryMove("redo")

	return true
}

// Readiness runs the whole-document save-readiness check on the current
// snapshot.
func (s *Session) Readiness() validation.ReadinessReport {
	return validation.CheckSaveReadiness(s.hist.current(), s.resolver, s.opts)
}

// mutate applies one command: clone the current snapshot, run the mutation,
// and push the result as a new history entry. A mutation error leaves the
// history untouched.
func (s *Session) mutate(fn func(data *models.WorkflowData) error) error {
	next := s.hist.current().Clone()

	if err := fn(next); err != nil {
		return err
	}

	s.hist.push(next)

	return nil
}

// confirmed runs the confirmation gate for a destructive action.
func (s *Session) confirmed(action, id string) bool {
	if s.confirm == nil {
		return true
	}

	return s.confirm(action, id)
}

func (s *Session) publish(event eventbus.Event) {
	if s.bus == nil {
		return
	}

	if err := s.bus.Publish(context.Background(), s.workflowID, event); err != nil {
		s.logger.Warn("Failed to publish editor event", "event_type", event.GetType(), "error", err)
	}
}

func (s *Session) publishHistoryMove(move string) {
	s.publish(&events.HistoryMoved{
		BaseEvent: events.NewBaseEvent(events.HistoryMovedEvent, s.workflowID),
		Cursor:    s.hist.cursor,
		Move:      move,
	})
}
