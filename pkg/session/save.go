package session

import (
	"context"
	"fmt"

	"github.com/stepflowhq/stepflow/pkg/events"
	"github.com/stepflowhq/stepflow/pkg/log"
	"github.com/stepflowhq/stepflow/pkg/models"
)

// Client is the outbound boundary to the workflow backend: the session
// pushes the current graph and receives the temp-id reconciliation mapping.
type Client interface {
	UpdateGraph(ctx context.Context, workflowID string, req models.UpdateGraphRequest) (*models.UpdateGraphResponse, error)
}

// Save pushes the current snapshot to the backend. The save is the only
// suspension point of the session: while one save is in flight, further
// Save calls fail with ErrSaveInFlight. On success the backend's
// temp_id_mapping is applied to the snapshot and the session becomes
// Clean; on failure the Dirty snapshot stays intact for retry.
func (s *Session) Save(ctx context.Context) error {
	if s.client == nil {
		return ErrNoClient
	}

	if !s.saving.CompareAndSwap(false, true) {
		return ErrSaveInFlight
	}
	defer s.saving.Store(false)

	report := s.Readiness()
	if !report.Ready {
		return &NotReadyError{Report: report}
	}

	current := s.hist.current()

	ctx = log.WithLogger(ctx, s.logger)

	resp, err := s.client.UpdateGraph(ctx, s.workflowID, models.UpdateGraphRequest{
		Nodes: current.Steps,
		Edges: current.Transitions,
	})
	if err != nil {
		s.logger.Error("Save failed", "error", err)

		s.publish(&events.WorkflowSaveFailed{
			BaseEvent: events.NewBaseEvent(events.WorkflowSaveFailedEvent, s.workflowID),
			Reason:    err.Error(),
		})

		return fmt.Errorf("save workflow %s: %w", s.workflowID, err)
	}

	if resp != nil && len(resp.TempIDMapping) > 0 {
		reconciled := current.Clone()
		remapIDs(reconciled, resp.TempIDMapping)
		s.hist.replaceCurrent(reconciled)
	}

	s.hist.markSaved()

	var mapping map[string]string
	if resp != nil {
		mapping = resp.TempIDMapping
	}

	s.publish(&events.WorkflowSaved{
		BaseEvent:     events.NewBaseEvent(events.WorkflowSavedEvent, s.workflowID),
		TempIDMapping: mapping,
	})

	return nil
}

// Saving reports whether a save is currently in flight.
func (s *Session) Saving() bool {
	return s.saving.Load()
}

// remapIDs rewrites temporary ids to their persisted counterparts across
// steps, transitions, and transition endpoints.
func remapIDs(data *models.WorkflowData, mapping map[string]string) {
	resolve := func(id string) string {
		if persisted, ok := mapping[id]; ok {
			return persisted
		}

		return id
	}

	for _, step := range data.Steps {
		step.ID = resolve(step.ID)
	}

	for _, transition := range data.Transitions {
		transition.ID = resolve(transition.ID)
		transition.Source = resolve(transition.Source)
		transition.Target = resolve(transition.Target)
	}
}
