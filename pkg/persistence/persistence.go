// Package persistence defines the local draft store: autosaved copies of
// in-progress edit sessions, kept until a successful backend save. The
// backend remains the system of record; drafts only protect unsaved work.
package persistence

import (
	"context"
	"time"

	"github.com/stepflowhq/stepflow/pkg/models"
)

// Draft is one autosaved working copy of a workflow document.
type Draft struct {
	ID         string               `json:"id"`
	WorkflowID string               `json:"workflow_id"`
	Data       *models.WorkflowData `json:"data"`
	SavedAt    time.Time            `json:"saved_at"`
}

// DraftRepository stores at most one draft per workflow id.
type DraftRepository interface {
	SaveDraft(ctx context.Context, draft *Draft) error
	DraftByWorkflow(ctx context.Context, workflowID string) (*Draft, error)
	DeleteDraft(ctx context.Context, workflowID string) error
	ListDrafts(ctx context.Context) ([]*Draft, error)
}

// Persistence is the storage entry point.
type Persistence interface {
	DraftRepository() DraftRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
