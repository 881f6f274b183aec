// Package file provides file-based draft persistence: one JSON document
// per workflow id under the configured root directory.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/stepflowhq/stepflow/pkg/persistence"
)

const draftsDir = "drafts"

// Persistence implements the persistence.Persistence interface using the
// file system.
type Persistence struct {
	root      string
	draftRepo *DraftRepository
}

// NewPersistence creates a file persistence rooted at the given directory.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:      cleanRoot,
		draftRepo: NewDraftRepository(cleanRoot),
	}
}

// Close performs any necessary cleanup. For file-based persistence, there
// is nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (fp *Persistence) DraftRepository() persistence.DraftRepository {
	return fp.draftRepo
}

// DraftRepository stores drafts as JSON files named by workflow id.
type DraftRepository struct {
	root string
}

func NewDraftRepository(root string) *DraftRepository {
	return &DraftRepository{root: root}
}

func (r *DraftRepository) dir() string {
	return filepath.Join(r.root, draftsDir)
}

func (r *DraftRepository) path(workflowID string) string {
	return filepath.Join(r.dir(), workflowID+".json")
}

// SaveDraft writes the draft atomically: the JSON is written to a temp
// file and renamed over the previous draft.
func (r *DraftRepository) SaveDraft(_ context.Context, draft *persistence.Draft) error {
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}

	if err := os.MkdirAll(r.dir(), 0o755); err != nil {
		return persistence.NewDraftError("SaveDraft", draft.WorkflowID, err)
	}

	payload, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return persistence.NewDraftError("SaveDraft", draft.WorkflowID, err)
	}

	tmp, err := os.CreateTemp(r.dir(), "draft-*.tmp")
	if err != nil {
		return persistence.NewDraftError("SaveDraft", draft.WorkflowID, err)
	}

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return persistence.NewDraftError("SaveDraft", draft.WorkflowID, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return persistence.NewDraftError("SaveDraft", draft.WorkflowID, err)
	}

	if err := os.Rename(tmp.Name(), r.path(draft.WorkflowID)); err != nil {
		_ = os.Remove(tmp.Name())

		return persistence.NewDraftError("SaveDraft", draft.WorkflowID, err)
	}

	return nil
}

func (r *DraftRepository) DraftByWorkflow(_ context.Context, workflowID string) (*persistence.Draft, error) {
	payload, err := os.ReadFile(r.path(workflowID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.NewDraftError("DraftByWorkflow", workflowID, persistence.ErrDraftNotFound)
		}

		return nil, persistence.NewDraftError("DraftByWorkflow", workflowID, err)
	}

	var draft persistence.Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, persistence.NewDraftError("DraftByWorkflow", workflowID, fmt.Errorf("%w: %w", persistence.ErrDraftCorrupted, err))
	}

	return &draft, nil
}

func (r *DraftRepository) DeleteDraft(_ context.Context, workflowID string) error {
	err := os.Remove(r.path(workflowID))
	if err != nil {
		if os.IsNotExist(err) {
			return persistence.NewDraftError("DeleteDraft", workflowID, persistence.ErrDraftNotFound)
		}

		return persistence.NewDraftError("DeleteDraft", workflowID, err)
	}

	return nil
}

func (r *DraftRepository) ListDrafts(ctx context.Context) ([]*persistence.Draft, error) {
	entries, err := os.ReadDir(r.dir())
	if err != nil {
		if os.IsNotExist(err) {
			return []*persistence.Draft{}, nil
		}

		return nil, persistence.NewDraftError("ListDrafts", "", err)
	}

	drafts := make([]*persistence.Draft, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		workflowID := strings.TrimSuffix(entry.Name(), ".json")

		draft, err := r.DraftByWorkflow(ctx, workflowID)
		if err != nil {
			// Skip undecodable drafts instead of failing the listing.
			if persistence.IsDraftCorrupted(err) {
				continue
			}

			return nil, err
		}

		drafts = append(drafts, draft)
	}

	return drafts, nil
}
