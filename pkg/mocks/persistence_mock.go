package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stepflowhq/stepflow/pkg/persistence"
)

// MockDraftRepository is a mock implementation of the
// persistence.DraftRepository interface.
type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) SaveDraft(ctx context.Context, draft *persistence.Draft) error {
	args := m.Called(ctx, draft)

	return args.Error(0)
}

func (m *MockDraftRepository) DraftByWorkflow(ctx context.Context, workflowID string) (*persistence.Draft, error) {
	args := m.Called(ctx, workflowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*persistence.Draft), args.Error(1)
}

func (m *MockDraftRepository) DeleteDraft(ctx context.Context, workflowID string) error {
	args := m.Called(ctx, workflowID)

	return args.Error(0)
}

func (m *MockDraftRepository) ListDrafts(ctx context.Context) ([]*persistence.Draft, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*persistence.Draft), args.Error(1)
}
