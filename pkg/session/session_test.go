package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepflowhq/stepflow/pkg/models"
)

func testDocument() *models.WorkflowData {
	return &models.WorkflowData{
		Name:     "Purchase Approval",
		TotalSLA: 48,
		Steps: []*models.Step{
			{ID: "1", Name: "Submit", Role: "Employee", IsStart: true},
			{ID: "2", Name: "Review", Role: "Manager"},
			{ID: "3", Name: "Done", Role: "Manager", IsEnd: true},
		},
		Transitions: []*models.Transition{
			{ID: "t1", Source: "1", Target: "2"},
			{ID: "t2", Source: "2", Target: "3"},
			{ID: "t3", Source: "2", Target: "1"},
		},
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()

	return New("wf-1", testDocument(), Config{})
}

func TestNew_ClonesInitialDocument(t *testing.T) {
	doc := testDocument()
	s := New("wf-1", doc, Config{})

	doc.Steps[0].Name = "Mutated Outside"

	assert.Equal(t, "Submit", s.Data().StepByID("1").Name)
	assert.False(t, s.Dirty())
}

func TestAddStep_GeneratesTempID(t *testing.T) {
	s := newTestSession(t)

	added, err := s.AddStep(&models.Step{Name: "Extra", Role: "Clerk"})
	require.NoError(t, err)

	assert.True(t, models.IsTempID(added.ID))
	assert.NotNil(t, s.Data().StepByID(added.ID))
	assert.True(t, s.Dirty())
}

func TestAddStep_RejectsMissingRole(t *testing.T) {
	s := newTestSession(t)

	_, err := s.AddStep(&models.Step{Name: "No Role"})
	require.Error(t, err)

	assert.Len(t, s.Data().Steps, 3, "rejected mutation must be a no-op")
	assert.False(t, s.Dirty())
}

func TestAddStep_RejectsDuplicateID(t *testing.T) {
	s := newTestSession(t)

	_, err := s.AddStep(&models.Step{ID: "1", Name: "Clash", Role: "Clerk"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStepExists)
}

func TestUpdateStep_MissingStep(t *testing.T) {
	s := newTestSession(t)

	err := s.UpdateStep(&models.Step{ID: "nope", Name: "X", Role: "r"})
	assert.True(t, IsStepNotFound(err))
}

func TestDeleteStep_CascadesTransitions(t *testing.T) {
	s := newTestSession(t)

	// Step 2 is referenced by all three transitions.
	require.NoError(t, s.DeleteStep("2"))

	data := s.Data()
	assert.Nil(t, data.StepByID("2"))
	assert.Empty(t, data.Transitions)
}

func TestDeleteStep_CascadeIsOneUndoUnit(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.DeleteStep("2"))
	require.True(t, s.Undo())

	data := s.Data()
	assert.NotNil(t, data.StepByID("2"))
	assert.Len(t, data.Transitions, 3, "one undo restores the step and its transitions")
}

func TestDeleteStep_ConfirmationDeclined(t *testing.T) {
	s := New("wf-1", testDocument(), Config{
		Confirm: func(action, id string) bool { return false },
	})

	err := s.DeleteStep("2")
	assert.True(t, IsNotConfirmed(err))
	assert.Len(t, s.Data().Steps, 3)
	assert.False(t, s.Dirty())
}

func TestAddTransition_ValidConnection(t *testing.T) {
	s := newTestSession(t)

	added, err := s.AddTransition(&models.Transition{Source: "1", Target: "3"})
	require.NoError(t, err)

	assert.True(t, models.IsTempID(added.ID))
	assert.NotNil(t, s.Data().TransitionByID(added.ID))
}

func TestAddTransition_SelfLoopRejected(t *testing.T) {
	s := newTestSession(t)

	_, err := s.AddTransition(&models.Transition{Source: "2", Target: "2"})
	require.Error(t, err)

	connErr, ok := IsConnectionError(err)
	require.True(t, ok)
	assert.True(t, connErr.Result.HasCode(models.CodeSelfLoop))
	assert.Len(t, s.Data().Transitions, 3)
}

func TestAddTransition_DuplicateRejected(t *testing.T) {
	s := newTestSession(t)

	_, err := s.AddTransition(&models.Transition{Source: "1", Target: "2"})
	require.Error(t, err)

	connErr, ok := IsConnectionError(err)
	require.True(t, ok)
	assert.True(t, connErr.Result.HasCode(models.CodeDuplicateEdge))
}

func TestUpdateTransition_ExcludesItselfFromDuplicateCheck(t *testing.T) {
	s := newTestSession(t)

	// Renaming t1 without changing endpoints must not collide with itself.
	err := s.UpdateTransition(&models.Transition{ID: "t1", Source: "1", Target: "2", Name: "renamed"})
	require.NoError(t, err)

	assert.Equal(t, "renamed", s.Data().TransitionByID("t1").Name)
}

func TestDeleteTransition(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.DeleteTransition("t3"))
	assert.Nil(t, s.Data().TransitionByID("t3"))
	assert.Len(t, s.Data().Transitions, 2)
}

func TestUpdateMetadata(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.UpdateMetadata("New Name", "desc", 72))

	data := s.Data()
	assert.Equal(t, "New Name", data.Name)
	assert.InDelta(t, 72.0, data.TotalSLA, 0.001)
}

func TestUpdateMetadata_NegativeSLARejected(t *testing.T) {
	s := newTestSession(t)

	err := s.UpdateMetadata("New Name", "", -1)
	require.Error(t, err)
	assert.InDelta(t, 48.0, s.Data().TotalSLA, 0.001)
}

func TestSLAAllocations_WeightedSplit(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.SetStepWeight("2", 2))

	allocations := s.SLAAllocations()
	assert.InDelta(t, 12.0, allocations["1"], 0.001)
	assert.InDelta(t, 24.0, allocations["2"], 0.001)
	assert.InDelta(t, 12.0, allocations["3"], 0.001)
}

func TestSetStepWeight_OutOfRange(t *testing.T) {
	s := newTestSession(t)

	assert.ErrorIs(t, s.SetStepWeight("2", 0), ErrInvalidWeight)
	assert.ErrorIs(t, s.SetStepWeight("2", 11), ErrInvalidWeight)
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	s := newTestSession(t)

	_, err := s.AddStep(&models.Step{Name: "Extra", Role: "Clerk"})
	require.NoError(t, err)
	require.Len(t, s.Data().Steps, 4)

	require.True(t, s.Undo())
	assert.Len(t, s.Data().Steps, 3)
	assert.False(t, s.Dirty())

	require.True(t, s.Redo())
	assert.Len(t, s.Data().Steps, 4)
	assert.True(t, s.Dirty())
}

func TestUndo_AtOldestIsNoOp(t *testing.T) {
	s := newTestSession(t)

	assert.False(t, s.Undo())
}

func TestRedo_TruncatedByNewEdit(t *testing.T) {
	s := newTestSession(t)

	_, err := s.AddStep(&models.Step{Name: "First", Role: "Clerk"})
	require.NoError(t, err)
	require.True(t, s.Undo())

	_, err = s.AddStep(&models.Step{Name: "Second", Role: "Clerk"})
	require.NoError(t, err)

	assert.False(t, s.CanRedo(), "a fresh edit overwrites the old future")
}

func TestHistory_BoundedAtFiftySnapshots(t *testing.T) {
	s := newTestSession(t)

	for i := 0; i < MaxHistory+10; i++ {
		require.NoError(t, s.SetStepWeight("2", 1+i%10))
	}

	assert.Equal(t, MaxHistory, s.HistoryLength())

	undos := 0
	for s.Undo() {
		undos++
	}

	assert.Equal(t, MaxHistory-1, undos, "undo stops at the oldest retained snapshot")
	assert.True(t, s.Dirty(), "the clean baseline fell out of the bounded history")
}

func TestMutationsDoNotLeakIntoHistory(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.SetStepWeight("2", 5))
	before := s.Data().StepByID("2").SLAWeight

	require.NoError(t, s.SetStepWeight("2", 9))
	require.True(t, s.Undo())

	assert.Equal(t, before, s.Data().StepByID("2").SLAWeight)
}

func TestReadiness_FlagsSecondStart(t *testing.T) {
	s := newTestSession(t)

	step := *s.Data().StepByID("2")
	step.IsStart = true
	require.NoError(t, s.UpdateStep(&step))

	report := s.Readiness()
	assert.False(t, report.Ready)
}

func TestSessionCommands_ManySequentialEdits(t *testing.T) {
	s := newTestSession(t)

	for i := 0; i < 5; i++ {
		_, err := s.AddStep(&models.Step{Name: fmt.Sprintf("Step %d", i), Role: "Clerk"})
		require.NoError(t, err)
	}

	assert.Len(t, s.Data().Steps, 8)
	assert.Equal(t, 6, s.HistoryLength())
}
