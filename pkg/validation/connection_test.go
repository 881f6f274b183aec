package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepflowhq/stepflow/pkg/handles"
	"github.com/stepflowhq/stepflow/pkg/models"
)

func twoStepContext() Context {
	return Context{
		Steps: []*models.Step{
			{ID: "1", Name: "Submit", Role: "Employee", IsStart: true},
			{ID: "2", Name: "Approve", Role: "Manager", IsEnd: true},
		},
		Transitions: []*models.Transition{},
		Resolver:    handles.NewDefaultResolver(),
	}
}

func TestValidateConnection_SimpleValid(t *testing.T) {
	result := ValidateConnection(Connection{Source: "1", Target: "2"}, twoStepContext(), Options{})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidateConnection_SourceNotFound(t *testing.T) {
	result := ValidateConnection(Connection{Source: "missing", Target: "2"}, twoStepContext(), Options{})

	require.False(t, result.IsValid)
	assert.True(t, result.HasCode(models.CodeSourceNotFound))
}

func TestValidateConnection_BothEndpointsMissing(t *testing.T) {
	result := ValidateConnection(Connection{Source: "a", Target: "b"}, twoStepContext(), Options{})

	require.False(t, result.IsValid)
	assert.True(t, result.HasCode(models.CodeSourceNotFound))
	assert.True(t, result.HasCode(models.CodeTargetNotFound))
}

func TestValidateConnection_SelfLoopRejected(t *testing.T) {
	graph := twoStepContext()
	graph.Steps[0].IsStart = false // give step 1 an input handle too

	result := ValidateConnection(Connection{Source: "1", Target: "1"}, graph, Options{})

	require.False(t, result.IsValid)
	assert.True(t, result.HasCode(models.CodeSelfLoop))
}

func TestValidateConnection_SelfLoopAllowedByOption(t *testing.T) {
	graph := twoStepContext()
	graph.Steps[0].IsStart = false

	result := ValidateConnection(Connection{Source: "1", Target: "1"}, graph, Options{AllowSelfLoops: true})

	assert.True(t, result.IsValid)
}

func TestValidateConnection_HandleNotFound(t *testing.T) {
	result := ValidateConnection(Connection{
		Source:       "1",
		Target:       "2",
		SourceHandle: "no-such-handle",
	}, twoStepContext(), Options{})

	require.False(t, result.IsValid)
	assert.True(t, result.HasCode(models.CodeHandleNotFound))
}

func TestValidateConnection_NoOutputHandleOnEndStep(t *testing.T) {
	graph := twoStepContext()

	// Step 2 is an end step, so the default schema gives it no output handle.
	result := ValidateConnection(Connection{Source: "2", Target: "1"}, graph, Options{})

	require.False(t, result.IsValid)
	assert.True(t, result.HasCode(models.CodeHandleNotFound))
}

func TestValidateConnection_DirectionEnforced(t *testing.T) {
	graph := Context{
		Steps: []*models.Step{
			{ID: "1", Name: "A", Role: "r"},
			{ID: "2", Name: "B", Role: "r"},
		},
		Resolver: handles.NewDefaultResolver(),
	}

	// Source names the input handle, target names the output handle.
	result := ValidateConnection(Connection{
		Source:       "1",
		Target:       "2",
		SourceHandle: handles.DefaultInputID,
		TargetHandle: handles.DefaultOutputID,
	}, graph, Options{})

	require.False(t, result.IsValid)
	assert.True(t, result.HasCode(models.CodeInvalidSourceHandle))
	assert.True(t, result.HasCode(models.CodeInvalidTargetHandle))
	assert.True(t, result.HasCode(models.CodeWrongDirection))
}

func TestValidateConnection_SameTypeConnection(t *testing.T) {
	graph := Context{
		Steps: []*models.Step{
			{ID: "1", Name: "A", Role: "r"},
			{ID: "2", Name: "B", Role: "r"},
		},
		Resolver: handles.NewDefaultResolver(),
	}

	result := ValidateConnection(Connection{
		Source:       "1",
		Target:       "2",
		SourceHandle: handles.DefaultOutputID,
		TargetHandle: handles.DefaultOutputID,
	}, graph, Options{})

	require.False(t, result.IsValid)
	assert.True(t, result.HasCode(models.CodeInvalidTargetHandle))
	assert.True(t, result.HasCode(models.CodeSameTypeConnection))
	assert.False(t, result.HasCode(models.CodeInvalidSourceHandle))
}

func TestValidateConnection_DuplicateEdge(t *testing.T) {
	graph := twoStepContext()
	graph.Transitions = []*models.Transition{
		{ID: "t1", Source: "1", Target: "2"},
	}

	result := ValidateConnection(Connection{Source: "1", Target: "2"}, graph, Options{})

	require.False(t, result.IsValid)
	assert.True(t, result.HasCode(models.CodeDuplicateEdge))
}

func TestValidateConnection_DuplicateMatchesResolvedDefaultHandles(t *testing.T) {
	graph := twoStepContext()
	graph.Transitions = []*models.Transition{
		{ID: "t1", Source: "1", Target: "2"}, // implicit default handles
	}

	result := ValidateConnection(Connection{
		Source:       "1",
		Target:       "2",
		SourceHandle: handles.DefaultOutputID,
		TargetHandle: handles.DefaultInputID,
	}, graph, Options{})

	require.False(t, result.IsValid)
	assert.True(t, result.HasCode(models.CodeDuplicateEdge))
}

func TestValidateConnection_CardinalityExceeded(t *testing.T) {
	schemas := map[string][]models.Handle{
		"2": {
			{ID: "in", Type: models.HandleTypeInput, Position: models.HandlePositionTop, MaxConnections: 1},
		},
	}
	resolver := handles.NewSchemaResolver(schemas, handles.NewDefaultResolver())

	graph := Context{
		Steps: []*models.Step{
			{ID: "1", Name: "A", Role: "r", IsStart: true},
			{ID: "2", Name: "B", Role: "r", IsEnd: true},
			{ID: "3", Name: "C", Role: "r"},
		},
		Transitions: []*models.Transition{
			{ID: "t1", Source: "1", Target: "2"},
		},
		Resolver: resolver,
	}

	result := ValidateConnection(Connection{Source: "3", Target: "2"}, graph, Options{})

	require.False(t, result.IsValid)
	assert.True(t, result.HasCode(models.CodeCardinalityExceeded))
}

func TestValidateConnection_CardinalityAllowsUpToLimit(t *testing.T) {
	schemas := map[string][]models.Handle{
		"2": {
			{ID: "in", Type: models.HandleTypeInput, Position: models.HandlePositionTop, MaxConnections: 2},
		},
	}
	resolver := handles.NewSchemaResolver(schemas, handles.NewDefaultResolver())

	graph := Context{
		Steps: []*models.Step{
			{ID: "1", Name: "A", Role: "r", IsStart: true},
			{ID: "2", Name: "B", Role: "r", IsEnd: true},
			{ID: "3", Name: "C", Role: "r"},
		},
		Transitions: []*models.Transition{
			{ID: "t1", Source: "1", Target: "2"},
		},
		Resolver: resolver,
	}

	result := ValidateConnection(Connection{Source: "3", Target: "2"}, graph, Options{})
	assert.True(t, result.IsValid)
}
