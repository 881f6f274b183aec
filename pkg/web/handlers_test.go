package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepflowhq/stepflow/pkg/handles"
	"github.com/stepflowhq/stepflow/pkg/layout"
	"github.com/stepflowhq/stepflow/pkg/models"
	"github.com/stepflowhq/stepflow/pkg/persistence/file"
	"github.com/stepflowhq/stepflow/pkg/validation"
	"github.com/stepflowhq/stepflow/pkg/web"
)

func setupTestApp(t *testing.T) (*fiber.App, *file.Persistence) {
	t.Helper()

	storage := file.NewPersistence(t.TempDir())
	validate := validator.New(validator.WithRequiredStructEnabled())
	handlers := web.NewAPIHandlers(
		handles.NewDefaultResolver(),
		storage,
		validate,
		validation.Options{},
		slog.Default(),
	)

	app := fiber.New()

	editor := app.Group("/editor")
	editor.Post("/validate-connection", handlers.ValidateConnection)
	editor.Post("/validate-graph", handlers.ValidateGraph)
	editor.Post("/layout", handlers.Layout)
	editor.Post("/stats", handlers.Stats)

	drafts := app.Group("/drafts")
	drafts.Get("/", handlers.ListDrafts)
	drafts.Get("/:workflowId", handlers.GetDraft)
	drafts.Put("/:workflowId", handlers.SaveDraft)
	drafts.Delete("/:workflowId", handlers.DeleteDraft)

	app.Get("/health", handlers.HealthCheck)

	return app, storage
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader

	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)

		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, raw
}

func graphFixture() ([]*models.Step, []*models.Transition) {
	steps := []*models.Step{
		{ID: "a", Name: "Intake", Role: "agent", IsStart: true},
		{ID: "b", Name: "Review", Role: "manager"},
		{ID: "c", Name: "Close", Role: "manager", IsEnd: true},
	}
	transitions := []*models.Transition{
		{ID: "t1", Source: "a", Target: "b"},
	}

	return steps, transitions
}

func TestValidateConnection(t *testing.T) {
	t.Parallel()

	app, _ := setupTestApp(t)
	steps, transitions := graphFixture()

	tests := []struct {
		name          string
		request       web.ConnectionRequest
		expectedValid bool
		expectedCode  models.ValidationCode
	}{
		{
			name: "valid connection",
			request: web.ConnectionRequest{
				Steps: steps, Transitions: transitions,
				Source: "b", Target: "c",
			},
			expectedValid: true,
		},
		{
			name: "self loop rejected",
			request: web.ConnectionRequest{
				Steps: steps, Transitions: transitions,
				Source: "b", Target: "b",
			},
			expectedValid: false,
			expectedCode:  models.CodeSelfLoop,
		},
		{
			name: "duplicate edge rejected",
			request: web.ConnectionRequest{
				Steps: steps, Transitions: transitions,
				Source: "a", Target: "b",
			},
			expectedValid: false,
			expectedCode:  models.CodeDuplicateEdge,
		},
		{
			name: "unknown source",
			request: web.ConnectionRequest{
				Steps: steps, Transitions: transitions,
				Source: "ghost", Target: "b",
			},
			expectedValid: false,
			expectedCode:  models.CodeSourceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, body := doJSON(t, app, http.MethodPost, "/editor/validate-connection", tt.request)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var result models.ValidationResult

			require.NoError(t, json.Unmarshal(body, &result))
			assert.Equal(t, tt.expectedValid, result.IsValid)

			if tt.expectedCode != "" {
				assert.True(t, result.HasCode(tt.expectedCode), "expected code %s in %v", tt.expectedCode, result.Errors)
			}
		})
	}
}

func TestValidateConnection_RejectsEmptyBody(t *testing.T) {
	t.Parallel()

	app, _ := setupTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/editor/validate-connection", web.ConnectionRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidateGraph(t *testing.T) {
	t.Parallel()

	app, _ := setupTestApp(t)
	steps, _ := graphFixture()

	request := web.GraphRequest{
		Steps: steps,
		Edges: []*models.Transition{
			{ID: "t1", Source: "a", Target: "b"},
			{ID: "t2", Source: "b", Target: "ghost"},
			{ID: "t3", Source: "c", Target: "c"},
		},
	}

	resp, body := doJSON(t, app, http.MethodPost, "/editor/validate-graph", request)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result validation.GraphResult

	require.NoError(t, json.Unmarshal(body, &result))
	assert.False(t, result.IsGraphValid)
	assert.Len(t, result.ValidEdges, 1)
	assert.Len(t, result.OrphanedEdges, 1)
	assert.Len(t, result.InvalidEdges, 1)
}

func TestLayout(t *testing.T) {
	t.Parallel()

	app, _ := setupTestApp(t)
	steps, transitions := graphFixture()

	request := web.LayoutRequest{
		Steps:       steps,
		Transitions: []*models.Transition{transitions[0], {ID: "t2", Source: "b", Target: "c"}},
		Direction:   "TB",
	}

	resp, body := doJSON(t, app, http.MethodPost, "/editor/layout", request)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result web.LayoutResponse

	require.NoError(t, json.Unmarshal(body, &result))
	require.Len(t, result.Steps, 3)

	byID := map[string]*models.Step{}
	for _, step := range result.Steps {
		byID[step.ID] = step
	}

	assert.Less(t, byID["a"].Design.Y, byID["b"].Design.Y)
	assert.Less(t, byID["b"].Design.Y, byID["c"].Design.Y)

	for _, transition := range result.Transitions {
		assert.NotEmpty(t, transition.SourceHandle)
		assert.NotEmpty(t, transition.TargetHandle)
	}
}

func TestLayout_RejectsUnknownDirection(t *testing.T) {
	t.Parallel()

	app, _ := setupTestApp(t)
	steps, _ := graphFixture()

	resp, _ := doJSON(t, app, http.MethodPost, "/editor/layout", web.LayoutRequest{
		Steps:     steps,
		Direction: "diagonal",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStats(t *testing.T) {
	t.Parallel()

	app, _ := setupTestApp(t)
	steps, transitions := graphFixture()

	resp, body := doJSON(t, app, http.MethodPost, "/editor/stats", web.LayoutRequest{
		Steps:       steps,
		Transitions: transitions,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats layout.GraphStats

	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, 3, stats.Steps)
	assert.Equal(t, 1, stats.StartSteps)
	assert.Contains(t, stats.Unreachable, "c")
}

func TestDraftLifecycle(t *testing.T) {
	t.Parallel()

	app, _ := setupTestApp(t)

	data := &models.WorkflowData{
		Name:     "Onboarding",
		TotalSLA: 48,
		Steps:    []*models.Step{{ID: "a", Name: "Intake", Role: "agent", IsStart: true}},
	}

	resp, _ := doJSON(t, app, http.MethodPut, "/drafts/wf-1", web.SaveDraftRequest{Data: data})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/drafts/wf-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var draft struct {
		WorkflowID string               `json:"workflow_id"`
		Data       *models.WorkflowData `json:"data"`
	}

	require.NoError(t, json.Unmarshal(body, &draft))
	assert.Equal(t, "wf-1", draft.WorkflowID)
	assert.Equal(t, "Onboarding", draft.Data.Name)

	resp, body = doJSON(t, app, http.MethodGet, "/drafts/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "wf-1")

	resp, _ = doJSON(t, app, http.MethodDelete, "/drafts/wf-1", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/drafts/wf-1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteDraft_NotFound(t *testing.T) {
	t.Parallel()

	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodDelete, "/drafts/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "not_found")
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "healthy")
}
