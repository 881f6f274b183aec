package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepflowhq/stepflow/pkg/models"
)

func TestClient_WorkflowDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/workflows/42/detail/", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"workflow": {"id": 42, "name": "Onboarding", "total_sla": 48},
			"graph": {
				"nodes": [
					{"id": 1, "name": "Intake", "role": "agent", "is_start": true, "design": {"x": 10, "y": 20}},
					{"id": "2", "name": "Review", "role": "manager", "position": {"x": 30, "y": 40}}
				],
				"edges": [
					{"id": 7, "from": 1, "to": "2"}
				]
			}
		}`))
	}))
	defer server.Close()

	c := New(server.URL, WithToken("secret"))

	detail, err := c.WorkflowDetail(t.Context(), "42")
	require.NoError(t, err)

	assert.Equal(t, "Onboarding", detail.Workflow.Name)
	require.Len(t, detail.Graph.Nodes, 2)

	assert.Equal(t, "1", detail.Graph.Nodes[0].ID)
	assert.True(t, detail.Graph.Nodes[0].IsStart)
	assert.Equal(t, 10.0, detail.Graph.Nodes[0].Design.X)

	assert.Equal(t, "2", detail.Graph.Nodes[1].ID)
	assert.Equal(t, 30.0, detail.Graph.Nodes[1].Design.X)

	require.Len(t, detail.Graph.Edges, 1)
	assert.Equal(t, "7", detail.Graph.Edges[0].ID)
	assert.Equal(t, "1", detail.Graph.Edges[0].Source)
	assert.Equal(t, "2", detail.Graph.Edges[0].Target)
}

func TestClient_WorkflowDetailNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.WorkflowDetail(t.Context(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClient_WorkflowDetailRejectsMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"workflow": {"name": "x"}}`))
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.WorkflowDetail(t.Context(), "42")
	require.Error(t, err)
	assert.True(t, IsInvalidPayload(err))
}

func TestClient_UpdateGraph(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/workflows/42/update-graph/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var request models.UpdateGraphRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Len(t, request.Nodes, 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"temp_id_mapping": {"temp-abc": "101"}}`))
	}))
	defer server.Close()

	c := New(server.URL)

	response, err := c.UpdateGraph(t.Context(), "42", models.UpdateGraphRequest{
		Nodes: []*models.Step{{ID: "temp-abc", Name: "Intake", Role: "agent"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "101", response.TempIDMapping["temp-abc"])
}

func TestClient_UpdateGraphRejectsBadMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"temp_id_mapping": {"temp-abc": 101}}`))
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.UpdateGraph(t.Context(), "42", models.UpdateGraphRequest{})
	require.Error(t, err)
	assert.True(t, IsInvalidPayload(err))
}

func TestClient_Roles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/roles/", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 1, "name": "agent"}, {"id": 2, "name": "manager"}]`))
	}))
	defer server.Close()

	c := New(server.URL)

	roles, err := c.Roles(t.Context())
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "manager", roles[1].Name)
}

func TestClient_ServerErrorSurfacesSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.Roles(t.Context())
	require.ErrorIs(t, err, ErrServerError)
}

func TestFlexID(t *testing.T) {
	var payload struct {
		A flexID `json:"a"`
		B flexID `json:"b"`
		C flexID `json:"c"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"a": "x-1", "b": 42, "c": null}`), &payload))
	assert.Equal(t, "x-1", payload.A.String())
	assert.Equal(t, "42", payload.B.String())
	assert.Equal(t, "", payload.C.String())
}
