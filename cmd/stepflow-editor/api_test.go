package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepflowhq/stepflow/pkg/handles"
	"github.com/stepflowhq/stepflow/pkg/models"
	"github.com/stepflowhq/stepflow/pkg/persistence/file"
	"github.com/stepflowhq/stepflow/pkg/testutil"
	"github.com/stepflowhq/stepflow/pkg/web"
)

func setupTestApp(tempDir string) *fiber.App {
	persistence := file.NewPersistence(tempDir)

	api := NewAPI(
		slog.Default(),
		persistence,
		handles.NewDirectionalResolver(0),
	)

	return api.App()
}

func TestAPI_RootEndpoint(t *testing.T) {
	tempDir := t.TempDir()
	app := setupTestApp(tempDir)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Stepflow Editor API", string(body))
}

func TestAPI_Liveness(t *testing.T) {
	tempDir := t.TempDir()
	app := setupTestApp(tempDir)

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_ValidateConnectionRoute(t *testing.T) {
	tempDir := t.TempDir()
	app := setupTestApp(tempDir)

	data := testutil.CreateTestWorkflow()
	payload, err := json.Marshal(web.ConnectionRequest{
		Steps:       data.Steps,
		Transitions: data.Transitions,
		Source:      "start",
		Target:      "done",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/editor/validate-connection", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result models.ValidationResult

	require.NoError(t, json.Unmarshal(body, &result))
	assert.True(t, result.IsValid)
}
