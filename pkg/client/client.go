// Package client implements the HTTP client for the workflow backend.
// Responses pass a JSON schema gate and a normalization pass before they
// become domain models, so backend shape drift surfaces at the boundary.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/stepflowhq/stepflow/pkg/log"
	"github.com/stepflowhq/stepflow/pkg/models"
	"github.com/stepflowhq/stepflow/pkg/otelhelper"
)

const defaultTimeoutSeconds = 30

// Client talks to the workflow backend REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	tracer     trace.Tracer
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTracer enables span creation around backend calls.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tracer
	}
}

// New creates a backend client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeoutSeconds * time.Second,
		},
		tracer: noop.NewTracerProvider().Tracer("stepflow-client"),
		logger: log.WithModule("client"),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// WorkflowDetail fetches a workflow with its graph from the backend.
func (c *Client) WorkflowDetail(ctx context.Context, workflowID string) (*models.WorkflowDetail, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "client.workflow_detail",
		attribute.String(otelhelper.WorkflowIDKey, workflowID))
	defer span.End()

	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/workflows/%s/detail/", workflowID), nil, "workflow_detail")
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	if err := validateSchema(body, detailSchema); err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("workflow detail: %w", err)
	}

	var raw rawDetail

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	if err := decoder.Decode(&raw); err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("workflow detail: %w: %w", ErrInvalidPayload, err)
	}

	return raw.normalize(), nil
}

// UpdateGraph pushes the full node and edge sets to the backend and
// returns its temporary id reconciliation mapping.
func (c *Client) UpdateGraph(
	ctx context.Context,
	workflowID string,
	request models.UpdateGraphRequest,
) (*models.UpdateGraphResponse, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "client.update_graph",
		attribute.String(otelhelper.WorkflowIDKey, workflowID),
		attribute.Int("stepflow.graph.nodes", len(request.Nodes)),
		attribute.Int("stepflow.graph.edges", len(request.Edges)))
	defer span.End()

	payload, err := json.Marshal(request)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("update graph: failed to marshal request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/workflows/%s/update-graph/", workflowID), payload, "update_graph")
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	if err := validateSchema(body, updateGraphResponseSchema); err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("update graph: %w", err)
	}

	var response models.UpdateGraphResponse
	if err := json.Unmarshal(body, &response); err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("update graph: %w: %w", ErrInvalidPayload, err)
	}

	return &response, nil
}

// Roles fetches the assignee role lookup list.
func (c *Client) Roles(ctx context.Context) ([]models.Role, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "client.roles")
	defer span.End()

	body, err := c.do(ctx, http.MethodGet, "/roles/", nil, "roles")
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	var roles []models.Role
	if err := json.Unmarshal(body, &roles); err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("roles: %w: %w", ErrInvalidPayload, err)
	}

	return roles, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, op string) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	c.logger.DebugContext(ctx, "Sending backend request", "method", method, "path", path)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", op, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response body: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.FromContext(ctx).WarnContext(ctx, "Backend request failed",
			"op", op, "status", resp.StatusCode, "body_length", len(body))

		return nil, newAPIError(op, resp.StatusCode)
	}

	return body, nil
}
