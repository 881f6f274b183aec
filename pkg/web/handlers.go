// Package web provides HTTP handlers and REST API endpoints for the editor service.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/stepflowhq/stepflow/pkg/handles"
	"github.com/stepflowhq/stepflow/pkg/layout"
	"github.com/stepflowhq/stepflow/pkg/persistence"
	"github.com/stepflowhq/stepflow/pkg/validation"
)

type APIHandlers struct {
	resolver  handles.Resolver
	storage   persistence.Persistence
	drafts    persistence.DraftRepository
	validator *validator.Validate
	options   validation.Options
	logger    *slog.Logger
}

func NewAPIHandlers(
	resolver handles.Resolver,
	storage persistence.Persistence,
	validate *validator.Validate,
	options validation.Options,
	logger *slog.Logger,
) *APIHandlers {
	return &APIHandlers{
		resolver:  resolver,
		storage:   storage,
		drafts:    storage.DraftRepository(),
		validator: validate,
		options:   options,
		logger:    logger,
	}
}

// ValidateConnection checks one proposed connection against its graph.
func (h *APIHandlers) ValidateConnection(c fiber.Ctx) error {
	var req ConnectionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	result := validation.ValidateConnection(
		validation.Connection{
			Source:       req.Source,
			Target:       req.Target,
			SourceHandle: req.SourceHandle,
			TargetHandle: req.TargetHandle,
		},
		validation.Context{
			Steps:       req.Steps,
			Transitions: req.Transitions,
			Resolver:    h.resolver,
		},
		h.options,
	)

	return c.JSON(result)
}

// ValidateGraph classifies a full edge set into valid, invalid and orphaned.
func (h *APIHandlers) ValidateGraph(c fiber.Ctx) error {
	var req GraphRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	result := validation.ValidateGraph(req.Steps, req.Edges, h.resolver, h.options)

	return c.JSON(result)
}

// Layout computes positions and handle annotations for a graph.
func (h *APIHandlers) Layout(c fiber.Ctx) error {
	var req LayoutRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	engine := layout.NewEngine(req.Options())
	steps, transitions := engine.Layout(req.Steps, req.Transitions)

	return c.JSON(LayoutResponse{Steps: steps, Transitions: transitions})
}

// Stats summarizes the shape of a graph.
func (h *APIHandlers) Stats(c fiber.Ctx) error {
	var req LayoutRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(layout.Stats(req.Steps, req.Transitions))
}

// ListDrafts returns every autosaved draft.
func (h *APIHandlers) ListDrafts(c fiber.Ctx) error {
	drafts, err := h.drafts.ListDrafts(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"drafts": drafts})
}

// GetDraft returns the autosaved draft for a workflow.
func (h *APIHandlers) GetDraft(c fiber.Ctx) error {
	workflowID := c.Params("workflowId")
	if workflowID == "" {
		return badRequest(c, "Workflow ID is required")
	}

	draft, err := h.drafts.DraftByWorkflow(c.Context(), workflowID)
	if err != nil {
		return handleDraftError(c, err)
	}

	return c.JSON(draft)
}

// SaveDraft stores an editor draft for a workflow.
func (h *APIHandlers) SaveDraft(c fiber.Ctx) error {
	workflowID := c.Params("workflowId")
	if workflowID == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req SaveDraftRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	draft := &persistence.Draft{
		WorkflowID: workflowID,
		Data:       req.Data,
		SavedAt:    time.Now().UTC(),
	}

	if err := h.drafts.SaveDraft(c.Context(), draft); err != nil {
		return handleDraftError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(draft)
}

// DeleteDraft removes the autosaved draft for a workflow.
func (h *APIHandlers) DeleteDraft(c fiber.Ctx) error {
	workflowID := c.Params("workflowId")
	if workflowID == "" {
		return badRequest(c, "Workflow ID is required")
	}

	if err := h.drafts.DeleteDraft(c.Context(), workflowID); err != nil {
		if persistence.IsDraftNotFound(err) {
			return notFound(c, "Draft not found")
		}

		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HealthCheck reports liveness of the service and its draft storage.
func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	status := "healthy"
	message := "Stepflow editor API is healthy"
	httpStatus := http.StatusOK

	check := "ok"
	if err := h.storage.HealthCheck(c.Context()); err != nil {
		h.logger.Error("Draft storage health check failed", "error", err)

		status = "unhealthy"
		message = "Stepflow editor API is unhealthy"
		httpStatus = http.StatusInternalServerError
		check = err.Error()
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"draft_storage": check,
		},
		"timestamp": time.Now().UTC(),
	})
}
