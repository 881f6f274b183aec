// Package web provides HTTP request and response types for the editor API.
package web

import (
	"github.com/stepflowhq/stepflow/pkg/layout"
	"github.com/stepflowhq/stepflow/pkg/models"
)

// ConnectionRequest represents the request body for validating a single
// proposed connection against a graph.
type ConnectionRequest struct {
	Steps        []*models.Step       `json:"steps"  validate:"required,min=1"`
	Transitions  []*models.Transition `json:"transitions"`
	Source       string               `json:"source" validate:"required"`
	Target       string               `json:"target" validate:"required"`
	SourceHandle string               `json:"source_handle,omitempty"`
	TargetHandle string               `json:"target_handle,omitempty"`
}

// GraphRequest represents the request body for validating a full edge set.
type GraphRequest struct {
	Steps []*models.Step       `json:"steps" validate:"required,min=1"`
	Edges []*models.Transition `json:"edges"`
}

// LayoutRequest represents the request body for computing an automatic layout.
type LayoutRequest struct {
	Steps       []*models.Step       `json:"steps"       validate:"required,min=1"`
	Transitions []*models.Transition `json:"transitions"`
	Direction   string               `json:"direction,omitempty"   validate:"omitempty,oneof=TB BT LR RL"`
	NodeSpacing float64              `json:"node_spacing,omitempty" validate:"omitempty,min=0"`
	RankSpacing float64              `json:"rank_spacing,omitempty" validate:"omitempty,min=0"`
}

// Options converts the request overrides into layout options.
func (r *LayoutRequest) Options() layout.Options {
	opts := layout.DefaultOptions()

	if r.Direction != "" {
		opts.Direction = layout.Direction(r.Direction)
	}

	if r.NodeSpacing > 0 {
		opts.NodeSpacing = r.NodeSpacing
	}

	if r.RankSpacing > 0 {
		opts.RankSpacing = r.RankSpacing
	}

	return opts
}

// LayoutResponse carries the positioned steps and annotated transitions.
type LayoutResponse struct {
	Steps       []*models.Step       `json:"steps"`
	Transitions []*models.Transition `json:"transitions"`
}

// SaveDraftRequest represents the request body for storing an editor draft.
type SaveDraftRequest struct {
	Data *models.WorkflowData `json:"data" validate:"required"`
}
