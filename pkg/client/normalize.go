package client

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/stepflowhq/stepflow/pkg/models"
)

// flexID decodes an id that the backend serializes inconsistently as
// either a JSON string or a JSON number. Numeric ids are rendered in
// their canonical decimal form.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""

		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*f = flexID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %w", err)
	}

	if i, err := n.Int64(); err == nil {
		*f = flexID(strconv.FormatInt(i, 10))

		return nil
	}

	*f = flexID(n.String())

	return nil
}

func (f flexID) String() string {
	return string(f)
}

// rawStep is the tolerant wire shape of a backend graph node. Older
// backend revisions nest the canvas position under "position" instead
// of "design".
type rawStep struct {
	ID          flexID         `json:"id"`
	Name        string         `json:"name"`
	Role        string         `json:"role"`
	Description string         `json:"description"`
	Instruction string         `json:"instruction"`
	Design      *models.Design `json:"design"`
	Position    *models.Design `json:"position"`
	IsStart     bool           `json:"is_start"`
	IsEnd       bool           `json:"is_end"`
	SLAWeight   int            `json:"sla_weight"`
}

func (r *rawStep) normalize() *models.Step {
	step := &models.Step{
		ID:          r.ID.String(),
		Name:        r.Name,
		Role:        r.Role,
		Description: r.Description,
		Instruction: r.Instruction,
		IsStart:     r.IsStart,
		IsEnd:       r.IsEnd,
		SLAWeight:   r.SLAWeight,
	}

	switch {
	case r.Design != nil:
		step.Design = *r.Design
	case r.Position != nil:
		step.Design = *r.Position
	}

	return step
}

// rawTransition is the tolerant wire shape of a backend graph edge.
// Endpoints arrive as source/target or the legacy from/to aliases.
type rawTransition struct {
	ID           flexID `json:"id"`
	Source       flexID `json:"source"`
	From         flexID `json:"from"`
	Target       flexID `json:"target"`
	To           flexID `json:"to"`
	Name         string `json:"name"`
	SourceHandle string `json:"source_handle"`
	TargetHandle string `json:"target_handle"`
	Conditions   string `json:"conditions"`
}

func (r *rawTransition) normalize() *models.Transition {
	source := r.Source.String()
	if source == "" {
		source = r.From.String()
	}

	target := r.Target.String()
	if target == "" {
		target = r.To.String()
	}

	return &models.Transition{
		ID:           r.ID.String(),
		Source:       source,
		Target:       target,
		Name:         r.Name,
		SourceHandle: r.SourceHandle,
		TargetHandle: r.TargetHandle,
		Conditions:   r.Conditions,
	}
}

// rawDetail is the tolerant wire shape of the detail endpoint payload.
type rawDetail struct {
	Workflow models.WorkflowMeta `json:"workflow"`
	Graph    struct {
		Nodes []*rawStep       `json:"nodes"`
		Edges []*rawTransition `json:"edges"`
	} `json:"graph"`
}

func (r *rawDetail) normalize() *models.WorkflowDetail {
	detail := &models.WorkflowDetail{
		Workflow: r.Workflow,
		Graph: models.Graph{
			Nodes: make([]*models.Step, 0, len(r.Graph.Nodes)),
			Edges: make([]*models.Transition, 0, len(r.Graph.Edges)),
		},
	}

	for _, node := range r.Graph.Nodes {
		detail.Graph.Nodes = append(detail.Graph.Nodes, node.normalize())
	}

	for _, edge := range r.Graph.Edges {
		detail.Graph.Edges = append(detail.Graph.Edges, edge.normalize())
	}

	return detail
}
