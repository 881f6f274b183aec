package models

// WorkflowMeta mirrors the workflow header fields returned by the backend
// detail endpoint. The graph itself travels separately in Graph.
type WorkflowMeta struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"        validate:"required,min=3"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	SubCategory string  `json:"sub_category"`
	Department  string  `json:"department"`
	TotalSLA    float64 `json:"total_sla"   validate:"min=0"`
}

// Graph is the wire shape of the step/transition sets.
type Graph struct {
	Nodes []*Step       `json:"nodes"`
	Edges []*Transition `json:"edges"`
}

// WorkflowDetail is the payload of the backend detail endpoint.
type WorkflowDetail struct {
	Workflow WorkflowMeta `json:"workflow"`
	Graph    Graph        `json:"graph"`
}

// Data flattens a detail payload into the editable workflow document.
func (d *WorkflowDetail) Data() *WorkflowData {
	return &WorkflowData{
		Name:        d.Workflow.Name,
		Description: d.Workflow.Description,
		TotalSLA:    d.Workflow.TotalSLA,
		Steps:       d.Graph.Nodes,
		Transitions: d.Graph.Edges,
	}
}

// UpdateGraphRequest is the payload sent to the backend graph-update
// endpoint. Temporary ids are carried as-is; the backend replaces them.
type UpdateGraphRequest struct {
	Nodes []*Step       `json:"nodes"`
	Edges []*Transition `json:"edges"`
}

// UpdateGraphResponse carries the backend's reconciliation mapping from
// temporary ids to persisted ids.
type UpdateGraphResponse struct {
	TempIDMapping map[string]string `json:"temp_id_mapping"`
}

// Role is an assignee role fetched from the backend role listing. Roles are
// a lookup list for the step role field; role management lives elsewhere.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
}
