// Package models defines handle models for typed node connection points.
package models

// HandleType represents the direction of a connection point.
type HandleType string

const (
	HandleTypeInput  HandleType = "input"  // Receiving end of a connection
	HandleTypeOutput HandleType = "output" // Initiating end of a connection
)

// HandlePosition represents the side of the node box a handle is rendered on.
type HandlePosition string

const (
	HandlePositionTop    HandlePosition = "top"
	HandlePositionBottom HandlePosition = "bottom"
	HandlePositionLeft   HandlePosition = "left"
	HandlePositionRight  HandlePosition = "right"
)

// UnboundedConnections marks a handle with no cardinality limit.
const UnboundedConnections = 0

// Handle represents a typed connection point on a step. Edges attach to a
// source handle of type output and a target handle of type input.
type Handle struct {
	ID             string         `json:"id"`
	Type           HandleType     `json:"type"`
	Position       HandlePosition `json:"position"`
	MaxConnections int            `json:"max_connections"` // 0 = unbounded
}

// Unbounded reports whether the handle accepts any number of connections.
func (h Handle) Unbounded() bool {
	return h.MaxConnections <= UnboundedConnections
}
