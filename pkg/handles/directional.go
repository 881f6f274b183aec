package handles

import (
	"github.com/stepflowhq/stepflow/pkg/models"
)

// Directional handle ids used by the richer editor surface. Inputs sit on
// the top and sides, outputs on the bottom and sides, so the layout engine
// can route edges horizontally when a target sits beside its source.
const (
	InputTopID     = "in-top"
	InputLeftID    = "in-left"
	InputRightID   = "in-right"
	OutputBottomID = "out-bottom"
	OutputLeftID   = "out-left"
	OutputRightID  = "out-right"
)

// DirectionalResolver exposes the six-handle directional schema: three
// inputs (top, left, right) and three outputs (bottom, left, right), each
// with an independent cardinality limit.
type DirectionalResolver struct {
	// MaxPerHandle caps connections per handle. Zero means unbounded.
	MaxPerHandle int
}

func NewDirectionalResolver(maxPerHandle int) DirectionalResolver {
	return DirectionalResolver{MaxPerHandle: maxPerHandle}
}

func (r DirectionalResolver) Resolve(step *models.Step) []models.Handle {
	result := make([]models.Handle, 0, 6)

	if !step.IsStart {
		result = append(result,
			models.Handle{ID: InputTopID, Type: models.HandleTypeInput, Position: models.HandlePositionTop, MaxConnections: r.MaxPerHandle},
			models.Handle{ID: InputLeftID, Type: models.HandleTypeInput, Position: models.HandlePositionLeft, MaxConnections: r.MaxPerHandle},
			models.Handle{ID: InputRightID, Type: models.HandleTypeInput, Position: models.HandlePositionRight, MaxConnections: r.MaxPerHandle},
		)
	}

	if !step.IsEnd {
		result = append(result,
			models.Handle{ID: OutputBottomID, Type: models.HandleTypeOutput, Position: models.HandlePositionBottom, MaxConnections: r.MaxPerHandle},
			models.Handle{ID: OutputLeftID, Type: models.HandleTypeOutput, Position: models.HandlePositionLeft, MaxConnections: r.MaxPerHandle},
			models.Handle{ID: OutputRightID, Type: models.HandleTypeOutput, Position: models.HandlePositionRight, MaxConnections: r.MaxPerHandle},
		)
	}

	return result
}

// SchemaResolver overrides handle sets per step id, falling back to another
// resolver for steps without a custom schema.
type SchemaResolver struct {
	schemas  map[string][]models.Handle
	fallback Resolver
}

func NewSchemaResolver(schemas map[string][]models.Handle, fallback Resolver) *SchemaResolver {
	return &SchemaResolver{
		schemas:  schemas,
		fallback: fallback,
	}
}

func (r *SchemaResolver) Resolve(step *models.Step) []models.Handle {
	if set, ok := r.schemas[step.ID]; ok {
		return set
	}

	return r.fallback.Resolve(step)
}
