// Package handles resolves per-step connection point schemas.
package handles

import (
	"github.com/stepflowhq/stepflow/pkg/models"
)

// Default handle ids assigned by the single-handle resolver.
const (
	DefaultInputID  = "in"
	DefaultOutputID = "out"
)

// Resolver returns the set of handles a step exposes. Implementations are
// pure lookups with no side effects.
type Resolver interface {
	Resolve(step *models.Step) []models.Handle
}

// DefaultResolver implements the default handle policy: non-start steps get
// one unbounded input handle, non-end steps get one unbounded output handle.
// Fan-in and fan-out are both allowed.
type DefaultResolver struct{}

func NewDefaultResolver() DefaultResolver {
	return DefaultResolver{}
}

func (DefaultResolver) Resolve(step *models.Step) []models.Handle {
	result := make([]models.Handle, 0, 2)

	if !step.IsStart {
		result = append(result, models.Handle{
			ID:             DefaultInputID,
			Type:           models.HandleTypeInput,
			Position:       models.HandlePositionTop,
			MaxConnections: models.UnboundedConnections,
		})
	}

	if !step.IsEnd {
		result = append(result, models.Handle{
			ID:             DefaultOutputID,
			Type:           models.HandleTypeOutput,
			Position:       models.HandlePositionBottom,
			MaxConnections: models.UnboundedConnections,
		})
	}

	return result
}

// Find returns the handle with the given id from a resolved set.
func Find(set []models.Handle, id string) (models.Handle, bool) {
	for _, handle := range set {
		if handle.ID == id {
			return handle, true
		}
	}

	return models.Handle{}, false
}

// FindByType returns the first handle of the given type from a resolved set.
// It backs the default-handle fallback for transitions that carry no
// explicit handle ids.
func FindByType(set []models.Handle, handleType models.HandleType) (models.Handle, bool) {
	for _, handle := range set {
		if handle.Type == handleType {
			return handle, true
		}
	}

	return models.Handle{}, false
}
