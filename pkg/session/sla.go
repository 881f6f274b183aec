package session

import (
	"github.com/stepflowhq/stepflow/pkg/models"
)

// SLAAllocations returns the effective SLA hours allocated to each step:
// totalSLA * weight / sum(all weights). Weights default to 1, so a fresh
// workflow splits the total evenly.
func (s *Session) SLAAllocations() map[string]float64 {
	return Allocations(s.hist.current())
}

// Allocations computes the per-step SLA split for a document.
func Allocations(data *models.WorkflowData) map[string]float64 {
	result := make(map[string]float64, len(data.Steps))

	totalWeight := 0
	for _, step := range data.Steps {
		totalWeight += step.Weight()
	}

	if totalWeight == 0 {
		return result
	}

	for _, step := range data.Steps {
		result[step.ID] = data.TotalSLA * float64(step.Weight()) / float64(totalWeight)
	}

	return result
}
