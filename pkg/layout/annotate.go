package layout

import (
	"math"

	"github.com/stepflowhq/stepflow/pkg/handles"
	"github.com/stepflowhq/stepflow/pkg/models"
)

// annotate fills missing handle ids on transitions after positioning.
// Vertical top/bottom handles are preferred; when the target sits
// predominantly to the side, the horizontal left/right pair is used
// instead. Explicit handle ids are always preserved.
func (e *Engine) annotate(steps []*models.Step, transitions []*models.Transition) {
	positions := make(map[string]models.Design, len(steps))
	for _, step := range steps {
		positions[step.ID] = step.Design
	}

	for _, transition := range transitions {
		if transition.SourceHandle != "" && transition.TargetHandle != "" {
			continue
		}

		source, sourceOK := positions[transition.Source]
		target, targetOK := positions[transition.Target]

		if !sourceOK || !targetOK {
			continue
		}

		sourceHandle, targetHandle := pickHandles(source, target)

		if transition.SourceHandle == "" {
			transition.SourceHandle = sourceHandle
		}

		if transition.TargetHandle == "" {
			transition.TargetHandle = targetHandle
		}
	}
}

func pickHandles(source, target models.Design) (string, string) {
	dx := target.X - source.X
	dy := target.Y - source.Y

	if math.Abs(dx) > math.Abs(dy) {
		if dx >= 0 {
			return handles.OutputRightID, handles.InputLeftID
		}

		return handles.OutputLeftID, handles.InputRightID
	}

	return handles.OutputBottomID, handles.InputTopID
}
