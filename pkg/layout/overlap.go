package layout

import (
	"math"

	"github.com/stepflowhq/stepflow/pkg/models"
)

// resolveOverlaps runs the iterative pairwise relaxation: any two nodes
// closer than the minimum separation are pushed apart symmetrically along
// the line through their centers, proportional to the overlap. A local
// heuristic; it resolves the common collisions from rank placement but
// does not guarantee an overlap-free result in pathological graphs.
func (e *Engine) resolveOverlaps(steps []*models.Step) {
	minSeparation := (e.opts.NodeWidth+e.opts.NodeHeight)/2 + e.opts.OverlapPadding

	for pass := 0; pass < e.opts.OverlapPasses; pass++ {
		moved := false

		for i := 0; i < len(steps); i++ {
			for j := i + 1; j < len(steps); j++ {
				a, b := steps[i], steps[j]

				dx := b.Design.X - a.Design.X
				dy := b.Design.Y - a.Design.Y
				distance := math.Hypot(dx, dy)

				if distance >= minSeparation {
					continue
				}

				if distance == 0 {
					// Coincident centers: separate along the x axis.
					dx, dy, distance = 1, 0, 1
				}

				push := (minSeparation - distance) / 2
				unitX := dx / distance
				unitY := dy / distance

				a.Design.X -= unitX * push
				a.Design.Y -= unitY * push
				b.Design.X += unitX * push
				b.Design.Y += unitY * push

				moved = true
			}
		}

		if !moved {
			break
		}
	}
}
