package layout

import (
	"sort"

	"github.com/stepflowhq/stepflow/pkg/models"
)

// Engine computes the two-phase layout: rank-based placement, then
// pairwise overlap resolution, then direction-aware handle annotation.
type Engine struct {
	opts Options
}

func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// Layout returns positioned copies of the steps and annotated copies of the
// transitions. The inputs are never mutated.
func (e *Engine) Layout(steps []*models.Step, transitions []*models.Transition) ([]*models.Step, []*models.Transition) {
	positioned := make([]*models.Step, 0, len(steps))
	for _, step := range steps {
		stepCopy := *step
		positioned = append(positioned, &stepCopy)
	}

	if len(positioned) == 0 {
		return positioned, cloneTransitions(transitions)
	}

	ranks := AssignRanks(steps, transitions)
	e.place(positioned, ranks)
	e.resolveOverlaps(positioned)

	annotated := cloneTransitions(transitions)
	e.annotate(positioned, annotated)

	return positioned, annotated
}

// place assigns the initial grid: rank index along the flow axis, rank
// members centered along the cross axis.
func (e *Engine) place(steps []*models.Step, ranks map[string]int) {
	byRank := make(map[int][]*models.Step)
	maxRank := 0

	for _, step := range steps {
		rank := ranks[step.ID]
		byRank[rank] = append(byRank[rank], step)

		if rank > maxRank {
			maxRank = rank
		}
	}

	rankKeys := make([]int, 0, len(byRank))
	for rank := range byRank {
		rankKeys = append(rankKeys, rank)
	}

	sort.Ints(rankKeys)

	crossSize, crossGap := e.crossMetrics()

	widest := 0.0

	for _, rank := range rankKeys {
		extent := rowExtent(len(byRank[rank]), crossSize, crossGap)
		if extent > widest {
			widest = extent
		}
	}

	for _, rank := range rankKeys {
		row := byRank[rank]
		extent := rowExtent(len(row), crossSize, crossGap)
		crossStart := (widest - extent) / 2

		for i, step := range row {
			flow := e.flowCoordinate(rank, maxRank)
			cross := crossStart + float64(i)*(crossSize+crossGap)

			switch e.opts.Direction {
			case DirectionLeftToRight, DirectionRightToLeft:
				step.Design = models.Design{X: e.opts.MarginX + flow, Y: e.opts.MarginY + cross}
			default:
				step.Design = models.Design{X: e.opts.MarginX + cross, Y: e.opts.MarginY + flow}
			}
		}
	}
}

// crossMetrics returns node extent and gap along the within-rank axis.
func (e *Engine) crossMetrics() (float64, float64) {
	switch e.opts.Direction {
	case DirectionLeftToRight, DirectionRightToLeft:
		return e.opts.NodeHeight, e.opts.NodeSpacing
	default:
		return e.opts.NodeWidth, e.opts.NodeSpacing
	}
}

// flowCoordinate maps a rank index onto the flow axis, reversed for the
// bottom-up and right-to-left directions.
func (e *Engine) flowCoordinate(rank, maxRank int) float64 {
	index := rank
	if e.opts.Direction == DirectionBottomToTop || e.opts.Direction == DirectionRightToLeft {
		index = maxRank - rank
	}

	return float64(index) * e.opts.RankSpacing
}

func rowExtent(count int, size, gap float64) float64 {
	if count == 0 {
		return 0
	}

	return float64(count)*size + float64(count-1)*gap
}

func cloneTransitions(transitions []*models.Transition) []*models.Transition {
	result := make([]*models.Transition, 0, len(transitions))

	for _, transition := range transitions {
		transitionCopy := *transition
		result = append(result, &transitionCopy)
	}

	return result
}
