// Package layout computes hierarchical positions for workflow graphs: a
// rank-based placement pass seeded from start steps followed by an
// iterative overlap-resolution pass.
package layout

// Direction selects the flow axis of the layered layout.
type Direction string

const (
	DirectionTopToBottom Direction = "TB"
	DirectionBottomToTop Direction = "BT"
	DirectionLeftToRight Direction = "LR"
	DirectionRightToLeft Direction = "RL"
)

// Options tunes spacing, margins, and the overlap pass.
type Options struct {
	Direction Direction `json:"direction"`

	// Node box dimensions used for spacing and overlap separation.
	NodeWidth  float64 `json:"node_width"`
	NodeHeight float64 `json:"node_height"`

	// NodeSpacing separates nodes within a rank; RankSpacing separates
	// consecutive ranks.
	NodeSpacing float64 `json:"node_spacing"`
	RankSpacing float64 `json:"rank_spacing"`

	MarginX float64 `json:"margin_x"`
	MarginY float64 `json:"margin_y"`

	// OverlapPasses bounds the pairwise relaxation; OverlapPadding is added
	// to the box-derived minimum separation.
	OverlapPasses  int     `json:"overlap_passes"`
	OverlapPadding float64 `json:"overlap_padding"`
}

// DefaultOptions returns the spacing used by the editor canvas.
func DefaultOptions() Options {
	return Options{
		Direction:      DirectionTopToBottom,
		NodeWidth:      200,
		NodeHeight:     80,
		NodeSpacing:    80,
		RankSpacing:    160,
		MarginX:        50,
		MarginY:        50,
		OverlapPasses:  5,
		OverlapPadding: 20,
	}
}

// withDefaults fills zero values so partially specified options behave.
func (o Options) withDefaults() Options {
	defaults := DefaultOptions()

	if o.Direction == "" {
		o.Direction = defaults.Direction
	}

	if o.NodeWidth <= 0 {
		o.NodeWidth = defaults.NodeWidth
	}

	if o.NodeHeight <= 0 {
		o.NodeHeight = defaults.NodeHeight
	}

	if o.NodeSpacing <= 0 {
		o.NodeSpacing = defaults.NodeSpacing
	}

	if o.RankSpacing <= 0 {
		o.RankSpacing = defaults.RankSpacing
	}

	if o.MarginX <= 0 {
		o.MarginX = defaults.MarginX
	}

	if o.MarginY <= 0 {
		o.MarginY = defaults.MarginY
	}

	if o.OverlapPasses <= 0 {
		o.OverlapPasses = defaults.OverlapPasses
	}

	if o.OverlapPadding <= 0 {
		o.OverlapPadding = defaults.OverlapPadding
	}

	return o
}
