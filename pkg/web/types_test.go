package web_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stepflowhq/stepflow/pkg/layout"
	"github.com/stepflowhq/stepflow/pkg/web"
)

func TestLayoutRequest_OptionsDefaults(t *testing.T) {
	t.Parallel()

	req := web.LayoutRequest{}
	opts := req.Options()

	defaults := layout.DefaultOptions()
	assert.Equal(t, defaults.Direction, opts.Direction)
	assert.Equal(t, defaults.NodeSpacing, opts.NodeSpacing)
	assert.Equal(t, defaults.RankSpacing, opts.RankSpacing)
}

func TestLayoutRequest_OptionsOverrides(t *testing.T) {
	t.Parallel()

	req := web.LayoutRequest{
		Direction:   "LR",
		NodeSpacing: 120,
		RankSpacing: 300,
	}
	opts := req.Options()

	assert.Equal(t, layout.DirectionLeftToRight, opts.Direction)
	assert.Equal(t, 120.0, opts.NodeSpacing)
	assert.Equal(t, 300.0, opts.RankSpacing)
}
