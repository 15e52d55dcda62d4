package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupedTrace_FlattenedRange(t *testing.T) {
	groups := [][]string{{"a"}, {"b", "c"}, {"d"}}
	trace, err := NewGroupedTrace(GroupSizes(groups))
	require.NoError(t, err)

	assert.Equal(t, 3, trace.Groups())
	assert.Equal(t, 4, trace.Items())
	assert.Equal(t, Range{0, 3}, trace.translate(Range{0, 2}))
	assert.Equal(t, Range{3, 4}, trace.translate(Range{2, 3}))
	assert.Equal(t, Range{1, 1}, trace.translate(Range{1, 1}))
}

func TestGroupedTrace_EmptyGroups(t *testing.T) {
	trace, err := NewGroupedTrace([]int{0, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, Range{0, 0}, trace.translate(Range{0, 2}))
	assert.Equal(t, Range{0, 2}, trace.translate(Range{0, 3}))
}

func TestGroupedTrace_ZeroValue(t *testing.T) {
	var trace GroupedTrace
	assert.Equal(t, 0, trace.Groups())
	assert.Equal(t, 0, trace.Items())
	assert.True(t, trace.covers(0))
}

func TestGroupSizes(t *testing.T) {
	assert.Equal(t, []int{2, 0, 1}, GroupSizes([][]int{{1, 2}, {}, {3}}))
	assert.Empty(t, GroupSizes[int](nil))
}

func TestPlan_Describe(t *testing.T) {
	p, err := Build(4, 2, 2, WithLogger(quietLogger()))
	require.NoError(t, err)

	t.Run("index trace", func(t *testing.T) {
		described, err := p.Describe(IndexTrace{})
		require.NoError(t, err)
		require.Len(t, described, 2)
		assert.Equal(t, Range{0, 2}, described[0].Epoch)
		assert.Equal(t, []Range{{0, 1}, {1, 2}}, described[0].Blocks)
	})

	t.Run("nil trace defaults to index", func(t *testing.T) {
		described, err := p.Describe(nil)
		require.NoError(t, err)
		assert.Equal(t, []Range{{2, 3}, {3, 4}}, described[1].Blocks)
	})

	t.Run("grouped trace", func(t *testing.T) {
		trace, err := NewGroupedTrace([]int{3, 1, 2, 4})
		require.NoError(t, err)

		described, err := p.Describe(trace)
		require.NoError(t, err)
		// Epochs keep their index range; only blocks are translated.
		assert.Equal(t, Range{2, 4}, described[1].Epoch)
		assert.Equal(t, []Range{{0, 3}, {3, 4}}, described[0].Blocks)
		assert.Equal(t, []Range{{4, 6}, {6, 10}}, described[1].Blocks)
	})

	t.Run("grouped trace too short", func(t *testing.T) {
		trace, err := NewGroupedTrace([]int{3, 1})
		require.NoError(t, err)

		_, err = p.Describe(trace)
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}
