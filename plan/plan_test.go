package plan

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuild_TwoByTwo(t *testing.T) {
	p, err := Build(20, 2, 2, WithLogger(quietLogger()))
	require.NoError(t, err)

	want := []Epoch{
		{Start: 0, End: 10, Blocks: []Range{{0, 5}, {5, 10}}},
		{Start: 10, End: 20, Blocks: []Range{{10, 15}, {15, 20}}},
	}
	assert.Equal(t, want, p.Epochs)
	assert.Equal(t, 20, p.TotalSize())
	assert.Equal(t, 2, p.Width())
}

func TestBuild_UnevenSplit(t *testing.T) {
	p, err := Build(23, 3, 2, WithLogger(quietLogger()))
	require.NoError(t, err)

	require.Len(t, p.Epochs, 3)
	assert.Equal(t, Range{0, 7}, p.Epochs[0].Range())
	assert.Equal(t, Range{7, 14}, p.Epochs[1].Range())
	assert.Equal(t, Range{14, 23}, p.Epochs[2].Range())
	assert.Equal(t, []Range{{14, 18}, {18, 23}}, p.Epochs[2].Blocks)
}

func TestBuild_EmptyWorkload(t *testing.T) {
	p, err := Build(0, 4, 4, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Empty(t, p.Epochs)
	assert.Equal(t, 0, p.TotalSize())
	assert.Equal(t, 0, p.Width())
}

func TestBuild_InvalidCounts(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		epochs int
		blocks int
	}{
		{"negative epochs", 10, -1, 2},
		{"negative blocks", 10, 2, -1},
		{"zero epochs", 10, 0, 2},
		{"zero blocks", 10, 2, 0},
		{"negative size", -5, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Build(tt.size, tt.epochs, tt.blocks, WithLogger(quietLogger()))
			require.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Nil(t, p)
		})
	}
}

func TestBuild_BlocksCoverWorkload(t *testing.T) {
	for size := 0; size <= 30; size++ {
		for epochs := 1; epochs <= 5; epochs++ {
			for blocks := 1; blocks <= 5; blocks++ {
				p, err := Build(size, epochs, blocks, WithLogger(quietLogger()))
				require.NoError(t, err)

				next := 0
				for _, epoch := range p.Epochs {
					assert.Equal(t, next, epoch.Start)
					assert.LessOrEqual(t, len(epoch.Blocks), blocks)
					for _, block := range epoch.Blocks {
						assert.Equal(t, next, block.Start, "size=%d epochs=%d blocks=%d", size, epochs, blocks)
						next = block.End
					}
					assert.Equal(t, epoch.End, next)
				}
				assert.Equal(t, size, next, "size=%d epochs=%d blocks=%d", size, epochs, blocks)
			}
		}
	}
}

func TestBuild_Idempotent(t *testing.T) {
	first, err := Build(97, 4, 3, WithLogger(quietLogger()))
	require.NoError(t, err)
	second, err := Build(97, 4, 3, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuild_LogsTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	_, err := Build(20, 2, 2, WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "parallelization execution plan")
	assert.Contains(t, out, "trace=index")
	assert.Contains(t, out, `range="[10, 15)"`)
	assert.Contains(t, out, `range="[15, 20)"`)
}

func TestBuild_GroupedWork(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	groups := [][]string{{"a"}, {"b", "c"}, {"d"}}
	p, err := Build(len(groups), 1, 2, WithLogger(logger), WithGroupedWork(GroupSizes(groups)))
	require.NoError(t, err)

	// The partition is unchanged by grouped work.
	assert.Equal(t, []Range{{0, 1}, {1, 3}}, p.Epochs[0].Blocks)

	out := buf.String()
	assert.Contains(t, out, "trace=grouped")
	assert.Contains(t, out, `range="[0, 1)"`)
	assert.Contains(t, out, `range="[1, 4)"`)
}

func TestBuild_GroupedWorkSizeMismatch(t *testing.T) {
	p, err := Build(5, 1, 2, WithLogger(quietLogger()), WithGroupedWork([]int{1, 2, 3}))
	require.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Nil(t, p)
}

func TestBuild_GroupedWorkNegativeSize(t *testing.T) {
	_, err := Build(2, 1, 1, WithLogger(quietLogger()), WithGroupedWork([]int{1, -2}))
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestPlan_Blocks(t *testing.T) {
	p, err := Build(9, 3, 2, WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.Equal(t, []Range{{0, 1}, {1, 3}, {3, 4}, {4, 6}, {6, 7}, {7, 9}}, p.Blocks())
}
