package plan

import (
	"fmt"
	"log/slog"
)

// Trace selects how blocks are reported when a plan is described.
// The two implementations are IndexTrace and GroupedTrace.
type Trace interface {
	translate(block Range) Range
	covers(size int) bool
	mode() string
}

// IndexTrace reports blocks as their raw index ranges.
type IndexTrace struct{}

func (IndexTrace) translate(block Range) Range { return block }
func (IndexTrace) covers(int) bool             { return true }
func (IndexTrace) mode() string                { return "index" }

// GroupedTrace reports a block [a, b) as the range of flattened item offsets
// spanned by groups a through b-1.
type GroupedTrace struct {
	offsets []int // offsets[i] is the total size of groups[0:i]
}

// NewGroupedTrace builds a GroupedTrace from the size of each group.
func NewGroupedTrace(sizes []int) (GroupedTrace, error) {
	offsets := make([]int, len(sizes)+1)
	for i, size := range sizes {
		if size < 0 {
			return GroupedTrace{}, fmt.Errorf("%w: group %d has negative size %d", ErrInvalidConfiguration, i, size)
		}
		offsets[i+1] = offsets[i] + size
	}
	return GroupedTrace{offsets: offsets}, nil
}

// GroupSizes returns the length of each group, in order.
func GroupSizes[T any](groups [][]T) []int {
	sizes := make([]int, len(groups))
	for i, group := range groups {
		sizes[i] = len(group)
	}
	return sizes
}

// Groups returns the number of groups the trace was built from.
func (g GroupedTrace) Groups() int { return max(len(g.offsets)-1, 0) }

// Items returns the total number of items across all groups.
func (g GroupedTrace) Items() int {
	if len(g.offsets) == 0 {
		return 0
	}
	return g.offsets[len(g.offsets)-1]
}

func (g GroupedTrace) translate(block Range) Range {
	return Range{Start: g.offsets[block.Start], End: g.offsets[block.End]}
}

func (g GroupedTrace) covers(size int) bool { return g.Groups() == size }
func (GroupedTrace) mode() string           { return "grouped" }

// EpochTrace is the reported form of one epoch.
type EpochTrace struct {
	Epoch  Range
	Blocks []Range
}

// Describe reports every epoch and its blocks using the given trace.
func (p *Plan) Describe(trace Trace) ([]EpochTrace, error) {
	if trace == nil {
		trace = IndexTrace{}
	}
	if !trace.covers(p.TotalSize()) {
		return nil, fmt.Errorf("%w: %s trace does not cover %d work items", ErrInvalidConfiguration, trace.mode(), p.TotalSize())
	}

	described := make([]EpochTrace, len(p.Epochs))
	for i, epoch := range p.Epochs {
		blocks := make([]Range, len(epoch.Blocks))
		for j, block := range epoch.Blocks {
			blocks[j] = trace.translate(block)
		}
		described[i] = EpochTrace{Epoch: epoch.Range(), Blocks: blocks}
	}
	return described, nil
}

// Log writes the plan trace to logger at info level.
func (p *Plan) Log(logger *slog.Logger, trace Trace) error {
	if logger == nil {
		logger = slog.Default()
	}
	if trace == nil {
		trace = IndexTrace{}
	}

	described, err := p.Describe(trace)
	if err != nil {
		return err
	}

	logger.Info("parallelization execution plan",
		"epochs", len(p.Epochs),
		"size", p.TotalSize(),
		"trace", trace.mode())
	for i, epoch := range described {
		logger.Info("epoch", "epoch", i, "start", epoch.Epoch.Start, "end", epoch.Epoch.End)
		for _, block := range epoch.Blocks {
			logger.Info("parallel block", "epoch", i, "range", block.String())
		}
	}
	return nil
}
