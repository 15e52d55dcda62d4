// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plan

import (
	"fmt"
	"log/slog"
)

// Epoch is a sequential phase of a Plan. Its blocks are meant to run
// concurrently and cover [Start, End) without overlapping.
type Epoch struct {
	Start  int
	End    int
	Blocks []Range
}

// Range returns the index range covered by the epoch.
func (e Epoch) Range() Range {
	return Range{Start: e.Start, End: e.End}
}

// Plan is an ordered sequence of epochs. Epochs execute in order.
type Plan struct {
	Epochs []Epoch
}

// TotalSize returns the number of indices covered by the plan.
func (p *Plan) TotalSize() int {
	total := 0
	for _, epoch := range p.Epochs {
		total += epoch.End - epoch.Start
	}
	return total
}

// Blocks returns every block of the plan in execution order.
func (p *Plan) Blocks() []Range {
	var blocks []Range
	for _, epoch := range p.Epochs {
		blocks = append(blocks, epoch.Blocks...)
	}
	return blocks
}

// Width returns the largest number of blocks in any single epoch.
func (p *Plan) Width() int {
	width := 0
	for _, epoch := range p.Epochs {
		width = max(width, len(epoch.Blocks))
	}
	return width
}

type options struct {
	logger *slog.Logger
	trace  Trace
}

// Option configures Build.
type Option func(*options) error

// WithLogger sets the logger the plan trace is written to.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithGroupedWork reports blocks as offsets into the flattened groups instead
// of raw index ranges. sizes[i] is the number of items in the group at index i.
func WithGroupedWork(sizes []int) Option {
	return func(o *options) error {
		trace, err := NewGroupedTrace(sizes)
		if err != nil {
			return err
		}
		o.trace = trace
		return nil
	}
}

// Build partitions [0, totalSize) into epochCount sequential epochs and each
// epoch into blockCount parallel blocks, then logs the resulting plan.
// It returns ErrInvalidConfiguration when either count is not positive or
// totalSize is negative; no partial plan is returned in that case.
func Build(totalSize, epochCount, blockCount int, opts ...Option) (*Plan, error) {
	if epochCount <= 0 {
		return nil, fmt.Errorf("%w: epoch count %d", ErrInvalidConfiguration, epochCount)
	}
	if blockCount <= 0 {
		return nil, fmt.Errorf("%w: block count %d", ErrInvalidConfiguration, blockCount)
	}
	if totalSize < 0 {
		return nil, fmt.Errorf("%w: total size %d", ErrInvalidConfiguration, totalSize)
	}

	o := &options{
		logger: slog.Default(),
		trace:  IndexTrace{},
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if !o.trace.covers(totalSize) {
		return nil, fmt.Errorf("%w: %s trace does not cover %d work items", ErrInvalidConfiguration, o.trace.mode(), totalSize)
	}

	epochRanges, err := Partition(totalSize, 0, epochCount)
	if err != nil {
		return nil, err
	}

	p := &Plan{Epochs: make([]Epoch, 0, len(epochRanges))}
	for _, epochRange := range epochRanges {
		blocks, err := Partition(epochRange.Len(), epochRange.Start, blockCount)
		if err != nil {
			return nil, err
		}
		p.Epochs = append(p.Epochs, Epoch{
			Start:  epochRange.Start,
			End:    epochRange.End,
			Blocks: blocks,
		})
	}

	if err := p.Log(o.logger, o.trace); err != nil {
		return nil, err
	}
	return p, nil
}
