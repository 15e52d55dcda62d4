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

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/termgraph/plan"
)

// BlockFunc processes one block of an epoch.
type BlockFunc func(ctx context.Context, epoch int, block plan.Range) error

// Executor runs plans on an ants worker pool.
type Executor struct {
	poolSize       int
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor) error

// WithPoolSize fixes the number of workers.
// Default is the width of the plan being run.
func WithPoolSize(size int) Option {
	return func(e *Executor) error {
		if size < 1 {
			size = 1
		}
		e.poolSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithProgress reports the number of finished items to w every interval items.
func WithProgress(w io.Writer, interval int) Option {
	return func(e *Executor) error {
		if interval < 1 {
			interval = 1
		}
		e.progress = w
		e.reportInterval = interval
		return nil
	}
}

// NewExecutor creates an Executor.
func NewExecutor(opts ...Option) (*Executor, error) {
	e := &Executor{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "dispatch")
	return e, nil
}

type runConfig struct {
	startEpoch int
	epochDone  func(epoch int) error
}

// RunOption configures a single Run.
type RunOption func(*runConfig)

// WithStartEpoch skips the epochs before start, which a previous run
// already completed.
func WithStartEpoch(start int) RunOption {
	return func(c *runConfig) {
		c.startEpoch = start
	}
}

// WithEpochDone registers fn to be called after every successful epoch.
// An error from fn stops the run.
func WithEpochDone(fn func(epoch int) error) RunOption {
	return func(c *runConfig) {
		c.epochDone = fn
	}
}

// Run executes every block of p with fn.
func (e *Executor) Run(ctx context.Context, p *plan.Plan, fn BlockFunc, opts ...RunOption) error {
	if p == nil {
		return ErrNilPlan
	}
	if fn == nil {
		return ErrNilBlockFunc
	}
	cfg := &runConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.startEpoch < 0 || cfg.startEpoch > len(p.Epochs) {
		return fmt.Errorf("%w: %d of %d epochs", ErrInvalidStartEpoch, cfg.startEpoch, len(p.Epochs))
	}

	poolSize := e.poolSize
	if poolSize == 0 {
		poolSize = max(p.Width(), 1)
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return err
	}
	defer pool.Release()

	var tracker *ProgressTracker
	if e.progress != nil {
		remaining := 0
		for _, epoch := range p.Epochs[cfg.startEpoch:] {
			remaining += epoch.Range().Len()
		}
		tracker = NewProgressTracker(e.progress, remaining, e.reportInterval)
		tracker.Start()
		defer tracker.Finish()
	}

	if cfg.startEpoch > 0 {
		e.logger.Info("resuming plan", "start_epoch", cfg.startEpoch, "epochs", len(p.Epochs))
	}

	for i := cfg.startEpoch; i < len(p.Epochs); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		epoch := p.Epochs[i]
		e.logger.Debug("starting epoch", "epoch", i, "blocks", len(epoch.Blocks))

		if err := e.runEpoch(ctx, pool, i, epoch, fn, tracker); err != nil {
			e.logger.Error("epoch failed", "epoch", i, "err", err)
			return fmt.Errorf("epoch %d: %w", i, err)
		}
		if cfg.epochDone != nil {
			if err := cfg.epochDone(i); err != nil {
				return fmt.Errorf("epoch %d: %w", i, err)
			}
		}
	}
	return nil
}

func (e *Executor) runEpoch(ctx context.Context, pool *ants.Pool, index int, epoch plan.Epoch, fn BlockFunc, tracker *ProgressTracker) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for _, block := range epoch.Blocks {
		if err := ctx.Err(); err != nil {
			record(err)
			break
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					record(fmt.Errorf("%w: block %s: %v", ErrBlockPanicked, block, r))
				}
			}()
			if err := fn(ctx, index, block); err != nil {
				record(fmt.Errorf("block %s: %w", block, err))
				return
			}
			if tracker != nil {
				tracker.Increment(block.Len())
			}
		})
		if err != nil {
			wg.Done()
			record(err)
			break
		}
	}
	wg.Wait()
	return errors.Join(errs...)
}
