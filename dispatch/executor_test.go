package dispatch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/poiesic/termgraph/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildPlan(t *testing.T, size, epochs, blocks int) *plan.Plan {
	t.Helper()
	p, err := plan.Build(size, epochs, blocks, plan.WithLogger(quietLogger()))
	require.NoError(t, err)
	return p
}

func newExecutor(t *testing.T, opts ...Option) *Executor {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	e, err := NewExecutor(opts...)
	require.NoError(t, err)
	return e
}

func TestRun_CoversEveryItemOnce(t *testing.T) {
	p := buildPlan(t, 103, 4, 3)
	e := newExecutor(t)

	var mu sync.Mutex
	seen := make([]int, 103)
	err := e.Run(context.Background(), p, func(ctx context.Context, epoch int, block plan.Range) error {
		mu.Lock()
		defer mu.Unlock()
		for i := block.Start; i < block.End; i++ {
			seen[i]++
		}
		return nil
	})
	require.NoError(t, err)
	for i, count := range seen {
		assert.Equal(t, 1, count, "item %d", i)
	}
}

func TestRun_EpochsAreSequential(t *testing.T) {
	p := buildPlan(t, 20, 2, 2)
	e := newExecutor(t)

	var mu sync.Mutex
	var order []int
	var finishedFirst atomic.Int32
	err := e.Run(context.Background(), p, func(ctx context.Context, epoch int, block plan.Range) error {
		if epoch == 1 {
			assert.Equal(t, int32(2), finishedFirst.Load(), "epoch 1 started before epoch 0 finished")
		}
		mu.Lock()
		order = append(order, epoch)
		mu.Unlock()
		if epoch == 0 {
			finishedFirst.Add(1)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1}, order)
}

func TestRun_JoinsBlockErrorsAndStops(t *testing.T) {
	p := buildPlan(t, 20, 2, 2)
	e := newExecutor(t)

	errA := errors.New("a")
	errB := errors.New("b")
	var calls atomic.Int32
	err := e.Run(context.Background(), p, func(ctx context.Context, epoch int, block plan.Range) error {
		calls.Add(1)
		if block.Start == 0 {
			return errA
		}
		return errB
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRun_RecoversPanics(t *testing.T) {
	p := buildPlan(t, 4, 1, 2)
	e := newExecutor(t)

	err := e.Run(context.Background(), p, func(ctx context.Context, epoch int, block plan.Range) error {
		if block.Start == 0 {
			panic("boom")
		}
		return nil
	})
	assert.ErrorIs(t, err, ErrBlockPanicked)
}

func TestRun_CancelledContext(t *testing.T) {
	p := buildPlan(t, 20, 2, 2)
	e := newExecutor(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	err := e.Run(ctx, p, func(ctx context.Context, epoch int, block plan.Range) error {
		calls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestRun_StartEpochAndEpochDone(t *testing.T) {
	p := buildPlan(t, 30, 3, 2)
	e := newExecutor(t)

	var mu sync.Mutex
	var epochs []int
	var done []int
	err := e.Run(context.Background(), p, func(ctx context.Context, epoch int, block plan.Range) error {
		mu.Lock()
		epochs = append(epochs, epoch)
		mu.Unlock()
		return nil
	}, WithStartEpoch(1), WithEpochDone(func(epoch int) error {
		done = append(done, epoch)
		return nil
	}))
	require.NoError(t, err)
	sort.Ints(epochs)
	assert.Equal(t, []int{1, 1, 2, 2}, epochs)
	assert.Equal(t, []int{1, 2}, done)
}

func TestRun_EpochDoneErrorStops(t *testing.T) {
	p := buildPlan(t, 30, 3, 1)
	e := newExecutor(t)

	stop := errors.New("stop")
	var calls atomic.Int32
	err := e.Run(context.Background(), p, func(ctx context.Context, epoch int, block plan.Range) error {
		calls.Add(1)
		return nil
	}, WithEpochDone(func(epoch int) error { return stop }))
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRun_InvalidArguments(t *testing.T) {
	p := buildPlan(t, 10, 1, 1)
	e := newExecutor(t)
	noop := func(context.Context, int, plan.Range) error { return nil }

	assert.ErrorIs(t, e.Run(context.Background(), nil, noop), ErrNilPlan)
	assert.ErrorIs(t, e.Run(context.Background(), p, nil), ErrNilBlockFunc)
	assert.ErrorIs(t, e.Run(context.Background(), p, noop, WithStartEpoch(2)), ErrInvalidStartEpoch)
	assert.ErrorIs(t, e.Run(context.Background(), p, noop, WithStartEpoch(-1)), ErrInvalidStartEpoch)
	assert.NoError(t, e.Run(context.Background(), p, noop, WithStartEpoch(1)))
}

func TestRun_EmptyPlan(t *testing.T) {
	p := buildPlan(t, 0, 2, 2)
	e := newExecutor(t)

	err := e.Run(context.Background(), p, func(context.Context, int, plan.Range) error {
		t.Fatal("no block expected")
		return nil
	})
	assert.NoError(t, err)
}

func TestRun_ReportsProgress(t *testing.T) {
	p := buildPlan(t, 10, 2, 2)
	var buf bytes.Buffer
	e := newExecutor(t, WithProgress(&buf, 1), WithPoolSize(1))

	err := e.Run(context.Background(), p, func(context.Context, int, plan.Range) error { return nil })
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "10/10")
	assert.Contains(t, buf.String(), "\n")
}
