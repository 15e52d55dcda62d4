package dispatch

import "errors"

var (
	// ErrNilPlan is returned when Run is called without a plan.
	ErrNilPlan = errors.New("plan is required")

	// ErrNilBlockFunc is returned when Run is called without a block function.
	ErrNilBlockFunc = errors.New("block function is required")

	// ErrBlockPanicked wraps a panic raised by a block function.
	ErrBlockPanicked = errors.New("block panicked")

	// ErrInvalidStartEpoch is returned when the start epoch is outside the plan.
	ErrInvalidStartEpoch = errors.New("invalid start epoch")
)
