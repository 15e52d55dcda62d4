package plan

import "errors"

// ErrInvalidConfiguration is returned when a partition or plan is requested
// with a negative size, a non-positive chunk count, or grouped work that does
// not match the planned size.
var ErrInvalidConfiguration = errors.New("invalid plan configuration")
