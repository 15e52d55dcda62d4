package plan

import "fmt"

// Range is the half-open interval of indices [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int { return r.End - r.Start }

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Partition splits [startOffset, startOffset+size) into at most chunkCount
// contiguous ranges. Every range but the last has length size/chunkCount; the
// last one absorbs the remainder. When size < chunkCount the ranges have
// length one and fewer than chunkCount of them are returned.
func Partition(size, startOffset, chunkCount int) ([]Range, error) {
	if chunkCount <= 0 {
		return nil, fmt.Errorf("%w: chunk count %d", ErrInvalidConfiguration, chunkCount)
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidConfiguration, size)
	}

	base := 1
	if size >= chunkCount {
		base = size / chunkCount
	}

	boundary := (chunkCount - 1) * base
	limit := min(boundary, size)

	ranges := make([]Range, 0, min(chunkCount, size))
	for i := 0; i < limit; i += base {
		ranges = append(ranges, Range{Start: startOffset + i, End: startOffset + i + base})
	}
	if boundary < size {
		ranges = append(ranges, Range{Start: startOffset + boundary, End: startOffset + size})
	}
	return ranges, nil
}
