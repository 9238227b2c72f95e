package entities

import (
	"errors"
	"math"
)

// Chronological index layout. Bookends sit at the extremes so that every
// period inserted between them sorts inside the frame.
const (
	StartBookendIndex int64 = 0
	EndBookendIndex   int64 = 1_000_000
	IndexGap          int64 = 1000
)

// ErrIndexExhausted is returned when no integer key is left for an insertion.
// Repeated midpoint insertion between the same neighbours halves the gap each
// time, so a dense region runs out after roughly log2(gap) insertions.
var ErrIndexExhausted = errors.New("no chronological index left at this position")

// IndexAfter returns the index for an item appended after prev.
func IndexAfter(prev int64) (int64, error) {
	if prev > math.MaxInt64-IndexGap {
		return 0, ErrIndexExhausted
	}
	return prev + IndexGap, nil
}

// IndexBetween returns the midpoint between two neighbouring indices.
func IndexBetween(prev, next int64) (int64, error) {
	if next <= prev {
		return 0, ErrIndexExhausted
	}
	mid := prev + (next-prev)/2
	if mid <= prev || mid >= next {
		return 0, ErrIndexExhausted
	}
	return mid, nil
}

// NextSiblingIndex returns max(indices)+1, or 0 for an empty list. It fails
// with ErrIndexExhausted when the largest index is already MaxInt64.
func NextSiblingIndex(indices []int64) (int64, error) {
	if len(indices) == 0 {
		return 0, nil
	}
	maxIndex := indices[0]
	for _, idx := range indices[1:] {
		maxIndex = max(maxIndex, idx)
	}
	if maxIndex == math.MaxInt64 {
		return 0, ErrIndexExhausted
	}
	return maxIndex + 1, nil
}
