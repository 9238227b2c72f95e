package entities

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexBetween(t *testing.T) {
	tests := []struct {
		name     string
		prev     int64
		next     int64
		expected int64
		wantErr  bool
	}{
		{name: "midpoint", prev: 0, next: 1000, expected: 500},
		{name: "odd gap rounds down", prev: 0, next: 5, expected: 2},
		{name: "bookend gap", prev: 0, next: EndBookendIndex, expected: 500_000},
		{name: "gap of two", prev: 4, next: 6, expected: 5},
		{name: "adjacent", prev: 5, next: 6, wantErr: true},
		{name: "equal", prev: 7, next: 7, wantErr: true},
		{name: "reversed", prev: 9, next: 3, wantErr: true},
		{name: "large values do not overflow", prev: math.MaxInt64 - 10, next: math.MaxInt64, expected: math.MaxInt64 - 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IndexBetween(tt.prev, tt.next)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrIndexExhausted)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIndexAfter(t *testing.T) {
	got, err := IndexAfter(500)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), got)

	_, err = IndexAfter(math.MaxInt64 - 1)
	require.ErrorIs(t, err, ErrIndexExhausted)
}

func TestIndexBetween_RepeatedInsertionExhausts(t *testing.T) {
	prev, next := int64(0), int64(1000)
	insertions := 0
	for {
		mid, err := IndexBetween(prev, next)
		if err != nil {
			require.ErrorIs(t, err, ErrIndexExhausted)
			break
		}
		assert.Greater(t, mid, prev)
		assert.Less(t, mid, next)
		next = mid
		insertions++
	}
	assert.Equal(t, 9, insertions)
}

func TestNextSiblingIndex(t *testing.T) {
	tests := []struct {
		indices []int64
		want    int64
	}{
		{nil, 0},
		{[]int64{0}, 1},
		{[]int64{3, 7, 1}, 8},
		{[]int64{math.MaxInt64 - 1}, math.MaxInt64},
	}

	for _, tt := range tests {
		got, err := NextSiblingIndex(tt.indices)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestNextSiblingIndex_AtMaxInt64(t *testing.T) {
	_, err := NextSiblingIndex([]int64{4, math.MaxInt64, 2})
	assert.ErrorIs(t, err, ErrIndexExhausted)
}
