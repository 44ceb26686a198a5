package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iv(t *testing.T, startHour, startMin, endHour, endMin int) TimeInterval {
	t.Helper()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	interval, err := NewTimeInterval(
		day.Add(time.Duration(startHour)*time.Hour+time.Duration(startMin)*time.Minute),
		day.Add(time.Duration(endHour)*time.Hour+time.Duration(endMin)*time.Minute),
	)
	require.NoError(t, err)
	return interval
}

func TestNewTimeInterval_RejectsInverted(t *testing.T) {
	day := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := NewTimeInterval(day, day)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeInterval(day.Add(time.Hour), day)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestTimeInterval_Overlaps(t *testing.T) {
	base := iv(t, 10, 0, 11, 0)

	assert.True(t, base.Overlaps(iv(t, 10, 30, 11, 30)))
	assert.True(t, base.Overlaps(iv(t, 9, 0, 10, 1)))
	// Touching boundaries are not an overlap for half-open intervals.
	assert.False(t, base.Overlaps(iv(t, 9, 0, 10, 0)))
	assert.False(t, base.Overlaps(iv(t, 11, 0, 12, 0)))
}

func TestIntersectIntervals_Commutative(t *testing.T) {
	a := []TimeInterval{iv(t, 9, 0, 12, 0), iv(t, 14, 0, 18, 0)}
	b := []TimeInterval{iv(t, 10, 0, 15, 0)}

	ab := IntersectIntervals(a, b)
	ba := IntersectIntervals(b, a)

	require.Equal(t, ab, ba)
	require.Len(t, ab, 2)
	assert.True(t, ab[0].Equal(iv(t, 10, 0, 12, 0)))
	assert.True(t, ab[1].Equal(iv(t, 14, 0, 15, 0)))
}

func TestIntersectIntervals_ResultContainedInBothInputs(t *testing.T) {
	a := []TimeInterval{iv(t, 8, 0, 10, 30), iv(t, 11, 0, 13, 0), iv(t, 15, 0, 20, 0)}
	b := []TimeInterval{iv(t, 9, 15, 11, 45), iv(t, 12, 0, 16, 0)}

	result := IntersectIntervals(a, b)
	require.NotEmpty(t, result)

	for _, r := range result {
		assert.True(t, r.Start.Before(r.End), "result interval must be non-empty")

		containedInA := false
		for _, src := range a {
			if src.Contains(r) {
				containedInA = true
			}
		}
		containedInB := false
		for _, src := range b {
			if src.Contains(r) {
				containedInB = true
			}
		}
		assert.True(t, containedInA, "interval %v not contained in A", r)
		assert.True(t, containedInB, "interval %v not contained in B", r)
	}

	// Result is sorted and pairwise disjoint.
	for i := 1; i < len(result); i++ {
		assert.False(t, result[i].Start.Before(result[i-1].End))
	}
}

func TestIntersectIntervals_EmptyInput(t *testing.T) {
	a := []TimeInterval{iv(t, 9, 0, 17, 0)}

	assert.Empty(t, IntersectIntervals(a, nil))
	assert.Empty(t, IntersectIntervals(nil, a))
	assert.Empty(t, IntersectIntervals(nil, nil))
}

func TestIntersectIntervals_UnsortedInputs(t *testing.T) {
	a := []TimeInterval{iv(t, 14, 0, 16, 0), iv(t, 9, 0, 11, 0)}
	b := []TimeInterval{iv(t, 10, 0, 15, 0)}

	result := IntersectIntervals(a, b)
	require.Len(t, result, 2)
	assert.True(t, result[0].Equal(iv(t, 10, 0, 11, 0)))
	assert.True(t, result[1].Equal(iv(t, 14, 0, 15, 0)))
}

func TestMergeDedupSlots(t *testing.T) {
	x := []TimeInterval{iv(t, 9, 0, 10, 0), iv(t, 10, 0, 11, 0)}
	y := []TimeInterval{iv(t, 10, 0, 11, 0), iv(t, 9, 30, 10, 30)}

	xy := MergeDedupSlots(x, y)
	yx := MergeDedupSlots(y, x)

	assert.Equal(t, xy, yx, "merge must be commutative")
	require.Len(t, xy, 3)
	assert.True(t, xy[0].Equal(iv(t, 9, 0, 10, 0)))
	assert.True(t, xy[1].Equal(iv(t, 9, 30, 10, 30)))
	assert.True(t, xy[2].Equal(iv(t, 10, 0, 11, 0)))
}

func TestShiftAssignment_IsContiguous(t *testing.T) {
	assert.True(t, ShiftAssignment{Hours: []int{9, 10, 11}}.IsContiguous())
	assert.True(t, ShiftAssignment{Hours: []int{11, 9, 10}}.IsContiguous())
	assert.True(t, ShiftAssignment{}.IsContiguous())
	assert.False(t, ShiftAssignment{Hours: []int{9, 11}}.IsContiguous())
}
