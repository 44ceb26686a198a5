package domain

import (
	"fmt"
	"sort"
	"time"
)

// TimeInterval is a half-open time span [Start, End).
// Immutable value type; Start must be strictly before End.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// NewTimeInterval validates and constructs an interval.
func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	if !end.After(start) {
		return TimeInterval{}, fmt.Errorf("%w: start %s is not before end %s",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeInterval{Start: start, End: end}, nil
}

// Duration returns the interval length.
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether two half-open intervals actually intersect.
// Intervals that merely touch at a boundary do not overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether other lies fully within i.
func (i TimeInterval) Contains(other TimeInterval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Equal reports exact equality of both endpoints.
func (i TimeInterval) Equal(other TimeInterval) bool {
	return i.Start.Equal(other.Start) && i.End.Equal(other.End)
}

// IntersectIntervals computes the pairwise intersection of two interval sets.
// Both inputs are sorted by start (stably, without mutating the arguments),
// then swept with two pointers emitting [max(start), min(end)) for each
// overlapping pair. The result is sorted and pairwise disjoint as long as the
// intervals within each input set are disjoint.
func IntersectIntervals(a, b []TimeInterval) []TimeInterval {
	if len(a) == 0 || len(b) == 0 {
		return []TimeInterval{}
	}

	as := sortedCopy(a)
	bs := sortedCopy(b)

	result := make([]TimeInterval, 0)
	i, j := 0, 0

	for i < len(as) && j < len(bs) {
		start := maxTime(as[i].Start, bs[j].Start)
		end := minTime(as[i].End, bs[j].End)

		if start.Before(end) {
			result = append(result, TimeInterval{Start: start, End: end})
		}

		// Advance whichever interval ends first.
		if as[i].End.Before(bs[j].End) {
			i++
		} else {
			j++
		}
	}

	return result
}

// MergeDedupSlots unions slot sets, dropping exact duplicates (same start and
// end) and returning the result sorted by start, then end. The operation is
// commutative: input order does not affect the result.
func MergeDedupSlots(sets ...[]TimeInterval) []TimeInterval {
	seen := make(map[int64]map[int64]struct{})
	merged := make([]TimeInterval, 0)

	for _, set := range sets {
		for _, slot := range set {
			startKey := slot.Start.UnixNano()
			endKey := slot.End.UnixNano()

			ends, ok := seen[startKey]
			if !ok {
				ends = make(map[int64]struct{})
				seen[startKey] = ends
			}
			if _, dup := ends[endKey]; dup {
				continue
			}
			ends[endKey] = struct{}{}
			merged = append(merged, slot)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].Start.Equal(merged[j].Start) {
			return merged[i].Start.Before(merged[j].Start)
		}
		return merged[i].End.Before(merged[j].End)
	})

	return merged
}

func sortedCopy(intervals []TimeInterval) []TimeInterval {
	cp := make([]TimeInterval, len(intervals))
	copy(cp, intervals)
	sort.SliceStable(cp, func(i, j int) bool {
		return cp[i].Start.Before(cp[j].Start)
	})
	return cp
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
