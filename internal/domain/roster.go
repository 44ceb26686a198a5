package domain

import "sort"

// CoverageRequirement is the minimum staff count needed during one hour,
// derived from forecast demand. Not persisted by this service.
type CoverageRequirement struct {
	Date     DateKey
	Hour     int
	Required int
}

// ShiftAssignment is the set of hours one staff member works on one date.
type ShiftAssignment struct {
	StaffID int64
	Date    DateKey
	Hours   []int // sorted ascending
}

// SortedHours returns the assigned hours in ascending order without
// mutating the assignment.
func (a ShiftAssignment) SortedHours() []int {
	hours := make([]int, len(a.Hours))
	copy(hours, a.Hours)
	sort.Ints(hours)
	return hours
}

// IsContiguous reports whether the assigned hours form a single shift
// without gaps. An empty assignment is contiguous.
func (a ShiftAssignment) IsContiguous() bool {
	hours := a.SortedHours()
	for i := 1; i < len(hours); i++ {
		if hours[i] != hours[i-1]+1 {
			return false
		}
	}
	return true
}

// CustomerPreference is a customer's standing attitude toward a specialist.
type CustomerPreference struct {
	CustomerID   int64
	SpecialistID int64
	Rating       *int // 1..5, nil when the customer never rated the specialist
	Preferred    bool
	Disliked     bool
}
