package shared

import "strings"

// SortDirection orders comparisons ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// Valid reports whether d is one of the two known directions.
func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// NormalizeString prepares a string for comparison and matching.
func NormalizeString(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CompareStrings compares two strings after trimming and lower-casing.
// Ascending returns 1 when a sorts after b, -1 when before, 0 on a tie;
// descending inverts the sign. Ties must be broken by a stable sort on
// the caller's side.
func CompareStrings(direction SortDirection, a, b string) int {
	return compareOrdered(direction, NormalizeString(a), NormalizeString(b))
}

// CompareNumbers compares two numbers. Missing values are the caller's
// problem: default them to zero before calling.
func CompareNumbers(direction SortDirection, a, b float64) int {
	return compareOrdered(direction, a, b)
}

func compareOrdered[T string | float64](direction SortDirection, a, b T) int {
	result := 0
	switch {
	case a > b:
		result = 1
	case a < b:
		result = -1
	}
	if direction == SortDesc {
		return -result
	}
	return result
}
