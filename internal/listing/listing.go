// Package listing shapes server collections into renderable list pages:
// keyword matching across configured fields, stable sorting through a
// closed set of typed accessors, status partitioning, and page slicing.
package listing

import (
	"sort"
	"strings"

	"github.com/vaulta/vaulta/internal/shared"
)

// StringField extracts a searchable or sortable string from a record.
type StringField[T any] func(T) string

// NumberField extracts a sortable number from a record. Missing values
// must be defaulted to zero by the accessor.
type NumberField[T any] func(T) float64

// SortFields is the closed mapping from sort-field names to accessors.
// A name resolves to exactly one accessor; unknown names leave the
// collection order untouched.
type SortFields[T any] struct {
	Strings map[string]StringField[T]
	Numbers map[string]NumberField[T]
}

// Match reports whether any of the fields contains the keyword. The
// keyword is expected pre-normalized (shared.NormalizeString); field
// values are normalized here. An empty keyword matches everything.
func Match[T any](record T, keyword string, fields []StringField[T]) bool {
	if keyword == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(shared.NormalizeString(field(record)), keyword) {
			return true
		}
	}
	return false
}

// Filter returns the records matching keyword in at least one field,
// preserving collection order.
func Filter[T any](records []T, keyword string, fields []StringField[T]) []T {
	if keyword == "" {
		return records
	}
	matched := make([]T, 0, len(records))
	for _, record := range records {
		if Match(record, keyword, fields) {
			matched = append(matched, record)
		}
	}
	return matched
}

// Sort orders a copy of records by the named field. Ties and unknown
// field names keep the incoming order (sort.SliceStable).
func Sort[T any](records []T, field string, direction shared.SortDirection, fields SortFields[T]) []T {
	sorted := make([]T, len(records))
	copy(sorted, records)

	if accessor, ok := fields.Strings[field]; ok {
		sort.SliceStable(sorted, func(i, j int) bool {
			return shared.CompareStrings(direction, accessor(sorted[i]), accessor(sorted[j])) < 0
		})
		return sorted
	}
	if accessor, ok := fields.Numbers[field]; ok {
		sort.SliceStable(sorted, func(i, j int) bool {
			return shared.CompareNumbers(direction, accessor(sorted[i]), accessor(sorted[j])) < 0
		})
	}
	return sorted
}

// Partition splits records into the primary list and a history bucket.
// Records satisfying archived go to history.
func Partition[T any](records []T, archived func(T) bool) (primary, history []T) {
	primary = make([]T, 0, len(records))
	history = make([]T, 0)
	for _, record := range records {
		if archived(record) {
			history = append(history, record)
		} else {
			primary = append(primary, record)
		}
	}
	return primary, history
}

// Page is one renderable slice of a shaped collection.
type Page[T any] struct {
	Rows       []T               `json:"rows"`
	Pagination shared.Pagination `json:"pagination"`
	Window     []string          `json:"window"`
	HasPrev    bool              `json:"hasPrev"`
	HasNext    bool              `json:"hasNext"`
}

// Slice cuts the shaped collection down to the requested page. An
// out-of-range page yields empty rows with prev/next flags still
// reflecting the real bounds; it never fails.
func Slice[T any](records []T, page, pageSize int) Page[T] {
	p := shared.NewPagination(page, pageSize, len(records))

	start := (p.Page - 1) * p.PerPage
	end := start + p.PerPage
	rows := []T{}
	if start < len(records) {
		if end > len(records) {
			end = len(records)
		}
		rows = records[start:end]
	}

	return Page[T]{
		Rows:       rows,
		Pagination: p,
		Window:     p.Window(),
		HasPrev:    p.HasPrev(),
		HasNext:    p.HasNext(),
	}
}

// View composes filter, sort, and slice into a single page derivation.
func View[T any](records []T, query shared.ListQuery, searchable []StringField[T], sortable SortFields[T]) Page[T] {
	shaped := Filter(records, query.Keyword, searchable)
	if query.SortField != "" {
		shaped = Sort(shaped, query.SortField, query.SortDirection, sortable)
	}
	return Slice(shaped, query.Page, query.PageSize)
}
