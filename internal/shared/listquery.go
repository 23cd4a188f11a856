package shared

import (
	"net/url"
	"strconv"
)

// Query string keys understood by list endpoints. The same keys appear
// in the dashboard address bar so list state survives reload and can be
// shared as a link.
const (
	ParamKeyword  = "keyword"
	ParamFilter   = "filter"
	ParamSort     = "sort"
	ParamOrder    = "order"
	ParamPage     = "page"
	ParamPageSize = "pageSize"
)

// ListQuery captures the view state of a searchable, sortable,
// paginated listing. Empty keyword or filter means "no filter".
type ListQuery struct {
	Keyword       string
	Filter        string
	SortField     string
	SortDirection SortDirection
	Page          int
	PageSize      int
}

// ParseListQuery reads list view state from URL query values. Absent or
// malformed numbers fall back to the first page and the default size.
func ParseListQuery(values url.Values) ListQuery {
	q := ListQuery{
		Keyword:       NormalizeString(values.Get(ParamKeyword)),
		Filter:        values.Get(ParamFilter),
		SortField:     values.Get(ParamSort),
		SortDirection: SortDirection(values.Get(ParamOrder)),
		Page:          1,
		PageSize:      DefaultPageSize,
	}
	if !q.SortDirection.Valid() {
		q.SortDirection = SortAsc
	}
	if page, err := strconv.Atoi(values.Get(ParamPage)); err == nil && page > 0 {
		q.Page = page
	}
	if size, err := strconv.Atoi(values.Get(ParamPageSize)); err == nil && size > 0 {
		q.PageSize = size
	}
	return q
}

// Values encodes the query back into URL values, omitting defaults so
// generated links stay short. Writing these values to the address bar
// does not itself refetch anything; the read value feeding a cache key
// does.
func (q ListQuery) Values() url.Values {
	values := url.Values{}
	if q.Keyword != "" {
		values.Set(ParamKeyword, q.Keyword)
	}
	if q.Filter != "" {
		values.Set(ParamFilter, q.Filter)
	}
	if q.SortField != "" {
		values.Set(ParamSort, q.SortField)
		values.Set(ParamOrder, string(q.SortDirection))
	}
	if q.Page > 1 {
		values.Set(ParamPage, strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 && q.PageSize != DefaultPageSize {
		values.Set(ParamPageSize, strconv.Itoa(q.PageSize))
	}
	return values
}

// WithSort returns the query sorted by field, flipping the direction
// when the same field is selected again and resetting to ascending when
// a new field is chosen.
func (q ListQuery) WithSort(field string) ListQuery {
	if q.SortField == field {
		q.SortDirection = q.SortDirection.Toggle()
	} else {
		q.SortField = field
		q.SortDirection = SortAsc
	}
	return q
}
