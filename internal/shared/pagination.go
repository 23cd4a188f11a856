package shared

import (
	"math"
	"strconv"
)

// DefaultPageSize bounds listings when the client sends no size.
const DefaultPageSize = 10

// Ellipsis is the reserved page-window token standing in for collapsed
// page numbers. It is never clickable.
const Ellipsis = "..."

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes pagination metadata.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a further page exists.
func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// Window derives the page window from pagination metadata.
func (p Pagination) Window() []string {
	return PageWindow(p.TotalPages, p.Page)
}

// PageWindow renders the bounded, ellipsis-collapsed sequence of page
// tokens shown by pagination controls. Every non-ellipsis token is the
// decimal form of a reachable page number.
//
// Up to seven pages all buttons are shown. Eight pages collapse around
// whichever half the current page sits in. Beyond eight, the window
// keeps the first and last page visible and centres on the current page.
func PageWindow(totalPages, currentPage int) []string {
	if totalPages <= 0 {
		return []string{}
	}

	if totalPages <= 7 {
		return pageRange(1, totalPages)
	}

	if totalPages == 8 {
		if currentPage <= 4 {
			return append(pageRange(1, 5), Ellipsis, "8")
		}
		return append([]string{"1", Ellipsis}, pageRange(4, 8)...)
	}

	switch {
	case currentPage <= 4:
		return append(pageRange(1, 5), Ellipsis, strconv.Itoa(totalPages))
	case currentPage >= totalPages-3:
		return append([]string{"1", Ellipsis}, pageRange(totalPages-4, totalPages)...)
	default:
		return []string{
			"1",
			Ellipsis,
			strconv.Itoa(currentPage - 1),
			strconv.Itoa(currentPage),
			strconv.Itoa(currentPage + 1),
			Ellipsis,
			strconv.Itoa(totalPages),
		}
	}
}

func pageRange(from, to int) []string {
	tokens := make([]string, 0, to-from+1)
	for page := from; page <= to; page++ {
		tokens = append(tokens, strconv.Itoa(page))
	}
	return tokens
}
