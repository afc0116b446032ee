// Package queries contains read-only operations over the persistence layer.
// Query handlers bypass the domain aggregates and read projection rows
// directly, per the CQRS split used across the application.
package queries

import (
	"fmt"

	"pharmacy/internal/pkg/errs"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Pagination carries page-based slicing and sorting for listing queries.
// The zero value is replaced with the defaults by NewPagination.
type Pagination struct {
	page      int
	limit     int
	sortBy    string
	sortOrder string
}

// NewPagination validates and normalizes paging parameters. Zero page and
// limit select the defaults; sortBy must be one of the caller-approved
// columns passed in allowedSortColumns.
func NewPagination(page, limit int, sortBy, sortOrder string, allowedSortColumns []string) (Pagination, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = defaultPageLimit
	}
	if page < 1 {
		return Pagination{}, errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}
	if limit < 1 || limit > maxPageLimit {
		return Pagination{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxPageLimit)
	}

	if sortOrder == "" {
		sortOrder = "desc"
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		return Pagination{}, errs.NewValueIsInvalidErrorWithCause("sortOrder",
			fmt.Errorf("%q is not asc or desc", sortOrder))
	}

	if sortBy == "" && len(allowedSortColumns) > 0 {
		sortBy = allowedSortColumns[0]
	}
	allowed := false
	for _, column := range allowedSortColumns {
		if sortBy == column {
			allowed = true
			break
		}
	}
	if !allowed {
		return Pagination{}, errs.NewValueIsInvalidErrorWithCause("sortBy",
			fmt.Errorf("%q is not a sortable column", sortBy))
	}

	return Pagination{page: page, limit: limit, sortBy: sortBy, sortOrder: sortOrder}, nil
}

// Page returns the 1-based page index.
func (p Pagination) Page() int {
	return p.page
}

// Limit returns the page size.
func (p Pagination) Limit() int {
	return p.limit
}

// Offset returns the row offset for the page.
func (p Pagination) Offset() int {
	return (p.page - 1) * p.limit
}

// OrderBy returns the validated ORDER BY fragment. Both parts were checked
// against allow-lists in NewPagination, so interpolation is safe here.
func (p Pagination) OrderBy() string {
	return p.sortBy + " " + p.sortOrder
}

// Pages returns the page count for the given total row count.
func (p Pagination) Pages(total int) int {
	if total == 0 {
		return 0
	}
	return (total + p.limit - 1) / p.limit
}
