package utils

import (
	"math"
	"time"
)

// Pagination represents the pagination details.
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// CreatePagination creates a Pagination object.
func CreatePagination(totalItems, page, pageSize int) *Pagination {
	if pageSize <= 0 {
		pageSize = 10 // Default page size
	}
	if page <= 0 {
		page = 1 // Default page
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	return &Pagination{
		TotalItems:  totalItems,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}
}

// PointerToString dereferences a *string for logging, returning "<nil>"
// for a nil pointer.
func PointerToString(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

var flexibleTimeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseFlexibleTime parses a timestamp in any of the formats clients
// commonly send (RFC3339 variants and bare dates).
func ParseFlexibleTime(value string) (time.Time, error) {
	var lastErr error
	for _, format := range flexibleTimeFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}
