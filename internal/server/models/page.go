package models

import "fmt"

// DefaultPageSize applies when a listing request does not specify a size.
const DefaultPageSize = 10

// PageRequest is a zero-based page index plus a positive page size.
type PageRequest struct {
	Page int
	Size int
}

// Normalized clamps the request to valid values: negative pages become 0 and
// non-positive sizes fall back to DefaultPageSize.
func (p PageRequest) Normalized() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	return p
}

// Offset returns the row offset of the requested page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one page of a listing plus the metadata needed to walk the full
// result set.
type Page[T any] struct {
	Items         []T
	TotalElements int64
	Page          int
	Size          int
	First         bool
	Last          bool
}

// NewPage assembles a Page from the rows of the requested slice and the total
// row count of the underlying result set.
func NewPage[T any](items []T, total int64, req PageRequest) *Page[T] {
	return &Page[T]{
		Items:         items,
		TotalElements: total,
		Page:          req.Page,
		Size:          req.Size,
		First:         req.Page == 0,
		Last:          int64(req.Page+1)*int64(req.Size) >= total,
	}
}

// DeletePolicy selects how the resource engine ends a record's lifecycle.
type DeletePolicy string

const (
	// DeleteSoft flags the record inactive and keeps the row for history.
	DeleteSoft DeletePolicy = "soft"
	// DeleteHard removes the row permanently.
	DeleteHard DeletePolicy = "hard"
)

// ParseDeletePolicy validates a policy string from configuration.
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch DeletePolicy(s) {
	case DeleteSoft, DeleteHard:
		return DeletePolicy(s), nil
	default:
		return "", fmt.Errorf("unknown delete policy: %q", s)
	}
}
