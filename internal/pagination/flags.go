package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/catalogctl/internal/api"
)

// Pagination defaults and validation limits.
const (
	DefaultLimit     = 50
	MaxLimit         = 1000
	DefaultOffset    = 0
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidLimit      = fmt.Errorf("limit must be between 1 and %d", MaxLimit)
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
)

// Params holds CLI pagination flags. Two modes are supported and are
// mutually exclusive:
//   - Offset-based: --limit and --offset
//   - Page-based: --page and --page-size
type Params struct {
	// Limit is the page length in offset-based mode.
	Limit int

	// Offset is the number of results to skip in offset-based mode.
	Offset int

	// Page is the 1-based page number in page-based mode.
	Page int

	// PageSize is the page length in page-based mode.
	PageSize int

	// Sort is the raw "field[:order]" expression.
	Sort string
}

// NewParams creates Params with the given default limit.
func NewParams(defaultLimit int) *Params {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	return &Params{Limit: defaultLimit, Offset: DefaultOffset}
}

// Validate checks that the parameters are in range and consistent.
func (p Params) Validate() error {
	if p.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	if p.Offset < 0 {
		return errors.New("offset cannot be negative")
	}
	if p.Page < 0 {
		return errors.New("page cannot be negative")
	}
	if p.PageSize < 0 {
		return errors.New("page-size cannot be negative")
	}

	if p.Page > 0 && p.Offset > 0 {
		return errors.New("page and offset parameters are mutually exclusive")
	}
	if p.Page == 0 && p.PageSize > 0 {
		return errors.New("page must be specified when using page-size: page must be >= 1")
	}
	if p.PageSize == 0 && p.Page > 0 {
		return errors.New("page-size must be specified when using page: page-size must be > 0")
	}

	if limit := p.effectiveLimit(); limit < 1 || limit > MaxLimit {
		return ErrInvalidLimit
	}

	if p.Sort != "" {
		if _, _, err := ParseSort(p.Sort); err != nil {
			return err
		}
	}
	return nil
}

// IsPageBased returns true if page-based pagination is active.
func (p Params) IsPageBased() bool {
	return p.Page > 0
}

// Window converts the parameters into the limit/offset window sent to the
// API. Page-based parameters are converted to an offset aligned to the page.
func (p Params) Window() api.Page {
	if p.IsPageBased() {
		return api.Page{Limit: p.PageSize, Offset: (p.Page - 1) * p.PageSize}
	}
	limit := p.effectiveLimit()
	// Offsets are kept on a page boundary.
	offset := p.Offset
	if limit > 0 {
		offset -= offset % limit
	}
	return api.Page{Limit: limit, Offset: offset}
}

func (p Params) effectiveLimit() int {
	if p.IsPageBased() {
		return p.PageSize
	}
	return p.Limit
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "name", "created_at:desc".
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}
