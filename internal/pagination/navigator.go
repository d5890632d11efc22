package pagination

import (
	"github.com/rshade/catalogctl/internal/api"
)

// Direction is a pagination control.
type Direction int

// Pagination controls.
const (
	First Direction = iota
	Previous
	Next
	Last
)

func (d Direction) String() string {
	switch d {
	case First:
		return "first"
	case Previous:
		return "previous"
	case Next:
		return "next"
	case Last:
		return "last"
	default:
		return "unknown"
	}
}

// Navigator derives page navigation from the metadata of the latest
// response. A zero or negative limit is treated as a single page.
type Navigator struct {
	Meta api.Meta
}

// NewNavigator wraps meta.
func NewNavigator(meta api.Meta) Navigator {
	return Navigator{Meta: meta}
}

func (n Navigator) limit() int {
	if n.Meta.Limit > 0 {
		return n.Meta.Limit
	}
	return max(n.Meta.Count, 1)
}

// TotalPages is ceil(count/limit).
func (n Navigator) TotalPages() int {
	if n.Meta.Count <= 0 {
		return 0
	}
	limit := n.limit()
	return (n.Meta.Count + limit - 1) / limit
}

// CurrentPage is the 1-based page holding the current offset.
func (n Navigator) CurrentPage() int {
	return n.Meta.Offset/n.limit() + 1
}

// LastOffset is the offset of the last page: count - (count%limit || limit).
func (n Navigator) LastOffset() int {
	if n.Meta.Count <= 0 {
		return 0
	}
	limit := n.limit()
	rem := n.Meta.Count % limit
	if rem == 0 {
		rem = limit
	}
	return n.Meta.Count - rem
}

// Offset returns the offset a control navigates to, clamped to
// [0, LastOffset].
func (n Navigator) Offset(d Direction) int {
	limit := n.limit()
	var target int
	switch d {
	case First:
		target = 0
	case Previous:
		target = n.Meta.Offset - limit
	case Next:
		target = n.Meta.Offset + limit
	case Last:
		target = n.LastOffset()
	default:
		target = n.Meta.Offset
	}
	return min(max(target, 0), n.LastOffset())
}

// Enabled reports whether a control would change the page.
func (n Navigator) Enabled(d Direction) bool {
	return n.Offset(d) != n.Meta.Offset
}

// Page returns the window a control navigates to and whether it is enabled.
func (n Navigator) Page(d Direction) (api.Page, bool) {
	return api.Page{Limit: n.limit(), Offset: n.Offset(d)}, n.Enabled(d)
}
