package pagination

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/catalogctl/internal/api"
)

// Meta is the pagination summary printed with JSON output and shown in the
// console footer.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	Offset      int  `json:"offset"       yaml:"offset"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta summarises the metadata of a collection response.
func NewMeta(m api.Meta) Meta {
	nav := NewNavigator(m)
	return Meta{
		CurrentPage: nav.CurrentPage(),
		PageSize:    nav.limit(),
		TotalPages:  nav.TotalPages(),
		TotalItems:  m.Count,
		Offset:      m.Offset,
		HasPrevious: nav.Enabled(Previous),
		HasNext:     nav.Enabled(Next),
	}
}

var printer = message.NewPrinter(language.English)

// Footer renders a one-line summary such as "Page 3 of 12 (1,180 items)".
func (m Meta) Footer() string {
	if m.TotalItems == 0 {
		return "No items"
	}
	return printer.Sprintf("Page %d of %d (%d items)", m.CurrentPage, m.TotalPages, m.TotalItems)
}
