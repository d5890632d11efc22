package pagination

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rshade/catalogctl/internal/api"
)

// ItemSorter sorts a page of schemaless items by one column.
type ItemSorter struct {
	Field string
	Order string
}

// NewItemSorter parses a "field[:order]" expression.
func NewItemSorter(expr string) (*ItemSorter, error) {
	field, order, err := ParseSort(expr)
	if err != nil {
		return nil, err
	}
	return &ItemSorter{Field: field, Order: order}, nil
}

// IsValidField reports whether field is a column of the page.
func (s *ItemSorter) IsValidField(items []api.Item, field string) bool {
	if len(items) == 0 {
		return false
	}
	for _, k := range items[0].Keys() {
		if k == field {
			return true
		}
	}
	return false
}

// Sort returns a sorted copy of items. A column whose non-empty values all
// parse as numbers compares numerically, any other column compares
// case-insensitively. An empty or unknown field returns items unchanged.
func (s *ItemSorter) Sort(items []api.Item) []api.Item {
	if s == nil || s.Field == "" || !s.IsValidField(items, s.Field) {
		return items
	}

	sorted := make([]api.Item, len(items))
	copy(sorted, items)

	values := make([]sortKey, len(sorted))
	numeric := true
	for i := range sorted {
		values[i] = newSortKey(sorted[i].Display(s.Field))
		if values[i].text != "" && !values[i].isNum {
			numeric = false
		}
	}

	sort.Stable(columnSort{items: sorted, keys: values, numeric: numeric, desc: s.Order == SortOrderDesc})
	return sorted
}

// sortKey is a display value with its numeric reading, if any.
type sortKey struct {
	text  string
	num   float64
	isNum bool
}

func newSortKey(v string) sortKey {
	f, err := strconv.ParseFloat(v, 64)
	return sortKey{text: strings.ToLower(v), num: f, isNum: err == nil}
}

// columnSort orders items by keys, swapping both slices together.
type columnSort struct {
	items   []api.Item
	keys    []sortKey
	numeric bool
	desc    bool
}

func (c columnSort) Len() int { return len(c.items) }

func (c columnSort) Swap(i, j int) {
	c.items[i], c.items[j] = c.items[j], c.items[i]
	c.keys[i], c.keys[j] = c.keys[j], c.keys[i]
}

func (c columnSort) Less(i, j int) bool {
	// For descending order, swap i and j to keep the sort stable.
	if c.desc {
		i, j = j, i
	}
	a, b := c.keys[i], c.keys[j]
	if !c.numeric {
		return a.text < b.text
	}
	// Empty values sort before numbers.
	if a.text == "" || b.text == "" {
		return a.text == "" && b.text != ""
	}
	return a.num < b.num
}
