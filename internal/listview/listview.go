package listview

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/iancoleman/strcase"

	"github.com/rshade/catalogctl/internal/api"
	"github.com/rshade/catalogctl/internal/pagination"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// LoadingText is shown while a request is in flight.
const LoadingText = "Loading..."

// Mode is the outcome of the render policy.
type Mode int

// Render modes.
const (
	// ModeTable draws the loading indicator (when loading) and the table
	// (when there are items).
	ModeTable Mode = iota
	// ModeEmpty draws the empty-state title.
	ModeEmpty
)

// View is everything needed to draw one list.
type View struct {
	// Resource names the collection, e.g. "portfolios".
	Resource string
	Items    []api.Item
	Loading  bool
	Meta     api.Meta
}

// Mode applies the render policy.
func (v View) Mode() Mode {
	if v.Loading || len(v.Items) > 0 {
		return ModeTable
	}
	return ModeEmpty
}

// ShowLoading reports whether the loading indicator is visible.
func (v View) ShowLoading() bool {
	return v.Loading
}

// ShowTable reports whether the table is drawn.
func (v View) ShowTable() bool {
	return v.Mode() == ModeTable && len(v.Items) > 0
}

// EmptyTitle returns the empty-state placeholder title of the resource.
func (v View) EmptyTitle() string {
	return EmptyTitle(v.Resource)
}

var emptyTitles = map[string]string{
	"portfolios":        "No portfolios",
	"portfolio_items":   "No products",
	"service_offerings": "No platform items",
	"workflows":         "No approval processes",
	"templates":         "No templates",
}

// EmptyTitle returns the placeholder title for a resource. Unlisted
// resources use their name in lower case words, e.g. "sourceTypes" gives
// "No source types".
func EmptyTitle(resource string) string {
	if title, ok := emptyTitles[resource]; ok {
		return title
	}
	return "No " + strcase.ToDelimited(resource, ' ')
}

// Columns returns the table header: the keys of the first item in order.
func Columns(items []api.Item) []string {
	if len(items) == 0 {
		return nil
	}
	return items[0].Keys()
}

// Rows returns each item's values coerced to display strings, aligned to
// columns. Fields missing from an item render as "".
func Rows(items []api.Item, columns []string) [][]string {
	rows := make([][]string, len(items))
	for i, it := range items {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = it.Display(col)
		}
		rows[i] = row
	}
	return rows
}

// Render writes v in the given format.
func Render(w io.Writer, v View, format string) error {
	switch format {
	case FormatJSON:
		return RenderJSON(w, v)
	case FormatNDJSON:
		return RenderNDJSON(w, v)
	case FormatTable, "":
		return RenderTable(w, v)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// RenderTable writes an aligned plain-text table followed by a page footer.
func RenderTable(w io.Writer, v View) error {
	if v.Mode() == ModeEmpty {
		_, err := fmt.Fprintln(w, v.EmptyTitle())
		return err
	}
	if v.ShowLoading() {
		if _, err := fmt.Fprintln(w, LoadingText); err != nil {
			return err
		}
	}
	if !v.ShowTable() {
		return nil
	}

	columns := Columns(v.Items)
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	header := make([]string, len(columns))
	rule := make([]string, len(columns))
	for i, c := range columns {
		header[i] = strings.ToUpper(c)
		rule[i] = strings.Repeat("-", len(c))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, strings.Join(rule, "\t"))
	for _, row := range Rows(v.Items, columns) {
		fmt.Fprintln(tw, strings.Join(sanitize(row), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s\n", pagination.NewMeta(v.Meta).Footer())
	return err
}

// sanitize keeps cell values on one line so they cannot break the layout.
func sanitize(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.NewReplacer("\t", " ", "\n", " ", "\r", "").Replace(cell)
	}
	return out
}

// jsonDocument is the JSON output shape.
type jsonDocument struct {
	Data       []api.Item      `json:"data"`
	Meta       api.Meta        `json:"meta"`
	Pagination pagination.Meta `json:"pagination"`
}

// RenderJSON writes the page as one indented document.
func RenderJSON(w io.Writer, v View) error {
	items := v.Items
	if items == nil {
		items = []api.Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonDocument{Data: items, Meta: v.Meta, Pagination: pagination.NewMeta(v.Meta)})
}

// RenderNDJSON writes one item per line.
func RenderNDJSON(w io.Writer, v View) error {
	enc := json.NewEncoder(w)
	for _, it := range v.Items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}
