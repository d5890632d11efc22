package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rshade/catalogctl/internal/api"
	"github.com/rshade/catalogctl/internal/listview"
	"github.com/rshade/catalogctl/internal/tui/detail"
)

// renderItem writes every field of one record. Table output annotates
// timestamps with their relative age.
func renderItem(w io.Writer, item api.Item, format string, now time.Time) error {
	switch format {
	case listview.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(item)
	case listview.FormatNDJSON:
		return json.NewEncoder(w).Encode(item)
	case listview.FormatTable, "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, f := range detail.Fields(item, now) {
			if f.Age != "" {
				fmt.Fprintf(tw, "%s:\t%s (%s)\n", f.Key, f.Value, f.Age)
				continue
			}
			fmt.Fprintf(tw, "%s:\t%s\n", f.Key, f.Value)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format %q: use table, json, or ndjson", format)
	}
}
