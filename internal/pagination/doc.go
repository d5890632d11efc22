// Package pagination provides list pagination, page navigation and sorting.
//
// This package contains the pagination logic shared by the CLI list commands
// and the interactive console, including:
//   - Params: CLI flag parsing and validation for limit/offset and page/page-size
//   - Navigator: first/previous/next/last offsets derived from response metadata
//   - ItemSorter: client-side sorting of a page by any column
package pagination
