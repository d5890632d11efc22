// Package listview decides how a list screen is drawn and renders it as
// text, JSON or NDJSON.
//
// A list with items, or one that is loading, is drawn as a table whose
// columns are the keys of the first item in wire order. Otherwise a fixed
// per-resource empty-state title is shown.
package listview
