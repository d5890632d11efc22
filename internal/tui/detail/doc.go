// Package detail provides the record detail view of the console.
//
// The detail view opens immediately with the fields of the selected list row
// and then loads the full record in the background. Key features:
//   - Lazy loading: the full record is fetched only when the view is opened
//   - Inline error recovery with retry ('r' key) that keeps the row data visible
//   - Relative ages next to ISO-8601 timestamps
//   - Virtual scrolling over the field list
package detail
