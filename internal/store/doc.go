// Package store holds the state of one list screen.
//
// State changes only through Dispatch, which runs the pure Reduce function
// under a mutex and then notifies subscribers. Fetch drives the
// requested/succeeded/failed action sequence for one request and drops the
// outcome of any request that has been superseded by a newer one.
package store
