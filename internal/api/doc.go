// Package api is the HTTP client for the catalog, approval and topological
// inventory REST services.
//
// Collection endpoints are exposed as Fetchers: given a name filter and a
// limit/offset page they issue a single GET and normalise the response into a
// ListResult. Items keep the field order of the server response so that list
// views can derive their columns from the first item.
package api
