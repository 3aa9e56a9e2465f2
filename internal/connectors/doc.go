// Package connectors provides the ByteFetcher implementations that retrieve
// paper content. Each connector knows one locator family: web fetches
// http(s) URLs and filesystem reads local files. Router dispatches between
// them.
package connectors
