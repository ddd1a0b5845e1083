// Package server holds the HTTP server configuration and constants.
//
// The Config struct defines the HTTP port, the API key, the maximum size of a
// delivered block and the processing mode (apply or dry-run).
package server
