// Package cli translates command-line arguments into an app.Config. It is
// the only place that knows about flags and exit codes.
package cli
