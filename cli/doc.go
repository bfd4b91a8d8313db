// Package cli implements the interactive console flows of the command-line
// tools.
package cli
