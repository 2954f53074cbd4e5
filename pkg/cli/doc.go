// Package cli implements the formd command-line interface.
//
// The default action is serving: `formd` or `formd 3000` starts the server
// (a bare positional argument is the port). Subcommands: serve, config,
// version.
package cli
