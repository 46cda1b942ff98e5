// Package main provides the shapegen command, which generates Go client code
// from a shape-graph snapshot.
//
// Usage:
//
//	shapegen [flags] <command>
//
// Commands:
//   - generate: render the constraint-violation types, the service config and
//     the request preparation functions of a model
//   - config show: print the effective configuration
//   - version: print version information
package main

func main() {
	Execute()
}
