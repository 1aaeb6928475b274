// Package main hosts the nbexport CLI entrypoint and command graph.
//
// Invoked without a subcommand, nbexport exports notebooks: with no argument
// it converts every notebook under the notebooks directory into the mirrored
// location under the reports directory; with one argument it converts that
// single notebook. Status lines go to stdout and diagnostic logs to stderr.
//
// The list, check, and config subcommands inspect discovery results, verify
// the converter and directories, and scaffold configuration. Keep this
// package lean: behaviour lives in the internal packages and commands only
// wire configuration, logging, and output together.
package main
