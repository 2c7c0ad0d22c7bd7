// Package main hosts the romuless CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into sort,
// remerge, and report runs against a ROM library, plus run-history queries
// and configuration scaffolding. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on flag handling and
// output.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
