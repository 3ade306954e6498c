// Package main hosts the recipesaver CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into recipe
// collection operations: adding and editing records, browsing and searching,
// backup export and import, URL enrichment, and configuration scaffolding. It
// centralizes configuration resolution and repository setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
