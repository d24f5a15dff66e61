// Package app wires application dependencies for the CLI and the HTTP host.
//
// It builds the concrete stores, the deep-link builder and the high-level
// services from Config, exposing them via the Wire struct for commands to
// use. Each Wire is one "page load": NewWire restores whatever the previous
// load left on disk.
package app
