// Package app wires the pieces of lazycloud together: logging, config,
// context discovery, the key resolver, the service registry, and the
// terminal UI.
//
// Run is the single entry point. It performs all filesystem work up
// front (config load, gcloud discovery, contexts.json reconciliation)
// and validates CLI preselections before the UI takes over the
// terminal, so startup errors print as plain diagnostics with a
// non-zero exit instead of flashing an alternate screen.
package app
