// Package command holds the async jobs that run outside the event
// loop. Services return commands from their update funnel; the app
// spawns each one on its own goroutine and tracks it for the status
// display.
package command

import "context"

// Command is a self-contained unit of side-effect work. Commands are
// spawned by the app, never by services, and report results by pushing
// messages onto the owning service's queue before they return. A
// non-nil error from Execute surfaces as an error dialog and marks the
// tracker entry as failed.
type Command interface {
	// Name is shown in the status tracker while the command runs
	// (e.g. "Loading secrets").
	Name() string

	Execute(ctx context.Context) error
}

// Func adapts an ordinary function to the Command interface.
type Func struct {
	name string
	run  func(context.Context) error
}

// NewFunc wraps run as a Command with the given status name.
func NewFunc(name string, run func(context.Context) error) Func {
	return Func{name: name, run: run}
}

// Name implements Command.
func (f Func) Name() string { return f.name }

// Execute implements Command.
func (f Func) Execute(ctx context.Context) error { return f.run(ctx) }
