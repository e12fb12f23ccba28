// Package service defines the contract every cloud service screen
// implements and the registry the app selects them from.
//
// Services follow a single-funnel update pattern: input handling and
// ticks only mutate view state and the message queue, while Update is
// the one method allowed to produce side effects. The app calls Update
// after Init, after any consumed input, and after every command
// completion, so all state transitions flow through one place.
package service

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jorgeparavicini/lazycloud/internal/command"
	"github.com/jorgeparavicini/lazycloud/internal/theme"
)

// Hint is one entry in the help overlay: a key label and what it does.
type Hint struct {
	Key         string
	Description string
}

// Service is an in-session controller for one cloud product.
type Service interface {
	// Init queues the startup message(s). The app calls Update
	// immediately after.
	Init()

	// Destroy releases resources when the service is closing.
	Destroy()

	// HandleTick advances animations. It must not queue messages or
	// produce side effects.
	HandleTick()

	// HandleInput queues messages derived from a key press and reports
	// whether the key was consumed. Consumed input triggers Update.
	HandleInput(msg tea.KeyMsg) bool

	// Update drains the message queue and returns what the app should
	// do. It is the only method that may return commands, request a
	// close, or report an error.
	Update() UpdateResult

	// View renders the current state into the given area.
	View(width, height int, th theme.Theme) string

	// Breadcrumbs returns the path segments for the navigation bar.
	Breadcrumbs() []string

	// Keybindings lists the local bindings for the help overlay.
	Keybindings() []Hint
}

type updateKind uint8

const (
	updateIdle updateKind = iota
	updateCommands
	updateClose
	updateError
)

// UpdateResult is the outcome of a service's update funnel: nothing to
// do, commands to spawn, a request to close, or an error to surface.
type UpdateResult struct {
	kind updateKind
	cmds []command.Command
	err  string
}

// Idle reports that the queue was empty and nothing needs to happen.
func Idle() UpdateResult { return UpdateResult{kind: updateIdle} }

// RunCommands asks the app to spawn cmds. With no commands it
// collapses to Idle.
func RunCommands(cmds ...command.Command) UpdateResult {
	if len(cmds) == 0 {
		return Idle()
	}
	return UpdateResult{kind: updateCommands, cmds: cmds}
}

// Close asks the app to leave the service.
func Close() UpdateResult { return UpdateResult{kind: updateClose} }

// Fail surfaces an error dialog. The service stays active.
func Fail(msg string) UpdateResult { return UpdateResult{kind: updateError, err: msg} }

// IsIdle reports whether nothing needs to happen.
func (r UpdateResult) IsIdle() bool { return r.kind == updateIdle }

// IsClose reports whether the service asked to close.
func (r UpdateResult) IsClose() bool { return r.kind == updateClose }

// Commands returns the commands to spawn, if any.
func (r UpdateResult) Commands() []command.Command { return r.cmds }

// Err returns the error message when the update reported one.
func (r UpdateResult) Err() (string, bool) { return r.err, r.kind == updateError }
