package view

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jorgeparavicini/lazycloud/internal/keymap"
	"github.com/jorgeparavicini/lazycloud/internal/theme"
)

// ConfirmEvent is the outcome of a confirmation dialog.
type ConfirmEvent uint8

const (
	// Confirmed means the user accepted the action.
	Confirmed ConfirmEvent = iota
	// Cancelled means the user declined.
	Cancelled
)

// Confirm is a yes/no dialog. Danger dialogs render in red for
// destructive actions. The dialog captures every key while open;
// confirm and cancel resolve through the dialog binding layer.
type Confirm struct {
	title       string
	message     string
	confirmText string
	cancelText  string
	danger      bool
	resolver    *keymap.Resolver
}

// NewConfirm builds a dialog with the default title and button texts.
func NewConfirm(message string, resolver *keymap.Resolver) *Confirm {
	return &Confirm{
		title:       "Confirm",
		message:     message,
		confirmText: "Yes",
		cancelText:  "No",
		resolver:    resolver,
	}
}

// WithTitle sets the dialog title.
func (c *Confirm) WithTitle(title string) *Confirm {
	c.title = title
	return c
}

// WithConfirmText sets the accept button text.
func (c *Confirm) WithConfirmText(text string) *Confirm {
	c.confirmText = text
	return c
}

// WithCancelText sets the decline button text.
func (c *Confirm) WithCancelText(text string) *Confirm {
	c.cancelText = text
	return c
}

// Danger marks the dialog as destructive.
func (c *Confirm) Danger() *Confirm {
	c.danger = true
	return c
}

// HandleKey resolves the key against the dialog layer. Unrecognized
// keys are consumed so they cannot reach the screen below.
func (c *Confirm) HandleKey(msg tea.KeyMsg) Result[ConfirmEvent] {
	ev, ok := keymap.FromKeyMsg(msg)
	if !ok {
		return Consumed[ConfirmEvent]()
	}
	switch {
	case c.resolver.Matches(keymap.LayerDialog, keymap.ActionConfirm, ev):
		return Event(Confirmed)
	case c.resolver.Matches(keymap.LayerDialog, keymap.ActionCancel, ev):
		return Event(Cancelled)
	}
	return Consumed[ConfirmEvent]()
}

// keyLabel renders the first bound key for an action, e.g. "[y]".
func (c *Confirm) keyLabel(action keymap.Action) string {
	b := c.resolver.Binding(keymap.LayerDialog, action)
	if len(b) == 0 {
		return "[?]"
	}
	return "[" + b[0].Display() + "]"
}

// View renders the dialog at the given total width. Callers center the
// result in their content area.
func (c *Confirm) View(width int, th theme.Theme) string {
	st := th.Styles()

	titleStyle := st.Title
	borderColor := th.BorderFocus()
	confirmStyle := st.Success.Bold(true)
	if c.danger {
		titleStyle = st.Danger.Bold(true)
		borderColor = th.Danger()
		confirmStyle = st.Danger.Bold(true)
	}

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Peach)).Bold(true)
	cancelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Overlay1)).Bold(true)

	buttons := keyStyle.Render(c.keyLabel(keymap.ActionConfirm)) + " " +
		confirmStyle.Render(c.confirmText) + "    " +
		keyStyle.Render(c.keyLabel(keymap.ActionCancel)) + " " +
		cancelStyle.Render(c.cancelText)

	innerWidth := width - 2
	lines := []string{
		"",
		lipgloss.PlaceHorizontal(innerWidth, lipgloss.Center, st.Text.Render(c.message)),
		"",
		lipgloss.PlaceHorizontal(innerWidth, lipgloss.Center, buttons),
		"",
	}

	return Box{
		Title:      " " + c.title + " ",
		Width:      width,
		Height:     7,
		Border:     borderColor,
		TitleStyle: titleStyle,
	}.Render(strings.Join(lines, "\n"))
}
