package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jorgeparavicini/lazycloud/internal/theme"
)

// InputEventKind discriminates the events a TextInput emits.
type InputEventKind uint8

const (
	// InputSubmitted fires on Enter; Value carries the buffer.
	InputSubmitted InputEventKind = iota
	// InputCancelled fires on Esc.
	InputCancelled
)

// InputEvent carries a text input event.
type InputEvent struct {
	Kind  InputEventKind
	Value string
}

// TextInput is a single-line editor rendered as a titled popup. Editing
// keys (cursor movement, ctrl+a/e, ctrl+u, alt+backspace word delete)
// are handled by the embedded bubbles model; Enter and Esc surface as
// events. All other keys are consumed so nothing leaks to the screen
// below while the input has focus.
type TextInput struct {
	label string
	input textinput.Model
}

// NewTextInput builds a focused input with the given label and
// placeholder text.
func NewTextInput(label, placeholder string) *TextInput {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.Cursor.SetMode(cursor.CursorStatic)
	in.Focus()
	return &TextInput{label: label, input: in}
}

// Masked switches the input to password echo.
func (t *TextInput) Masked() *TextInput {
	t.input.EchoMode = textinput.EchoPassword
	t.input.EchoCharacter = '*'
	return t
}

// Value returns the current buffer contents.
func (t *TextInput) Value() string { return t.input.Value() }

// HandleKey feeds a key to the editor.
func (t *TextInput) HandleKey(msg tea.KeyMsg) Result[InputEvent] {
	switch msg.Type {
	case tea.KeyEnter:
		return Event(InputEvent{Kind: InputSubmitted, Value: t.input.Value()})
	case tea.KeyEsc:
		return Event(InputEvent{Kind: InputCancelled})
	}
	t.input, _ = t.input.Update(msg)
	return Consumed[InputEvent]()
}

// View renders the input as a bordered popup of the given total width.
// Callers center the result in their content area.
func (t *TextInput) View(width int, th theme.Theme) string {
	st := th.Styles()
	t.input.TextStyle = st.Text
	t.input.PlaceholderStyle = st.Faint
	t.input.Cursor.Style = st.Text
	t.input.Width = max(width-4, 1)

	return Box{
		Title:      fmt.Sprintf(" %s (Enter to confirm, Esc to cancel) ", t.label),
		Width:      width,
		Height:     3,
		Border:     th.BorderFocus(),
		TitleStyle: st.Title,
	}.Render(t.input.View())
}
