package view

import (
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/jorgeparavicini/lazycloud/internal/theme"
)

// Spinner is a loading indicator with an optional label. Frames advance
// on the application tick rather than on their own timer, keeping tick
// handling free of side effects.
type Spinner struct {
	frames []string
	frame  int
	label  string
}

// NewSpinner builds a spinner with the braille frame set.
func NewSpinner() *Spinner {
	return &Spinner{frames: spinner.MiniDot.Frames}
}

// SetLabel sets the text shown next to the spinner.
func (s *Spinner) SetLabel(label string) { s.label = label }

// Label returns the current label.
func (s *Spinner) Label() string { return s.label }

// Advance steps to the next frame.
func (s *Spinner) Advance() { s.frame = (s.frame + 1) % len(s.frames) }

// View renders the spinner glyph and label.
func (s *Spinner) View(th theme.Theme) string {
	st := th.Styles()
	out := st.Accent.Render(s.frames[s.frame])
	if s.label != "" {
		out += " " + st.Muted.Render(s.label)
	}
	return out
}
