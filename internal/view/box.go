package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Box frames content with a rounded border and an optional title
// embedded in the top edge. Width and Height are outer dimensions
// including the frame; a zero Height sizes the frame to its content.
type Box struct {
	Title      string
	Width      int
	Height     int
	Border     lipgloss.Color
	TitleStyle lipgloss.Style
}

// Render draws the frame around content. The title is truncated if it
// does not fit between the top corners.
func (b Box) Render(content string) string {
	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(b.Border)

	innerWidth := b.Width - 2
	if innerWidth < 0 {
		innerWidth = lipgloss.Width(content)
	}

	title := runewidth.Truncate(b.Title, innerWidth, "…")
	fill := innerWidth - runewidth.StringWidth(title)
	if fill < 0 {
		fill = 0
	}
	top := edge.Render(border.TopLeft) +
		b.TitleStyle.Render(title) +
		edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)

	body := lipgloss.NewStyle().
		Border(border).
		BorderTop(false).
		BorderForeground(b.Border).
		Width(innerWidth)
	if b.Height > 2 {
		body = body.Height(b.Height - 2)
	}

	return top + "\n" + body.Render(content)
}
