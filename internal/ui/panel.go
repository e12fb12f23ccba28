package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jorgeparavicini/lazycloud/internal/command"
	"github.com/jorgeparavicini/lazycloud/internal/keymap"
	"github.com/jorgeparavicini/lazycloud/internal/view"
)

const panelSectionLimit = 5

// handlePanelKey processes input while the command panel is expanded.
// The panel is read-only, so every key is swallowed and the close
// bindings collapse it.
func (m Model) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ev, ok := keymap.FromKeyMsg(msg)
	if !ok {
		return m, nil
	}

	r := m.resolver
	if r.Matches(keymap.LayerGlobal, keymap.ActionCommands, ev) ||
		r.Matches(keymap.LayerGlobal, keymap.ActionBack, ev) ||
		r.Matches(keymap.LayerDialog, keymap.ActionDismiss, ev) {
		m.tracker.ToggleExpanded()
	}
	return m, nil
}

// renderCommandPanel draws the expanded command history overlay.
func (m Model) renderCommandPanel() string {
	st := m.th.Styles()

	var b strings.Builder
	b.WriteString(st.Header.Render("RUNNING"))
	b.WriteString("\n")

	running := m.tracker.Running()
	if len(running) == 0 {
		b.WriteString(st.Faint.Render("  (none)"))
		b.WriteString("\n")
	}
	for i, r := range running {
		if i >= panelSectionLimit {
			b.WriteString(st.Faint.Render(fmt.Sprintf("  … and %d more", len(running)-panelSectionLimit)))
			b.WriteString("\n")
			break
		}
		frame := spinnerFrames[m.frame%len(spinnerFrames)]
		b.WriteString(fmt.Sprintf("  %s %s %s",
			st.Info.Render(frame),
			st.Text.Render(r.Name),
			st.Muted.Render(command.FormatDuration(time.Since(r.StartedAt)))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(st.Header.Render("RECENT"))
	b.WriteString("\n")

	recent := m.tracker.Recent()
	if len(recent) == 0 {
		b.WriteString(st.Faint.Render("  (none)"))
		b.WriteString("\n")
	}
	for i, r := range recent {
		if i >= panelSectionLimit {
			break
		}
		glyph := st.Success.Render("✓")
		if !r.Success {
			glyph = st.Danger.Render("✗")
		}
		b.WriteString(fmt.Sprintf("  %s %s %s %s",
			glyph,
			st.Text.Render(r.Name),
			st.Muted.Render(command.FormatDuration(r.Duration)),
			st.Faint.Render(command.FormatAge(time.Since(r.CompletedAt)))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(st.Faint.Render(fmt.Sprintf("Press %s to close",
		m.resolver.Display(keymap.LayerGlobal, keymap.ActionCommands))))

	width := 56
	if m.width-8 < width {
		width = m.width - 8
	}
	box := view.Box{
		Title:      " Commands ",
		Width:      width,
		Border:     m.th.BorderFocus(),
		TitleStyle: m.th.Styles().Title,
	}
	return m.centered(m.height, box.Render(b.String()))
}
