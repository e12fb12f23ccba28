package ui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jorgeparavicini/lazycloud/internal/command"
	"github.com/jorgeparavicini/lazycloud/internal/keymap"
	"github.com/jorgeparavicini/lazycloud/internal/service"
	"github.com/jorgeparavicini/lazycloud/internal/theme"
	"github.com/jorgeparavicini/lazycloud/internal/view"
)

// themeRow adapts a theme name for the selector list.
type themeRow struct {
	name    string
	current bool
}

func (r themeRow) Item(th theme.Theme) view.Cell {
	st := th.Styles()
	if r.current {
		return view.Cell{Text: r.name + " (current)", Style: st.Accent}
	}
	return view.Cell{Text: r.name, Style: st.Text}
}

func (m *Model) openThemeSelector() {
	names := theme.Names()
	rows := make([]themeRow, len(names))
	current := 0
	for i, name := range names {
		rows[i] = themeRow{name: name, current: name == m.th.Name}
		if rows[i].current {
			current = i
		}
	}
	m.themeList = view.NewList(rows, m.resolver)
	m.themeList.Select(current)
	m.overlay = overlayTheme
}

// applyTheme switches the palette and persists the choice.
func (m *Model) applyTheme(name string) {
	m.th = theme.Get(name)
	if m.store != nil {
		if err := m.store.SaveTheme(name); err != nil {
			slog.Warn("persist theme failed", "error", err)
		}
	}
	m.pushToast("Theme: "+name, command.ToastInfo)
	m.overlay = overlayNone
}

// handleOverlayKey consumes every key while an overlay is visible.
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.overlay {
	case overlayHelp:
		// Any key closes help.
		m.overlay = overlayNone
		return m, nil

	case overlayError:
		if ev, ok := keymap.FromKeyMsg(msg); ok {
			if m.resolver.Matches(keymap.LayerDialog, keymap.ActionDismiss, ev) {
				m.overlay = overlayNone
				m.errorText = ""
			}
		}
		return m, nil

	case overlayTheme:
		ev, ok := keymap.FromKeyMsg(msg)
		if !ok {
			return m, nil
		}
		if m.resolver.Matches(keymap.LayerGlobal, keymap.ActionBack, ev) ||
			m.resolver.Matches(keymap.LayerGlobal, keymap.ActionTheme, ev) {
			m.overlay = overlayNone
			return m, nil
		}
		if m.themeList != nil {
			res := m.themeList.HandleKey(msg)
			if lev, ok := res.Event(); ok && lev.Kind == view.ListActivated {
				m.applyTheme(lev.Row.name)
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) renderHelp() string {
	st := m.th.Styles()
	r := m.resolver

	type helpSection struct {
		title string
		items []service.Hint
	}

	sections := []helpSection{
		{
			title: "Global",
			items: []service.Hint{
				{Key: r.Display(keymap.LayerGlobal, keymap.ActionQuit), Description: "Quit"},
				{Key: r.Display(keymap.LayerGlobal, keymap.ActionBack), Description: "Back"},
				{Key: r.Display(keymap.LayerGlobal, keymap.ActionTheme), Description: "Theme selector"},
				{Key: r.Display(keymap.LayerGlobal, keymap.ActionCommands), Description: "Command panel"},
				{Key: "ctrl+z", Description: "Suspend"},
				{Key: r.Display(keymap.LayerGlobal, keymap.ActionHelp), Description: "This help"},
			},
		},
		{
			title: "Navigation",
			items: []service.Hint{
				{Key: "j/k", Description: "Move down/up"},
				{Key: "g/G", Description: "Go to top/bottom"},
				{Key: r.Display(keymap.LayerNavigation, keymap.ActionSelect), Description: "Select"},
				{Key: r.Display(keymap.LayerSearch, keymap.ActionSearchToggle), Description: "Filter list"},
			},
		},
	}

	if m.phase == phaseService && m.svc != nil {
		title := "Service"
		if crumbs := m.svc.Breadcrumbs(); len(crumbs) > 0 {
			title = crumbs[0]
		}
		if hints := m.svc.Keybindings(); len(hints) > 0 {
			sections = append(sections, helpSection{title: title, items: hints})
		}
	}

	var b strings.Builder
	b.WriteString(st.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(st.Faint.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(m.th.Warning()).
		Width(12)
	for i, section := range sections {
		b.WriteString(st.Accent.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.Key))
			b.WriteString(st.Text.Render(item.Description))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.th.BorderFocus()).
		Padding(1, 2).
		Width(44)
	return m.centered(m.height, box.Render(b.String()))
}

func (m Model) renderThemeSelector() string {
	if m.themeList == nil {
		return m.centered(m.height, "")
	}
	box := view.Box{
		Title:      " Theme ",
		Width:      40,
		Border:     m.th.BorderFocus(),
		TitleStyle: m.th.Styles().Title,
	}
	return m.centered(m.height, box.Render(m.themeList.View(38, m.themeList.Len(), m.th)))
}

func (m Model) renderError() string {
	st := m.th.Styles()
	width := min(m.width-8, 64)
	if width < 20 {
		width = m.width
	}

	message := lipgloss.NewStyle().Width(width - 4).Render(m.errorText)
	hint := st.Faint.Render(fmt.Sprintf("Press %s to dismiss",
		m.resolver.Display(keymap.LayerDialog, keymap.ActionDismiss)))

	content := st.Danger.Render(message) + "\n\n" + hint
	box := view.Box{
		Title:      " Error ",
		Width:      width,
		Border:     m.th.Danger(),
		TitleStyle: st.Danger.Bold(true),
	}
	return m.centered(m.height, box.Render(content))
}

// centered places content in the middle of the given area, painting the
// slack in the theme's base color.
func (m Model) centered(height int, content string) string {
	return lipgloss.Place(
		m.width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.th.Base)),
	)
}
