package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/jorgeparavicini/lazycloud/internal/command"
	"github.com/jorgeparavicini/lazycloud/internal/keymap"
	"github.com/jorgeparavicini/lazycloud/internal/service"
)

var spinnerFrames = spinner.MiniDot.Frames

// barPainter renders status bar segments with a shared background, so
// styled segments never punch holes in the fill.
type barPainter struct {
	bg lipgloss.Color
}

func (p barPainter) seg(text string, fg lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(fg).Background(p.bg).Render(text)
}

func (p barPainter) blank(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(p.bg).Render(strings.Repeat(" ", n))
}

// renderStatusBar draws the bottom bar: breadcrumb trail on the left,
// command summary and key hints on the right.
func (m Model) renderStatusBar() string {
	p := barPainter{bg: lipgloss.Color(m.th.Surface0)}

	left := m.renderCrumbs(p)
	summary := m.renderCommandSummary(p)
	hints := m.renderHints(p)

	right := joinBarSegments(p, summary, hints)
	if lipgloss.Width(left)+lipgloss.Width(right)+2 > m.width {
		right = joinBarSegments(p, summary, m.helpHint(p))
	}
	if lipgloss.Width(left)+lipgloss.Width(right)+2 > m.width {
		right = ""
	}
	if right != "" {
		right += p.blank(1)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		return left
	}
	return left + p.blank(gap) + right
}

func (m Model) renderCrumbs(p barPainter) string {
	crumbs := m.breadcrumbs()
	sep := p.seg(" › ", lipgloss.Color(m.th.Overlay0))

	parts := make([]string, len(crumbs))
	for i, crumb := range crumbs {
		fg := lipgloss.Color(m.th.Subtext)
		if i == len(crumbs)-1 {
			fg = m.th.BorderFocus()
		}
		parts[i] = p.seg(crumb, fg)
	}
	return p.blank(1) + strings.Join(parts, sep)
}

// renderCommandSummary shows the oldest running command inline:
// "⠋ Loading secrets 1.2s (+2)".
func (m Model) renderCommandSummary(p barPainter) string {
	running := m.tracker.Running()
	if len(running) == 0 {
		return ""
	}

	frame := spinnerFrames[m.frame%len(spinnerFrames)]
	first := running[0]
	text := fmt.Sprintf("%s %s %s", frame, first.Name,
		command.FormatDuration(time.Since(first.StartedAt)))
	if len(running) > 1 {
		text += fmt.Sprintf(" (+%d)", len(running)-1)
	}
	return p.seg(text, m.th.Info())
}

func (m Model) renderHints(p barPainter) string {
	var hints []service.Hint
	switch m.phase {
	case phaseContexts:
		hints = []service.Hint{
			{Key: m.resolver.Display(keymap.LayerNavigation, keymap.ActionSelect), Description: "Select"},
			{Key: m.resolver.Display(keymap.LayerGlobal, keymap.ActionQuit), Description: "Quit"},
		}
	case phaseServices:
		hints = []service.Hint{
			{Key: m.resolver.Display(keymap.LayerNavigation, keymap.ActionSelect), Description: "Select"},
			{Key: m.resolver.Display(keymap.LayerGlobal, keymap.ActionBack), Description: "Back"},
		}
	case phaseService:
		if m.svc != nil {
			hints = m.svc.Keybindings()
			if len(hints) > 3 {
				hints = hints[:3]
			}
		}
	}

	parts := make([]string, 0, len(hints)+1)
	for _, h := range hints {
		parts = append(parts, m.renderHint(p, h.Key, h.Description))
	}
	parts = append(parts, m.helpHint(p))
	return strings.Join(parts, p.blank(2))
}

func (m Model) renderHint(p barPainter, key, desc string) string {
	return p.seg(key, m.th.Warning()) + p.seg(" "+desc, lipgloss.Color(m.th.Subtext))
}

func (m Model) helpHint(p barPainter) string {
	return m.renderHint(p, m.resolver.Display(keymap.LayerGlobal, keymap.ActionHelp), "Help")
}

func joinBarSegments(p barPainter, segments ...string) string {
	var parts []string
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, p.blank(2))
}

// Toasts are transient notices stacked above the status bar.

const (
	toastTTL  = 3 * time.Second
	maxToasts = 3
)

type toast struct {
	text      string
	kind      command.ToastKind
	expiresAt time.Time
}

func (m *Model) pushToast(text string, kind command.ToastKind) {
	m.toasts = append(m.toasts, toast{text: text, kind: kind, expiresAt: time.Now().Add(toastTTL)})
	if len(m.toasts) > maxToasts {
		m.toasts = append([]toast(nil), m.toasts[len(m.toasts)-maxToasts:]...)
	}
}

func (m *Model) pruneToasts(now time.Time) {
	kept := make([]toast, 0, len(m.toasts))
	for _, t := range m.toasts {
		if t.expiresAt.After(now) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// renderToasts returns one right-aligned line per active toast.
func (m Model) renderToasts() []string {
	if len(m.toasts) == 0 {
		return nil
	}

	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		glyph, fg := "•", m.th.Info()
		if t.kind == command.ToastSuccess {
			glyph, fg = "✓", m.th.Success()
		}
		chip := lipgloss.NewStyle().
			Background(lipgloss.Color(m.th.Surface0)).
			Foreground(fg).
			Padding(0, 1).
			Render(glyph + " " + t.text)
		pad := m.width - lipgloss.Width(chip) - 1
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, strings.Repeat(" ", pad)+chip)
	}
	return lines
}
