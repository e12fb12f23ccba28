package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jorgeparavicini/lazycloud/internal/cloud"
	"github.com/jorgeparavicini/lazycloud/internal/keymap"
	"github.com/jorgeparavicini/lazycloud/internal/service"
	"github.com/jorgeparavicini/lazycloud/internal/theme"
	"github.com/jorgeparavicini/lazycloud/internal/view"
)

// contextRow adapts a cloud context for the selector list.
type contextRow struct {
	ctx cloud.Context
}

func (r contextRow) Item(th theme.Theme) view.Cell {
	return view.Cell{Text: r.ctx.String(), Style: th.Styles().Text}
}

func newContextList(contexts []cloud.Context, lastName string, resolver *keymap.Resolver) *view.List[contextRow] {
	rows := make([]contextRow, len(contexts))
	for i, c := range contexts {
		rows[i] = contextRow{ctx: c}
	}
	l := view.NewList(rows, resolver)
	for i, c := range contexts {
		if lastName != "" && strings.EqualFold(c.Name(), lastName) {
			l.Select(i)
			break
		}
	}
	return l
}

// serviceRow adapts a service provider for the selector list.
type serviceRow struct {
	provider service.Provider
}

func (r serviceRow) Item(th theme.Theme) view.Cell {
	p := r.provider
	text := p.DisplayName() + " - " + p.Description()
	if p.Icon() != "" {
		text = p.Icon() + " " + text
	}
	return view.Cell{Text: text, Style: th.Styles().Text}
}

func newServiceList(registry *service.Registry, c cloud.Context, resolver *keymap.Resolver) *view.List[serviceRow] {
	available := registry.Available(c)
	rows := make([]serviceRow, len(available))
	for i, p := range available {
		rows[i] = serviceRow{provider: p}
	}
	return view.NewList(rows, resolver)
}

func (m Model) handleContextsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctxList == nil {
		return m, nil
	}
	res := m.ctxList.HandleKey(msg)
	if ev, ok := res.Event(); ok && ev.Kind == view.ListActivated {
		m.selectContext(ev.Row.ctx)
		if m.phase == phaseService {
			return m, serviceStartCmd
		}
	}
	return m, nil
}

func (m Model) handleServicesKey(msg tea.KeyMsg, ev keymap.Key) (tea.Model, tea.Cmd) {
	if m.resolver.Matches(keymap.LayerGlobal, keymap.ActionBack, ev) {
		m.phase = phaseContexts
		m.haveCtx = false
		m.ctxList = newContextList(m.contexts, m.current.Name(), m.resolver)
		return m, nil
	}

	if m.svcList == nil {
		return m, nil
	}
	res := m.svcList.HandleKey(msg)
	if ev2, ok := res.Event(); ok && ev2.Kind == view.ListActivated {
		m.buildService(ev2.Row.provider)
		if m.phase == phaseService {
			return m, serviceStartCmd
		}
	}
	return m, nil
}

// selectContext commits a context chosen in the selector and persists
// it as the new last context.
func (m *Model) selectContext(c cloud.Context) {
	m.persistLastContext(c.Name())
	m.startIn(c)
}

func (m Model) renderContextSelector(height int) string {
	st := m.th.Styles()

	if m.ctxList == nil || len(m.contexts) == 0 {
		message := strings.Join([]string{
			st.Text.Render("No cloud contexts found."),
			"",
			st.Muted.Render("Create a gcloud configuration (gcloud config configurations create)"),
			st.Muted.Render("and restart to see it here."),
		}, "\n")
		box := view.Box{
			Title:      " Select Context ",
			Width:      min(m.width-8, 72),
			Border:     m.th.Border(),
			TitleStyle: st.Title,
		}
		return m.centered(height, box.Render(message))
	}

	return m.renderSelector(" Select Context ", height, func(w, h int) string {
		return m.ctxList.View(w, h, m.th)
	}, m.ctxList.Len())
}

func (m Model) renderServiceSelector(height int) string {
	st := m.th.Styles()

	if m.svcList == nil || m.svcList.Len() == 0 {
		box := view.Box{
			Title:      " Select Service ",
			Width:      min(m.width-8, 72),
			Border:     m.th.Border(),
			TitleStyle: st.Title,
		}
		return m.centered(height, box.Render(st.Muted.Render("No services available for this context.")))
	}

	title := " Select Service - " + m.current.Name() + " "
	return m.renderSelector(title, height, func(w, h int) string {
		return m.svcList.View(w, h, m.th)
	}, m.svcList.Len())
}

// renderSelector centers a boxed list sized to its rows.
func (m Model) renderSelector(title string, height int, body func(w, h int) string, rows int) string {
	width := min(m.width-8, 72)
	if width < 20 {
		width = m.width
	}
	inner := min(rows, max(height-4, 1))

	box := view.Box{
		Title:      title,
		Width:      width,
		Border:     m.th.Border(),
		TitleStyle: m.th.Styles().Title,
	}
	return m.centered(height, box.Render(body(width-2, inner)))
}
