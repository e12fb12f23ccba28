package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jorgeparavicini/lazycloud/internal/cloud"
	"github.com/jorgeparavicini/lazycloud/internal/command"
	"github.com/jorgeparavicini/lazycloud/internal/config"
	"github.com/jorgeparavicini/lazycloud/internal/keymap"
	"github.com/jorgeparavicini/lazycloud/internal/service"
	"github.com/jorgeparavicini/lazycloud/internal/theme"
	"github.com/jorgeparavicini/lazycloud/internal/view"
)

// phase is the top-level application state.
type phase uint8

const (
	phaseContexts phase = iota
	phaseServices
	phaseService
)

// overlayKind discriminates the app-level overlays. Service modals live
// inside the service; the expanded command panel is tracked by the
// command tracker. At most one overlay is visible at a time.
type overlayKind uint8

const (
	overlayNone overlayKind = iota
	overlayHelp
	overlayTheme
	overlayError
)

const tickInterval = 250 * time.Millisecond

// Options configures the UI.
type Options struct {
	Context  context.Context
	Contexts []cloud.Context
	Registry *service.Registry
	Resolver *keymap.Resolver

	// Store persists theme and last-context choices. May be nil.
	Store *config.Store

	ThemeName string

	// StartContext and StartService carry validated CLI preselections;
	// LastContext is the persisted previous choice. All may be empty.
	StartContext string
	StartService string
	LastContext  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	registry *service.Registry
	resolver *keymap.Resolver
	store    *config.Store
	env      command.Env

	th     theme.Theme
	width  int
	height int
	ready  bool

	phase    phase
	contexts []cloud.Context
	ctxList  *view.List[contextRow]
	svcList  *view.List[serviceRow]
	current  cloud.Context
	haveCtx  bool

	// pendingService is a service key waiting for a compatible context.
	pendingService string

	svc     service.Service
	tracker command.Tracker

	overlay   overlayKind
	errorText string
	themeList *view.List[themeRow]

	toasts []toast
	frame  int
}

// New creates the root model, resolving CLI preselections into the
// starting phase: context and service together jump straight into the
// service; a service alone tries the last-used context and otherwise
// narrows the context list to compatible ones.
func New(opts Options, sink command.Sink) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := Model{
		ctx:      ctx,
		registry: opts.Registry,
		resolver: opts.Resolver,
		store:    opts.Store,
		env:      command.NewEnv(sink),
		th:       theme.Get(opts.ThemeName),
		contexts: opts.Contexts,
	}

	candidates := opts.Contexts
	if opts.StartService != "" {
		if p, ok := m.registry.FindByKey(opts.StartService); ok {
			m.pendingService = opts.StartService

			if opts.StartContext == "" {
				if last, ok := findContext(opts.Contexts, opts.LastContext); ok && p.Available(last) {
					m.startIn(last)
					return m
				}
				candidates = compatibleContexts(opts.Contexts, p)
			}
		}
	}

	if c, ok := findContext(opts.Contexts, opts.StartContext); ok {
		m.startIn(c)
		return m
	}

	m.phase = phaseContexts
	m.ctxList = newContextList(candidates, opts.LastContext, m.resolver)
	return m
}

// startIn primes the model to begin inside c, consuming a pending
// service when one fits.
func (m *Model) startIn(c cloud.Context) {
	m.current = c
	m.haveCtx = true

	if m.pendingService != "" {
		key := m.pendingService
		m.pendingService = ""
		if p, ok := m.registry.FindByKey(key); ok && p.Available(c) {
			m.buildService(p)
			return
		}
	}

	m.phase = phaseServices
	m.svcList = newServiceList(m.registry, c, m.resolver)
}

// buildService constructs the provider's service and moves into it. On
// failure it surfaces the error overlay over the service selector.
func (m *Model) buildService(p service.Provider) {
	svc, err := p.New(m.current, service.Deps{Resolver: m.resolver, Env: m.env})
	if err != nil {
		slog.Error("service construction failed", "service", p.Key(), "error", err)
		m.showError(fmt.Sprintf("Failed to open %s: %v", p.DisplayName(), err))
		m.phase = phaseServices
		m.svcList = newServiceList(m.registry, m.current, m.resolver)
		return
	}
	m.svc = svc
	m.phase = phaseService
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.svc != nil {
		cmds = append(cmds, serviceStartCmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case serviceStartMsg:
		if m.svc != nil {
			m.svc.Init()
			return m, m.runService()
		}
		return m, nil

	case commandDoneMsg:
		m.tracker.Complete(msg.id, msg.err == nil)
		if msg.err != nil {
			slog.Warn("command failed", "error", msg.err)
			m.showError(msg.err.Error())
		}
		return m, m.runService()

	case toastMsg:
		m.pushToast(msg.text, msg.kind)
		return m, nil

	case tea.FocusMsg, tea.ResumeMsg:
		// Terminals can drop mouse reporting while the program is
		// unfocused or stopped.
		return m, tea.EnableMouseCellMotion
	}

	return m, nil
}

// handleKey routes keyboard input: terminal chrome first (interrupt,
// suspend), then the visible overlay, then the active service, then app
// globals, then the phase views.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if msg.Type == tea.KeyCtrlZ {
		return m, tea.Suspend
	}

	if m.overlay != overlayNone {
		return m.handleOverlayKey(msg)
	}
	if m.tracker.Expanded() {
		return m.handlePanelKey(msg)
	}

	if m.phase == phaseService && m.svc != nil {
		if m.svc.HandleInput(msg) {
			return m, m.runService()
		}
	}

	ev, ok := keymap.FromKeyMsg(msg)
	if !ok {
		return m, nil
	}
	r := m.resolver
	switch {
	case r.Matches(keymap.LayerGlobal, keymap.ActionQuit, ev):
		return m, tea.Quit
	case r.Matches(keymap.LayerGlobal, keymap.ActionHelp, ev):
		m.overlay = overlayHelp
		return m, nil
	case r.Matches(keymap.LayerGlobal, keymap.ActionTheme, ev):
		m.openThemeSelector()
		return m, nil
	case r.Matches(keymap.LayerGlobal, keymap.ActionCommands, ev):
		m.tracker.ToggleExpanded()
		return m, nil
	}

	switch m.phase {
	case phaseContexts:
		return m.handleContextsKey(msg)
	case phaseServices:
		return m.handleServicesKey(msg, ev)
	}
	return m, nil
}

// handleTick advances animations, expires toasts, and forwards the tick
// to the active service.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.frame++
	if m.svc != nil {
		m.svc.HandleTick()
	}
	m.pruneToasts(time.Now())
	return m, tickCmd()
}

// runService drains the service's update funnel and spawns whatever
// commands it returns.
func (m *Model) runService() tea.Cmd {
	if m.svc == nil {
		return nil
	}

	res := m.svc.Update()
	if res.IsClose() {
		m.leaveService()
		return nil
	}
	if msg, failed := res.Err(); failed {
		slog.Warn("service update failed", "error", msg)
		m.showError(msg)
		return nil
	}

	cmds := res.Commands()
	if len(cmds) == 0 {
		return nil
	}
	spawned := make([]tea.Cmd, 0, len(cmds))
	for _, cmd := range cmds {
		id := m.tracker.Start(cmd.Name())
		spawned = append(spawned, spawn(m.ctx, cmd, id))
	}
	return tea.Batch(spawned...)
}

// leaveService tears the service down and returns to the service
// selector for the current context.
func (m *Model) leaveService() {
	if m.svc != nil {
		m.svc.Destroy()
		m.svc = nil
	}
	m.phase = phaseServices
	m.svcList = newServiceList(m.registry, m.current, m.resolver)
}

func (m *Model) showError(text string) {
	m.overlay = overlayError
	m.errorText = text
}

// persistLastContext saves the context choice so the next start can
// offer it first. Persistence failures never interrupt the session.
func (m Model) persistLastContext(name string) {
	if m.store == nil {
		return
	}
	if err := m.store.SaveLastContext(name); err != nil {
		slog.Warn("persist last context failed", "error", err)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.overlay {
	case overlayHelp:
		return m.renderHelp()
	case overlayTheme:
		return m.renderThemeSelector()
	case overlayError:
		return m.renderError()
	}
	if m.tracker.Expanded() {
		return m.renderCommandPanel()
	}

	toastLines := m.renderToasts()
	contentHeight := m.height - 1 - len(toastLines)

	var content string
	switch m.phase {
	case phaseContexts:
		content = m.renderContextSelector(contentHeight)
	case phaseServices:
		content = m.renderServiceSelector(contentHeight)
	case phaseService:
		content = m.svc.View(m.width, contentHeight, m.th)
	}
	content = fitHeight(content, contentHeight)

	var b strings.Builder
	b.WriteString(content)
	b.WriteString("\n")
	for _, line := range toastLines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// breadcrumbs returns the navigation trail shown in the status bar.
func (m Model) breadcrumbs() []string {
	crumbs := []string{"Contexts"}
	if m.haveCtx {
		crumbs = append(crumbs, m.current.Name())
	}
	if m.phase == phaseService && m.svc != nil {
		crumbs = append(crumbs, m.svc.Breadcrumbs()...)
	}
	return crumbs
}

// fitHeight pads or trims rendered content to exactly height lines so
// the status bar stays anchored to the bottom row.
func fitHeight(content string, height int) string {
	if height < 1 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func findContext(contexts []cloud.Context, name string) (cloud.Context, bool) {
	if name == "" {
		return cloud.Context{}, false
	}
	for _, c := range contexts {
		if strings.EqualFold(c.Name(), name) {
			return c, true
		}
	}
	return cloud.Context{}, false
}

func compatibleContexts(contexts []cloud.Context, p service.Provider) []cloud.Context {
	var out []cloud.Context
	for _, c := range contexts {
		if p.Available(c) {
			out = append(out, c)
		}
	}
	return out
}

// Messages

type tickMsg time.Time

// serviceStartMsg kicks off a service that was preselected before the
// program started.
type serviceStartMsg struct{}

// commandDoneMsg reports a spawned command's completion back to the
// event loop.
type commandDoneMsg struct {
	id  command.ID
	err error
}

// toastMsg carries a notification posted by a command goroutine.
type toastMsg struct {
	text string
	kind command.ToastKind
}

// Commands

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func serviceStartCmd() tea.Msg { return serviceStartMsg{} }

// spawn runs cmd on its own goroutine and posts the completion back.
// Result data travels through the service's queue; only the error and
// the tracker id come back through Bubble Tea.
func spawn(ctx context.Context, cmd command.Command, id command.ID) tea.Cmd {
	return func() tea.Msg {
		return commandDoneMsg{id: id, err: cmd.Execute(ctx)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	sink := &programSink{}
	m := New(opts, sink)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	sink.attach(p)
	_, err := p.Run()
	return err
}
