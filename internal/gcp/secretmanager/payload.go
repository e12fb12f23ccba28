package secretmanager

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jorgeparavicini/lazycloud/internal/keymap"
	"github.com/jorgeparavicini/lazycloud/internal/service"
	"github.com/jorgeparavicini/lazycloud/internal/theme"
	"github.com/jorgeparavicini/lazycloud/internal/view"
)

// payloadScreen shows one version's decoded payload in a scrollable
// viewport. A nil version means the latest alias.
type payloadScreen struct {
	secret   Secret
	version  *Version
	payload  Payload
	resolver *keymap.Resolver
	vp       viewport.Model
}

func newPayloadScreen(secret Secret, version *Version, payload Payload, resolver *keymap.Resolver) *payloadScreen {
	return &payloadScreen{
		secret:   secret,
		version:  version,
		payload:  payload,
		resolver: resolver,
		vp:       viewport.New(0, 0),
	}
}

func (sc *payloadScreen) versionID() string {
	if sc.version != nil {
		return sc.version.VersionID
	}
	return "latest"
}

func (sc *payloadScreen) cacheKey() string {
	return sc.secret.Name + "/" + sc.versionID()
}

func (sc *payloadScreen) handleKey(msg tea.KeyMsg) view.Result[message] {
	ev, ok := keymap.FromKeyMsg(msg)
	if !ok {
		return view.Ignored[message]()
	}
	r := sc.resolver

	switch {
	case r.Matches(keymap.LayerNavigation, keymap.ActionDown, ev):
		sc.vp.ScrollDown(1)
	case r.Matches(keymap.LayerNavigation, keymap.ActionUp, ev):
		sc.vp.ScrollUp(1)
	case r.Matches(keymap.LayerNavigation, keymap.ActionPageDown, ev):
		sc.vp.PageDown()
	case r.Matches(keymap.LayerNavigation, keymap.ActionPageUp, ev):
		sc.vp.PageUp()
	case r.Matches(keymap.LayerNavigation, keymap.ActionHome, ev):
		sc.vp.GotoTop()
	case r.Matches(keymap.LayerNavigation, keymap.ActionEnd, ev):
		sc.vp.GotoBottom()
	case r.Matches(keymap.LayerPayload, keymap.ActionCopy, ev):
		return view.Event[message](copyTextMsg{text: sc.payload.Data, what: "payload"})
	case r.Matches(keymap.LayerPayload, keymap.ActionReload, ev):
		return view.Event[message](reloadDataMsg{})
	default:
		return view.Ignored[message]()
	}
	return view.Consumed[message]()
}

func (sc *payloadScreen) render(width, height int, th theme.Theme) string {
	if width < 4 || height < 3 {
		return ""
	}
	st := th.Styles()

	var note string
	if sc.payload.IsBinary {
		note = st.Warning.Render("Binary payload; invalid bytes shown as �")
	}

	innerWidth := width - 2
	innerHeight := height - 2
	if note != "" {
		innerHeight--
	}
	if innerHeight < 1 {
		innerHeight = 1
	}
	if sc.vp.Width != innerWidth || sc.vp.Height != innerHeight {
		sc.vp.Width = innerWidth
		sc.vp.Height = innerHeight
		// Wrap up front; the viewport scrolls but never wraps.
		sc.vp.SetContent(lipgloss.NewStyle().Width(innerWidth).Render(sc.payload.Data))
	}

	content := sc.vp.View()
	if note != "" {
		content = note + "\n" + content
	}

	return view.Box{
		Title:      fmt.Sprintf(" %s - v%s ", sc.secret.Name, sc.versionID()),
		Width:      width,
		Height:     height,
		Border:     th.Border(),
		TitleStyle: st.Title,
	}.Render(content)
}

func (sc *payloadScreen) breadcrumb() string { return "Payload" }

func (sc *payloadScreen) reload() message {
	return loadPayloadMsg{secret: sc.secret, version: sc.version}
}

func (sc *payloadScreen) hints() []service.Hint {
	r := sc.resolver
	return []service.Hint{
		{Key: "↑/↓", Description: "Scroll"},
		{Key: r.Display(keymap.LayerPayload, keymap.ActionCopy), Description: "Copy payload"},
		{Key: r.Display(keymap.LayerPayload, keymap.ActionReload), Description: "Reload"},
	}
}
