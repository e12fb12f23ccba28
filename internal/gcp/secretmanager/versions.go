package secretmanager

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jorgeparavicini/lazycloud/internal/keymap"
	"github.com/jorgeparavicini/lazycloud/internal/service"
	"github.com/jorgeparavicini/lazycloud/internal/theme"
	"github.com/jorgeparavicini/lazycloud/internal/view"
)

// Cells implements view.TableRow.
func (v Version) Cells(th theme.Theme) []view.Cell {
	st := th.Styles()

	state := view.Cell{Text: v.State, Style: st.Muted}
	switch v.State {
	case "Enabled":
		state.Style = st.Success
	case "Disabled":
		state.Style = st.Warning
	case "Destroyed":
		state.Style = st.Danger
	}

	return []view.Cell{
		{Text: v.VersionID, Style: st.Text},
		state,
		{Text: v.CreatedAt, Style: st.Muted},
	}
}

// versionListScreen lists one secret's versions. Disable, enable and
// destroy are gated on the selected version's state so impossible
// transitions never reach the API.
type versionListScreen struct {
	secret   Secret
	table    *view.Table[Version]
	resolver *keymap.Resolver
}

func newVersionListScreen(secret Secret, versions []Version, resolver *keymap.Resolver) *versionListScreen {
	columns := []view.Column{
		{Title: "Version", Width: 10},
		{Title: "State", Width: 12},
		{Title: "Created"},
	}
	table := view.NewTable(columns, versions, resolver)
	table.SetTitle(fmt.Sprintf(" %s - Versions ", secret.Name))
	return &versionListScreen{secret: secret, table: table, resolver: resolver}
}

func (sc *versionListScreen) handleKey(msg tea.KeyMsg) view.Result[message] {
	res := sc.table.HandleKey(msg)
	if ev, ok := res.Event(); ok {
		if ev.Kind == view.TableActivated {
			return view.Event[message](selectVersionMsg{secret: sc.secret, version: ev.Row})
		}
		return view.Consumed[message]()
	}
	if res.IsConsumed() {
		return view.Consumed[message]()
	}

	ev, ok := keymap.FromKeyMsg(msg)
	if !ok {
		return view.Ignored[message]()
	}
	r := sc.resolver
	selected, hasSelection := sc.table.SelectedItem()

	switch {
	case r.Matches(keymap.LayerVersions, keymap.ActionAdd, ev):
		return view.Event[message](showCreateVersionMsg{secret: sc.secret})
	case r.Matches(keymap.LayerVersions, keymap.ActionDisable, ev):
		if hasSelection && selected.State == "Enabled" {
			return view.Event[message](disableVersionMsg{secret: sc.secret, version: selected})
		}
	case r.Matches(keymap.LayerVersions, keymap.ActionEnable, ev):
		if hasSelection && selected.State == "Disabled" {
			return view.Event[message](enableVersionMsg{secret: sc.secret, version: selected})
		}
	case r.Matches(keymap.LayerVersions, keymap.ActionDestroy, ev):
		if hasSelection && selected.State != "Destroyed" {
			return view.Event[message](showDestroyVersionMsg{secret: sc.secret, version: selected})
		}
	case r.Matches(keymap.LayerVersions, keymap.ActionReload, ev):
		return view.Event[message](reloadDataMsg{})
	}
	return view.Ignored[message]()
}

func (sc *versionListScreen) render(width, height int, th theme.Theme) string {
	return sc.table.View(width, height, th)
}

func (sc *versionListScreen) breadcrumb() string { return "Versions" }

func (sc *versionListScreen) reload() message { return selectSecretMsg{secret: sc.secret} }

func (sc *versionListScreen) hints() []service.Hint {
	r := sc.resolver
	return []service.Hint{
		{Key: r.Display(keymap.LayerNavigation, keymap.ActionSelect), Description: "View payload"},
		{Key: r.Display(keymap.LayerVersions, keymap.ActionAdd), Description: "Add version"},
		{Key: r.Display(keymap.LayerVersions, keymap.ActionDisable), Description: "Disable"},
		{Key: r.Display(keymap.LayerVersions, keymap.ActionEnable), Description: "Enable"},
		{Key: r.Display(keymap.LayerVersions, keymap.ActionDestroy), Description: "Destroy"},
		{Key: r.Display(keymap.LayerVersions, keymap.ActionReload), Description: "Reload"},
		{Key: r.Display(keymap.LayerSearch, keymap.ActionSearchToggle), Description: "Search"},
	}
}

// versionPayloadDialog collects the payload for a new version. An empty
// submit cancels instead of writing an empty version.
type versionPayloadDialog struct {
	secret Secret
	input  *view.TextInput
}

func newVersionPayloadDialog(secret Secret) *versionPayloadDialog {
	return &versionPayloadDialog{
		secret: secret,
		input:  view.NewTextInput("New Version Payload", ""),
	}
}

func (d *versionPayloadDialog) handleKey(msg tea.KeyMsg) view.Result[message] {
	if ev, ok := d.input.HandleKey(msg).Event(); ok {
		switch ev.Kind {
		case view.InputSubmitted:
			if ev.Value == "" {
				return view.Event[message](dialogCancelledMsg{})
			}
			return view.Event[message](createVersionMsg{secret: d.secret, payload: ev.Value})
		case view.InputCancelled:
			return view.Event[message](dialogCancelledMsg{})
		}
	}
	return view.Consumed[message]()
}

func (d *versionPayloadDialog) render(width int, th theme.Theme) string {
	return d.input.View(width, th)
}

type destroyVersionDialog struct {
	secret  Secret
	version Version
	confirm *view.Confirm
}

func newDestroyVersionDialog(secret Secret, version Version, resolver *keymap.Resolver) *destroyVersionDialog {
	text := fmt.Sprintf("Destroy version '%s'? This is permanent and cannot be undone.", version.VersionID)
	confirm := view.NewConfirm(text, resolver).
		WithTitle("Destroy Version").
		WithConfirmText("Destroy").
		Danger()
	return &destroyVersionDialog{secret: secret, version: version, confirm: confirm}
}

func (d *destroyVersionDialog) handleKey(msg tea.KeyMsg) view.Result[message] {
	if ev, ok := d.confirm.HandleKey(msg).Event(); ok {
		if ev == view.Confirmed {
			return view.Event[message](destroyVersionMsg{secret: d.secret, version: d.version})
		}
		return view.Event[message](dialogCancelledMsg{})
	}
	return view.Consumed[message]()
}

func (d *destroyVersionDialog) render(width int, th theme.Theme) string {
	return d.confirm.View(width, th)
}
