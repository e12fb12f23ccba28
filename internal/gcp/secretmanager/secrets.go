package secretmanager

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/jorgeparavicini/lazycloud/internal/keymap"
	"github.com/jorgeparavicini/lazycloud/internal/service"
	"github.com/jorgeparavicini/lazycloud/internal/theme"
	"github.com/jorgeparavicini/lazycloud/internal/view"
)

// Cells implements view.TableRow.
func (s Secret) Cells(th theme.Theme) []view.Cell {
	return s.CellsWithQuery(th, "")
}

// CellsWithQuery implements view.QueryCells: while a filter is active
// the labels column surfaces the best-matching label instead of the
// first one.
func (s Secret) CellsWithQuery(th theme.Theme, query string) []view.Cell {
	st := th.Styles()

	expiration := view.Cell{Text: "—", Style: st.Faint}
	if s.ExpireTime != "" {
		expiration = view.Cell{Text: s.ExpireTime, Style: st.Warning}
	}

	return []view.Cell{
		{Text: s.Name, Style: st.Text},
		{Text: s.Replication.ShortDisplay(), Style: st.Muted},
		{Text: s.CreatedAt, Style: st.Muted},
		expiration,
		{Text: formatLabels(s.Labels, query), Style: st.Info},
	}
}

// formatLabels renders the labels cell: one representative label plus
// a +N count for the rest. With an active filter the representative is
// the best fuzzy match, so the row shows why it survived.
func formatLabels(labels map[string]string, query string) string {
	if len(labels) == 0 {
		return "—"
	}

	keys := make([]string, 0, len(labels))
	for key := range labels {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	pairs := make([]string, len(keys))
	for i, key := range keys {
		if value := labels[key]; value != "" {
			pairs[i] = key + ":" + value
		} else {
			pairs[i] = key
		}
	}

	label := pairs[0]
	if query != "" {
		lowered := make([]string, len(pairs))
		for i, pair := range pairs {
			lowered[i] = strings.ToLower(pair)
		}
		if matches := fuzzy.Find(strings.ToLower(query), lowered); len(matches) > 0 {
			label = pairs[matches[0].Index]
		}
	}

	extra := len(pairs) - 1
	if runes := []rune(label); len(runes) > 20 {
		head := string(runes[:17])
		if extra > 0 {
			return fmt.Sprintf("%s… +%d", head, extra)
		}
		return head + "…"
	}
	if extra > 0 {
		return fmt.Sprintf("%s +%d", label, extra)
	}
	return label
}

// secretListScreen is the root screen: every secret of the project.
type secretListScreen struct {
	table    *view.Table[Secret]
	resolver *keymap.Resolver
}

func newSecretListScreen(secrets []Secret, resolver *keymap.Resolver) *secretListScreen {
	columns := []view.Column{
		{Title: "Name"},
		{Title: "Replication", Width: 14},
		{Title: "Created", Width: 18},
		{Title: "Expiration", Width: 18},
		{Title: "Labels", Width: 23},
	}
	table := view.NewTable(columns, secrets, resolver)
	table.SetTitle(" Secrets ")
	return &secretListScreen{table: table, resolver: resolver}
}

func (sc *secretListScreen) handleKey(msg tea.KeyMsg) view.Result[message] {
	res := sc.table.HandleKey(msg)
	if ev, ok := res.Event(); ok {
		if ev.Kind == view.TableActivated {
			return view.Event[message](selectSecretMsg{secret: ev.Row})
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
	case r.Matches(keymap.LayerSecrets, keymap.ActionViewPayload, ev):
		if hasSelection {
			return view.Event[message](loadPayloadMsg{secret: selected})
		}
	case r.Matches(keymap.LayerSecrets, keymap.ActionCopy, ev):
		if hasSelection {
			return view.Event[message](copyTextMsg{text: selected.Name, what: "secret name"})
		}
	case r.Matches(keymap.LayerSecrets, keymap.ActionNew, ev):
		return view.Event[message](showCreateSecretMsg{})
	case r.Matches(keymap.LayerSecrets, keymap.ActionDelete, ev):
		if hasSelection {
			return view.Event[message](showDeleteSecretMsg{secret: selected})
		}
	case r.Matches(keymap.LayerSecrets, keymap.ActionLabels, ev):
		if hasSelection {
			return view.Event[message](showLabelsMsg{secret: selected})
		}
	case r.Matches(keymap.LayerSecrets, keymap.ActionIAM, ev):
		if hasSelection {
			return view.Event[message](showIamPolicyMsg{secret: selected})
		}
	case r.Matches(keymap.LayerSecrets, keymap.ActionReplication, ev):
		if hasSelection {
			return view.Event[message](showReplicationMsg{secret: selected})
		}
	case r.Matches(keymap.LayerSecrets, keymap.ActionReload, ev):
		return view.Event[message](reloadDataMsg{})
	}
	return view.Ignored[message]()
}

func (sc *secretListScreen) render(width, height int, th theme.Theme) string {
	return sc.table.View(width, height, th)
}

func (sc *secretListScreen) breadcrumb() string { return "Secrets" }

func (sc *secretListScreen) reload() message { return loadSecretsMsg{} }

func (sc *secretListScreen) hints() []service.Hint {
	r := sc.resolver
	return []service.Hint{
		{Key: r.Display(keymap.LayerNavigation, keymap.ActionSelect), Description: "View versions"},
		{Key: r.Display(keymap.LayerSecrets, keymap.ActionViewPayload), Description: "View latest payload"},
		{Key: r.Display(keymap.LayerSecrets, keymap.ActionCopy), Description: "Copy name"},
		{Key: r.Display(keymap.LayerSecrets, keymap.ActionNew), Description: "New secret"},
		{Key: r.Display(keymap.LayerSecrets, keymap.ActionDelete), Description: "Delete secret"},
		{Key: r.Display(keymap.LayerSecrets, keymap.ActionLabels), Description: "Labels"},
		{Key: r.Display(keymap.LayerSecrets, keymap.ActionIAM), Description: "IAM policy"},
		{Key: r.Display(keymap.LayerSecrets, keymap.ActionReplication), Description: "Replication"},
		{Key: r.Display(keymap.LayerSecrets, keymap.ActionReload), Description: "Reload"},
		{Key: r.Display(keymap.LayerSearch, keymap.ActionSearchToggle), Description: "Search"},
	}
}

// secretNameDialog is step one of secret creation. Submitting an empty
// name cancels the flow.
type secretNameDialog struct {
	input *view.TextInput
}

func newSecretNameDialog() *secretNameDialog {
	return &secretNameDialog{input: view.NewTextInput("Secret Name", "my-secret")}
}

func (d *secretNameDialog) handleKey(msg tea.KeyMsg) view.Result[message] {
	if ev, ok := d.input.HandleKey(msg).Event(); ok {
		switch ev.Kind {
		case view.InputSubmitted:
			if ev.Value == "" {
				return view.Event[message](dialogCancelledMsg{})
			}
			return view.Event[message](createSecretStep2Msg{name: ev.Value})
		case view.InputCancelled:
			return view.Event[message](dialogCancelledMsg{})
		}
	}
	return view.Consumed[message]()
}

func (d *secretNameDialog) render(width int, th theme.Theme) string {
	return d.input.View(width, th)
}

// secretPayloadDialog is step two: the optional initial payload. An
// empty submit creates the secret without a first version.
type secretPayloadDialog struct {
	name  string
	input *view.TextInput
}

func newSecretPayloadDialog(name string) *secretPayloadDialog {
	return &secretPayloadDialog{
		name:  name,
		input: view.NewTextInput("Initial Payload (optional)", ""),
	}
}

func (d *secretPayloadDialog) handleKey(msg tea.KeyMsg) view.Result[message] {
	if ev, ok := d.input.HandleKey(msg).Event(); ok {
		switch ev.Kind {
		case view.InputSubmitted:
			return view.Event[message](createSecretMsg{name: d.name, payload: ev.Value})
		case view.InputCancelled:
			return view.Event[message](dialogCancelledMsg{})
		}
	}
	return view.Consumed[message]()
}

func (d *secretPayloadDialog) render(width int, th theme.Theme) string {
	return d.input.View(width, th)
}

type deleteSecretDialog struct {
	secret  Secret
	confirm *view.Confirm
}

func newDeleteSecretDialog(secret Secret, resolver *keymap.Resolver) *deleteSecretDialog {
	text := fmt.Sprintf("Delete secret '%s'? This cannot be undone.", secret.Name)
	confirm := view.NewConfirm(text, resolver).
		WithTitle("Delete Secret").
		WithConfirmText("Delete").
		Danger()
	return &deleteSecretDialog{secret: secret, confirm: confirm}
}

func (d *deleteSecretDialog) handleKey(msg tea.KeyMsg) view.Result[message] {
	if ev, ok := d.confirm.HandleKey(msg).Event(); ok {
		if ev == view.Confirmed {
			return view.Event[message](deleteSecretMsg{secret: d.secret})
		}
		return view.Event[message](dialogCancelledMsg{})
	}
	return view.Consumed[message]()
}

func (d *deleteSecretDialog) render(width int, th theme.Theme) string {
	return d.confirm.View(width, th)
}
