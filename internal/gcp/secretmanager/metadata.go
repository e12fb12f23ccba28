package secretmanager

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jorgeparavicini/lazycloud/internal/keymap"
	"github.com/jorgeparavicini/lazycloud/internal/search"
	"github.com/jorgeparavicini/lazycloud/internal/service"
	"github.com/jorgeparavicini/lazycloud/internal/theme"
	"github.com/jorgeparavicini/lazycloud/internal/view"
)

// labelRow adapts one label to a table row.
type labelRow struct {
	key   string
	value string
}

func (l labelRow) Cells(th theme.Theme) []view.Cell {
	st := th.Styles()
	return []view.Cell{
		{Text: l.key, Style: st.Info},
		{Text: l.value, Style: st.Text},
	}
}

func (l labelRow) Matches(query string) bool {
	return search.Matches(l.key, query) || search.Matches(l.value, query)
}

// labelsScreen is a read-only view of a secret's labels. It renders
// from the secret snapshot it was opened with; reload refetches nothing
// because labels travel with the secret itself.
type labelsScreen struct {
	secret   Secret
	table    *view.Table[labelRow]
	resolver *keymap.Resolver
}

func newLabelsScreen(secret Secret, resolver *keymap.Resolver) *labelsScreen {
	keys := make([]string, 0, len(secret.Labels))
	for key := range secret.Labels {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	rows := make([]labelRow, len(keys))
	for i, key := range keys {
		rows[i] = labelRow{key: key, value: secret.Labels[key]}
	}

	columns := []view.Column{
		{Title: "Key", Width: 24},
		{Title: "Value"},
	}
	table := view.NewTable(columns, rows, resolver)
	table.SetTitle(fmt.Sprintf(" %s - Labels ", secret.Name))
	return &labelsScreen{secret: secret, table: table, resolver: resolver}
}

func (sc *labelsScreen) handleKey(msg tea.KeyMsg) view.Result[message] {
	res := sc.table.HandleKey(msg)
	if res.IsConsumed() {
		return view.Consumed[message]()
	}

	if ev, ok := keymap.FromKeyMsg(msg); ok {
		if sc.resolver.Matches(keymap.LayerSecrets, keymap.ActionReload, ev) {
			return view.Event[message](reloadDataMsg{})
		}
	}
	return view.Ignored[message]()
}

func (sc *labelsScreen) render(width, height int, th theme.Theme) string {
	return sc.table.View(width, height, th)
}

func (sc *labelsScreen) breadcrumb() string { return "Labels" }

func (sc *labelsScreen) reload() message { return showLabelsMsg{secret: sc.secret} }

func (sc *labelsScreen) hints() []service.Hint {
	r := sc.resolver
	return []service.Hint{
		{Key: r.Display(keymap.LayerSecrets, keymap.ActionReload), Description: "Reload"},
		{Key: r.Display(keymap.LayerSearch, keymap.ActionSearchToggle), Description: "Search"},
	}
}

// Cells implements view.TableRow.
func (b IamBinding) Cells(th theme.Theme) []view.Cell {
	st := th.Styles()
	return []view.Cell{
		{Text: b.Role, Style: st.Accent},
		{Text: formatMembers(b.Members), Style: st.Text},
	}
}

// formatMembers renders a binding's member list, truncating long lists
// to the first two entries plus a count.
func formatMembers(members []string) string {
	switch {
	case len(members) == 0:
		return "(none)"
	case len(members) <= 3:
		return strings.Join(members, ", ")
	default:
		return fmt.Sprintf("%s, ... (+%d more)", strings.Join(members[:2], ", "), len(members)-2)
	}
}

// iamPolicyScreen lists the role bindings attached to a secret.
type iamPolicyScreen struct {
	secret   Secret
	table    *view.Table[IamBinding]
	resolver *keymap.Resolver
}

func newIamPolicyScreen(secret Secret, policy IamPolicy, resolver *keymap.Resolver) *iamPolicyScreen {
	columns := []view.Column{
		{Title: "Role", Width: 40},
		{Title: "Members"},
	}
	table := view.NewTable(columns, policy.Bindings, resolver)
	table.SetTitle(fmt.Sprintf(" %s - IAM Policy ", secret.Name))
	return &iamPolicyScreen{secret: secret, table: table, resolver: resolver}
}

func (sc *iamPolicyScreen) handleKey(msg tea.KeyMsg) view.Result[message] {
	res := sc.table.HandleKey(msg)
	if res.IsConsumed() {
		return view.Consumed[message]()
	}

	if ev, ok := keymap.FromKeyMsg(msg); ok {
		if sc.resolver.Matches(keymap.LayerSecrets, keymap.ActionReload, ev) {
			return view.Event[message](reloadDataMsg{})
		}
	}
	return view.Ignored[message]()
}

func (sc *iamPolicyScreen) render(width, height int, th theme.Theme) string {
	return sc.table.View(width, height, th)
}

func (sc *iamPolicyScreen) breadcrumb() string { return "IAM Policy" }

func (sc *iamPolicyScreen) reload() message { return showIamPolicyMsg{secret: sc.secret} }

func (sc *iamPolicyScreen) hints() []service.Hint {
	r := sc.resolver
	return []service.Hint{
		{Key: r.Display(keymap.LayerSecrets, keymap.ActionReload), Description: "Reload"},
		{Key: r.Display(keymap.LayerSearch, keymap.ActionSearchToggle), Description: "Search"},
	}
}

// replicationScreen is a static panel describing where the secret's
// payloads live.
type replicationScreen struct {
	secret      Secret
	replication Replication
	resolver    *keymap.Resolver
}

func newReplicationScreen(secret Secret, replication Replication, resolver *keymap.Resolver) *replicationScreen {
	return &replicationScreen{secret: secret, replication: replication, resolver: resolver}
}

func (sc *replicationScreen) handleKey(msg tea.KeyMsg) view.Result[message] {
	if ev, ok := keymap.FromKeyMsg(msg); ok {
		if sc.resolver.Matches(keymap.LayerSecrets, keymap.ActionReload, ev) {
			return view.Event[message](reloadDataMsg{})
		}
	}
	return view.Ignored[message]()
}

func (sc *replicationScreen) render(width, height int, th theme.Theme) string {
	if width < 4 || height < 3 {
		return ""
	}
	st := th.Styles()

	var lines []string
	if sc.replication.Automatic {
		lines = append(lines,
			st.Text.Render("Type: ")+st.Success.Render("Automatic"),
			"",
			st.Muted.Render("Secret is automatically replicated across all GCP regions."),
		)
	} else {
		lines = append(lines,
			st.Text.Render("Type: ")+st.Info.Render("User-Managed"),
			"",
			st.Text.Render("Locations:"),
		)
		if len(sc.replication.Locations) == 0 {
			lines = append(lines, st.Faint.Render("  (no locations configured)"))
		}
		for _, location := range sc.replication.Locations {
			lines = append(lines, st.Success.Render("  - "+location))
		}
	}

	return view.Box{
		Title:      fmt.Sprintf(" %s - Replication ", sc.secret.Name),
		Width:      width,
		Height:     height,
		Border:     th.Border(),
		TitleStyle: st.Title,
	}.Render(strings.Join(lines, "\n"))
}

func (sc *replicationScreen) breadcrumb() string { return "Replication" }

func (sc *replicationScreen) reload() message { return showReplicationMsg{secret: sc.secret} }

func (sc *replicationScreen) hints() []service.Hint {
	return []service.Hint{
		{Key: sc.resolver.Display(keymap.LayerSecrets, keymap.ActionReload), Description: "Reload"},
	}
}
