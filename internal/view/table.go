package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jorgeparavicini/lazycloud/internal/keymap"
	"github.com/jorgeparavicini/lazycloud/internal/theme"
)

// TableEventKind discriminates the events a Table emits.
type TableEventKind uint8

const (
	// TableChanged fires when the selection moves to a different row.
	TableChanged TableEventKind = iota
	// TableActivated fires when the selected row is activated.
	TableActivated
	// TableSearchChanged fires when the filter query changes.
	TableSearchChanged
)

// TableEvent carries a table event. Row is set for Changed and
// Activated; Query is set for SearchChanged.
type TableEvent[T any] struct {
	Kind  TableEventKind
	Row   T
	Query string
}

// Cell is one rendered table cell. The text is truncated and padded to
// the column width before the style is applied, so styles never affect
// layout.
type Cell struct {
	Text  string
	Style lipgloss.Style
}

// Column describes one table column. A zero Width marks the flexible
// column that absorbs whatever width the fixed columns leave over.
type Column struct {
	Title string
	Width int
}

// TableRow is implemented by types that can appear in a Table.
type TableRow interface {
	// Cells renders the row, one cell per column.
	Cells(th theme.Theme) []Cell

	// Matches reports whether the row survives the given filter query.
	Matches(query string) bool
}

// QueryCells may be implemented by rows whose cells change with the
// active filter, e.g. to surface the best-matching label first.
type QueryCells interface {
	CellsWithQuery(th theme.Theme, query string) []Cell
}

const tablePageStep = 10

// Table is a keyboard-navigable row collection with an incremental
// filter. Filtering keeps an ordered index view into the full item
// list; the cursor addresses the filtered view, so the selection
// re-anchors to the top whenever the current row falls out of the
// filter.
type Table[T TableRow] struct {
	columns  []Column
	items    []T
	filtered []int
	cursor   int // index into filtered, -1 when nothing is selectable
	offset   int // first visible filtered row, adjusted at render time
	title    string

	searching bool
	query     string

	resolver *keymap.Resolver
}

// NewTable builds a table over items with the selection anchored to the
// first row.
func NewTable[T TableRow](columns []Column, items []T, resolver *keymap.Resolver) *Table[T] {
	t := &Table[T]{
		columns:  columns,
		items:    items,
		cursor:   -1,
		resolver: resolver,
	}
	t.updateFilter()
	return t
}

// SetTitle sets the text embedded in the table's top border.
func (t *Table[T]) SetTitle(title string) { t.title = title }

// SelectedItem returns the currently selected row, if any.
func (t *Table[T]) SelectedItem() (T, bool) {
	var zero T
	if t.cursor < 0 || t.cursor >= len(t.filtered) {
		return zero, false
	}
	return t.items[t.filtered[t.cursor]], true
}

// Query returns the active filter query.
func (t *Table[T]) Query() string { return t.query }

func (t *Table[T]) updateFilter() {
	t.filtered = t.filtered[:0]
	for i, item := range t.items {
		if t.query == "" || item.Matches(t.query) {
			t.filtered = append(t.filtered, i)
		}
	}
	if len(t.filtered) == 0 {
		t.cursor = -1
	} else if t.cursor < 0 || t.cursor >= len(t.filtered) {
		t.cursor = 0
	}
}

// changeEvent reports a Changed event when the cursor moved away from
// before, and plain consumption otherwise.
func (t *Table[T]) changeEvent(before int) Result[TableEvent[T]] {
	if t.cursor >= 0 && t.cursor != before && t.cursor < len(t.filtered) {
		return Event(TableEvent[T]{Kind: TableChanged, Row: t.items[t.filtered[t.cursor]]})
	}
	return Consumed[TableEvent[T]]()
}

// HandleKey routes a key event through the filter editor or the
// navigation handler depending on mode.
func (t *Table[T]) HandleKey(msg tea.KeyMsg) Result[TableEvent[T]] {
	ev, ok := keymap.FromKeyMsg(msg)
	if !ok {
		return Ignored[TableEvent[T]]()
	}
	if t.searching {
		return t.handleSearchKey(ev)
	}
	return t.handleNavigationKey(ev)
}

func (t *Table[T]) handleSearchKey(ev keymap.Key) Result[TableEvent[T]] {
	if t.resolver.Matches(keymap.LayerSearch, keymap.ActionSearchExit, ev) {
		t.searching = false
		hadQuery := t.query != ""
		t.query = ""
		t.updateFilter()
		if hadQuery {
			return Event(TableEvent[T]{Kind: TableSearchChanged})
		}
		return Consumed[TableEvent[T]]()
	}

	// Select exits search mode but keeps the filter applied.
	if t.resolver.Matches(keymap.LayerNavigation, keymap.ActionSelect, ev) {
		t.searching = false
		return Consumed[TableEvent[T]]()
	}

	switch {
	case ev.Code == keymap.CodeBackspace:
		runes := []rune(t.query)
		if len(runes) > 0 {
			t.query = string(runes[:len(runes)-1])
		}
		t.updateFilter()
		return Event(TableEvent[T]{Kind: TableSearchChanged, Query: t.query})
	case ev.Code == keymap.CodeChar && ev.Mods&(keymap.ModCtrl|keymap.ModAlt) == 0:
		t.query += string(ev.Rune)
		t.updateFilter()
		return Event(TableEvent[T]{Kind: TableSearchChanged, Query: t.query})
	}

	// Everything else is swallowed while the search buffer has focus.
	return Consumed[TableEvent[T]]()
}

func (t *Table[T]) handleNavigationKey(ev keymap.Key) Result[TableEvent[T]] {
	r := t.resolver
	before := t.cursor

	switch {
	case r.Matches(keymap.LayerNavigation, keymap.ActionDown, ev):
		if len(t.filtered) > 0 && t.cursor < len(t.filtered)-1 {
			t.cursor++
		}
		return t.changeEvent(before)

	case r.Matches(keymap.LayerNavigation, keymap.ActionUp, ev):
		if t.cursor > 0 {
			t.cursor--
		}
		return t.changeEvent(before)

	case r.Matches(keymap.LayerNavigation, keymap.ActionHome, ev):
		if len(t.filtered) > 0 {
			t.cursor = 0
		}
		return t.changeEvent(before)

	case r.Matches(keymap.LayerNavigation, keymap.ActionEnd, ev):
		if len(t.filtered) > 0 {
			t.cursor = len(t.filtered) - 1
		}
		return t.changeEvent(before)

	case r.Matches(keymap.LayerNavigation, keymap.ActionPageDown, ev):
		if len(t.filtered) > 0 {
			next := 0
			if t.cursor >= 0 {
				next = min(t.cursor+tablePageStep, len(t.filtered)-1)
			}
			t.cursor = next
		}
		return t.changeEvent(before)

	case r.Matches(keymap.LayerNavigation, keymap.ActionPageUp, ev):
		if len(t.filtered) > 0 {
			next := 0
			if t.cursor >= 0 {
				next = max(t.cursor-tablePageStep, 0)
			}
			t.cursor = next
		}
		return t.changeEvent(before)

	case r.Matches(keymap.LayerNavigation, keymap.ActionSelect, ev):
		if row, ok := t.SelectedItem(); ok {
			return Event(TableEvent[T]{Kind: TableActivated, Row: row})
		}
		return Ignored[TableEvent[T]]()

	case r.Matches(keymap.LayerSearch, keymap.ActionSearchToggle, ev):
		t.searching = true
		return Consumed[TableEvent[T]]()

	case r.Matches(keymap.LayerSearch, keymap.ActionSearchExit, ev) && t.query != "":
		t.query = ""
		t.updateFilter()
		return Consumed[TableEvent[T]]()
	}

	return Ignored[TableEvent[T]]()
}

// columnWidths distributes innerWidth across the columns: fixed widths
// first, then the remainder to the flexible column.
func (t *Table[T]) columnWidths(innerWidth int) []int {
	const gutter = 2 // selection marker column

	widths := make([]int, len(t.columns))
	avail := innerWidth - gutter - 2*(len(t.columns)-1)
	flex := -1
	for i, c := range t.columns {
		if c.Width == 0 {
			flex = i
			continue
		}
		widths[i] = c.Width
		avail -= c.Width
	}
	if flex >= 0 {
		widths[flex] = max(avail, 1)
	}
	return widths
}

func padCell(text string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(text, width, "…"), width)
}

// ensureVisible scrolls the render offset so the cursor stays inside
// the viewport.
func (t *Table[T]) ensureVisible(bodyHeight int) {
	if bodyHeight <= 0 {
		t.offset = 0
		return
	}
	if t.cursor >= 0 {
		if t.cursor < t.offset {
			t.offset = t.cursor
		}
		if t.cursor >= t.offset+bodyHeight {
			t.offset = t.cursor - bodyHeight + 1
		}
	}
	maxOffset := max(len(t.filtered)-bodyHeight, 0)
	t.offset = min(max(t.offset, 0), maxOffset)
}

// View renders the table into the given area. The filter bar occupies
// the bottom line whenever the filter editor is open or a query is
// applied.
func (t *Table[T]) View(width, height int, th theme.Theme) string {
	if width < 4 || height < 3 {
		return ""
	}
	st := th.Styles()

	hasSearchBar := t.searching || t.query != ""
	boxHeight := height
	if hasSearchBar {
		boxHeight--
	}

	innerWidth := width - 2
	bodyHeight := boxHeight - 3 // border rows plus header
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	t.ensureVisible(bodyHeight)

	widths := t.columnWidths(innerWidth)

	headerCells := make([]string, len(t.columns))
	for i, c := range t.columns {
		headerCells[i] = padCell(c.Title, widths[i])
	}
	headerStyle := st.Header.Background(lipgloss.Color(th.Surface0))
	header := headerStyle.Render(padCell("  "+strings.Join(headerCells, "  "), innerWidth))

	selectedStyle := lipgloss.NewStyle().
		Background(th.SelectionBg()).
		Foreground(lipgloss.Color(th.Lavender)).
		Bold(true)

	lines := make([]string, 0, bodyHeight+1)
	lines = append(lines, header)
	end := min(t.offset+bodyHeight, len(t.filtered))
	for pos := t.offset; pos < end; pos++ {
		row := t.items[t.filtered[pos]]
		cells := row.Cells(th)
		if qc, ok := any(row).(QueryCells); ok && t.query != "" {
			cells = qc.CellsWithQuery(th, t.query)
		}

		if pos == t.cursor {
			parts := make([]string, 0, len(cells))
			for i, c := range cells {
				if i >= len(widths) {
					break
				}
				parts = append(parts, padCell(c.Text, widths[i]))
			}
			lines = append(lines, selectedStyle.Render(padCell("▶ "+strings.Join(parts, "  "), innerWidth)))
			continue
		}

		parts := make([]string, 0, len(cells))
		for i, c := range cells {
			if i >= len(widths) {
				break
			}
			parts = append(parts, c.Style.Render(padCell(c.Text, widths[i])))
		}
		lines = append(lines, "  "+strings.Join(parts, "  "))
	}
	for len(lines) < bodyHeight+1 {
		lines = append(lines, "")
	}

	out := Box{
		Title:      t.title,
		Width:      width,
		Height:     boxHeight,
		Border:     th.Border(),
		TitleStyle: st.Title,
	}.Render(strings.Join(lines, "\n"))

	if hasSearchBar {
		var bar string
		if t.searching {
			bar = st.Warning.Render("/" + t.query + "_")
		} else {
			bar = st.Muted.Render(fmt.Sprintf("/%s (%d matches)", t.query, len(t.filtered)))
		}
		out += "\n" + bar
	}
	return out
}
