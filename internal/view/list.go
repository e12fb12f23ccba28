package view

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jorgeparavicini/lazycloud/internal/keymap"
	"github.com/jorgeparavicini/lazycloud/internal/theme"
)

// ListEventKind discriminates the events a List emits.
type ListEventKind uint8

const (
	// ListChanged fires when the selection moves to a different row.
	ListChanged ListEventKind = iota
	// ListActivated fires when the selected row is activated.
	ListActivated
)

// ListEvent carries a list event.
type ListEvent[T any] struct {
	Kind ListEventKind
	Row  T
}

// ListRow is implemented by types that can appear in a List.
type ListRow interface {
	Item(th theme.Theme) Cell
}

const listPageStep = 5

// List is a keyboard-navigable single-column selection. Navigation is
// resolved through the shared key resolver, so the bindings follow the
// user's configuration.
type List[T ListRow] struct {
	items    []T
	cursor   int // -1 when the list is empty
	offset   int
	resolver *keymap.Resolver
}

// NewList builds a list over items with the selection anchored to the
// first row.
func NewList[T ListRow](items []T, resolver *keymap.Resolver) *List[T] {
	cursor := -1
	if len(items) > 0 {
		cursor = 0
	}
	return &List[T]{items: items, cursor: cursor, resolver: resolver}
}

// SelectedItem returns the currently selected row, if any.
func (l *List[T]) SelectedItem() (T, bool) {
	var zero T
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return zero, false
	}
	return l.items[l.cursor], true
}

// Select moves the selection to index. Out-of-range values are ignored.
func (l *List[T]) Select(index int) {
	if index >= 0 && index < len(l.items) {
		l.cursor = index
	}
}

// Len returns the number of rows.
func (l *List[T]) Len() int { return len(l.items) }

func (l *List[T]) changeEvent(before int) Result[ListEvent[T]] {
	if l.cursor >= 0 && l.cursor != before {
		return Event(ListEvent[T]{Kind: ListChanged, Row: l.items[l.cursor]})
	}
	return Consumed[ListEvent[T]]()
}

// HandleKey applies a navigation key to the selection.
func (l *List[T]) HandleKey(msg tea.KeyMsg) Result[ListEvent[T]] {
	ev, ok := keymap.FromKeyMsg(msg)
	if !ok {
		return Ignored[ListEvent[T]]()
	}
	r := l.resolver
	before := l.cursor

	switch {
	case r.Matches(keymap.LayerNavigation, keymap.ActionDown, ev):
		if len(l.items) > 0 && l.cursor < len(l.items)-1 {
			l.cursor++
		}
		return l.changeEvent(before)

	case r.Matches(keymap.LayerNavigation, keymap.ActionUp, ev):
		if l.cursor > 0 {
			l.cursor--
		}
		return l.changeEvent(before)

	case r.Matches(keymap.LayerNavigation, keymap.ActionHome, ev):
		if len(l.items) > 0 {
			l.cursor = 0
		}
		return l.changeEvent(before)

	case r.Matches(keymap.LayerNavigation, keymap.ActionEnd, ev):
		if len(l.items) > 0 {
			l.cursor = len(l.items) - 1
		}
		return l.changeEvent(before)

	case r.Matches(keymap.LayerNavigation, keymap.ActionPageDown, ev):
		if len(l.items) > 0 {
			next := 0
			if l.cursor >= 0 {
				next = min(l.cursor+listPageStep, len(l.items)-1)
			}
			l.cursor = next
		}
		return l.changeEvent(before)

	case r.Matches(keymap.LayerNavigation, keymap.ActionPageUp, ev):
		if len(l.items) > 0 {
			next := 0
			if l.cursor >= 0 {
				next = max(l.cursor-listPageStep, 0)
			}
			l.cursor = next
		}
		return l.changeEvent(before)

	case r.Matches(keymap.LayerNavigation, keymap.ActionSelect, ev):
		if row, ok := l.SelectedItem(); ok {
			return Event(ListEvent[T]{Kind: ListActivated, Row: row})
		}
		return Ignored[ListEvent[T]]()
	}

	return Ignored[ListEvent[T]]()
}

// View renders the list rows without a surrounding frame; callers wrap
// it in a Box when they want one.
func (l *List[T]) View(width, height int, th theme.Theme) string {
	if width < 4 || height < 1 {
		return ""
	}

	if l.cursor >= 0 {
		if l.cursor < l.offset {
			l.offset = l.cursor
		}
		if l.cursor >= l.offset+height {
			l.offset = l.cursor - height + 1
		}
	}
	l.offset = min(max(l.offset, 0), max(len(l.items)-height, 0))

	selectedStyle := lipgloss.NewStyle().
		Background(th.SelectionBg()).
		Foreground(lipgloss.Color(th.Lavender)).
		Bold(true)

	lines := make([]string, 0, height)
	end := min(l.offset+height, len(l.items))
	for i := l.offset; i < end; i++ {
		cell := l.items[i].Item(th)
		if i == l.cursor {
			lines = append(lines, selectedStyle.Render(padCell("▶ "+cell.Text, width)))
		} else {
			lines = append(lines, "  "+cell.Style.Render(padCell(cell.Text, width-2)))
		}
	}
	return strings.Join(lines, "\n")
}
