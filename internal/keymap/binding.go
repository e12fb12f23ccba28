package keymap

import (
	"fmt"
	"strings"
)

// Binding is one or more keys bound to the same action.
type Binding []Key

// Keys builds a binding from individual keys.
func Keys(keys ...Key) Binding { return Binding(keys) }

// Matches reports whether any key in the binding matches the event.
func (b Binding) Matches(ev Key) bool {
	for _, k := range b {
		if k.Matches(ev) {
			return true
		}
	}
	return false
}

// Display renders the binding for help text, alternatives joined with "/".
func (b Binding) Display() string {
	parts := make([]string, len(b))
	for i, k := range b {
		parts[i] = k.Display()
	}
	return strings.Join(parts, "/")
}

// ParseBinding parses binding syntax with "/"-separated alternatives, e.g.
// "k/Up" or "d/Delete". A string that would split into empty tokens, such
// as a lone "/" or "ctrl+/", is parsed as a single key instead.
func ParseBinding(s string) (Binding, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty binding")
	}

	parts := strings.Split(s, "/")
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			k, err := ParseKey(s)
			if err != nil {
				return nil, err
			}
			return Binding{k}, nil
		}
	}

	keys := make([]Key, 0, len(parts))
	for _, part := range parts {
		k, err := ParseKey(part)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return Binding(keys), nil
}
