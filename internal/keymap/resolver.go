package keymap

import "fmt"

// Resolver answers "does this key event trigger this action" and "what do
// I print in help for this action". It is built once at startup from the
// defaults merged with config overrides and never consults the config
// again.
type Resolver struct {
	table map[Layer]map[Action]Binding
}

// NewResolver merges user overrides over the default bindings. Overrides
// are keyed by layer section then action name, with values in binding
// syntax ("k/Up", "ctrl+d"). Unknown sections, unknown actions and
// unparsable bindings are errors naming the offending entry.
func NewResolver(overrides map[string]map[string]string) (*Resolver, error) {
	table := defaultBindings()
	for section, actions := range overrides {
		layerTable, ok := table[Layer(section)]
		if !ok {
			return nil, fmt.Errorf("unknown keybinding section %q", section)
		}
		for name, raw := range actions {
			if _, ok := layerTable[Action(name)]; !ok {
				return nil, fmt.Errorf("unknown keybinding %s.%s", section, name)
			}
			b, err := ParseBinding(raw)
			if err != nil {
				return nil, fmt.Errorf("keybinding %s.%s: %w", section, name, err)
			}
			layerTable[Action(name)] = b
		}
	}
	return &Resolver{table: table}, nil
}

// Default returns a resolver with the built-in bindings.
func Default() *Resolver {
	r, err := NewResolver(nil)
	if err != nil {
		panic(err)
	}
	return r
}

// Matches reports whether the key event triggers the given action.
func (r *Resolver) Matches(layer Layer, action Action, ev Key) bool {
	return r.table[layer][action].Matches(ev)
}

// Display renders the action's binding for help text, e.g. "k/Up".
func (r *Resolver) Display(layer Layer, action Action) string {
	return r.table[layer][action].Display()
}

// Binding returns the resolved binding for an action.
func (r *Resolver) Binding(layer Layer, action Action) Binding {
	return r.table[layer][action]
}
