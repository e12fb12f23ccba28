package cloud

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// ContextsFile is the file name under the app config directory holding
// the persisted context list.
const ContextsFile = "contexts.json"

// LoadContexts reads the persisted context list. A missing or
// unreadable file yields an empty list so startup never fails on it.
func LoadContexts(path string) []Context {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var contexts []Context
	if err := json.Unmarshal(data, &contexts); err != nil {
		return nil
	}
	return contexts
}

// SaveContexts writes the context list, creating directories as needed.
func SaveContexts(path string, contexts []Context) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create contexts dir: %w", err)
	}
	data, err := json.MarshalIndent(contexts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal contexts: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write contexts: %w", err)
	}
	return nil
}

// Reconcile merges freshly discovered contexts into the persisted
// list. Persisted entries keep their position and content; discovered
// contexts not yet present are appended in discovery order. Reconciling
// the same inputs twice yields the same list.
func Reconcile(existing, discovered []Context) []Context {
	merged := make([]Context, len(existing))
	copy(merged, existing)
	for _, d := range discovered {
		if !containsContext(merged, d) {
			merged = append(merged, d)
		}
	}
	return merged
}

func containsContext(list []Context, c Context) bool {
	for _, e := range list {
		if e.Provider == c.Provider && e.Name() == c.Name() {
			return true
		}
	}
	return false
}
