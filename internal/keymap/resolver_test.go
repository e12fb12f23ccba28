package keymap

import (
	"strings"
	"testing"
)

func TestDefaultResolverMatches(t *testing.T) {
	r := Default()

	tests := []struct {
		layer  Layer
		action Action
		ev     Key
		want   bool
	}{
		{LayerGlobal, ActionQuit, Char('q'), true},
		{LayerGlobal, ActionQuit, Char('Q'), false},
		{LayerGlobal, ActionHelp, Char('?'), true},
		{LayerGlobal, ActionBack, Special(CodeEsc), true},
		{LayerNavigation, ActionDown, Char('j'), true},
		{LayerNavigation, ActionDown, Special(CodeDown), true},
		{LayerNavigation, ActionDown, Char('x'), false},
		{LayerNavigation, ActionHome, Char('g'), true},
		{LayerNavigation, ActionEnd, Char('G'), true},
		{LayerNavigation, ActionEnd, Char('g'), false},
		{LayerSecrets, ActionReplication, Char('R'), true},
		{LayerSecrets, ActionReplication, Char('r'), false},
		{LayerSecrets, ActionReload, Char('r'), true},
		{LayerSecrets, ActionReload, Char('R'), false},
		{LayerSecrets, ActionDelete, Special(CodeDelete), true},
		{LayerVersions, ActionDestroy, Char('D'), true},
		{LayerVersions, ActionDisable, Char('d'), true},
		{LayerDialog, ActionConfirm, Char('Y'), true},
		{LayerDialog, ActionCancel, Special(CodeEsc), true},
	}
	for _, tt := range tests {
		if got := r.Matches(tt.layer, tt.action, tt.ev); got != tt.want {
			t.Fatalf("Matches(%s, %s, %v) = %v, want %v", tt.layer, tt.action, tt.ev, got, tt.want)
		}
	}
}

func TestResolverOverrides(t *testing.T) {
	r, err := NewResolver(map[string]map[string]string{
		"navigation": {"down": "n/Down"},
		"global":     {"quit": "ctrl+q"},
	})
	if err != nil {
		t.Fatalf("NewResolver error: %v", err)
	}

	if r.Matches(LayerNavigation, ActionDown, Char('j')) {
		t.Fatal("override should replace the default, j still matches down")
	}
	if !r.Matches(LayerNavigation, ActionDown, Char('n')) {
		t.Fatal("n should match overridden down")
	}
	if !r.Matches(LayerNavigation, ActionDown, Special(CodeDown)) {
		t.Fatal("Down should match overridden down")
	}
	if !r.Matches(LayerGlobal, ActionQuit, Ctrl('q')) {
		t.Fatal("ctrl+q should match overridden quit")
	}
	if r.Matches(LayerGlobal, ActionQuit, Char('q')) {
		t.Fatal("bare q should no longer quit")
	}

	// Untouched actions keep their defaults.
	if !r.Matches(LayerNavigation, ActionUp, Char('k')) {
		t.Fatal("up should keep its default binding")
	}
}

func TestResolverRejectsUnknownSection(t *testing.T) {
	_, err := NewResolver(map[string]map[string]string{"bogus": {"quit": "q"}})
	if err == nil {
		t.Fatal("expected error for unknown section")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("error %q should name the section", err)
	}
}

func TestResolverRejectsUnknownAction(t *testing.T) {
	_, err := NewResolver(map[string]map[string]string{"global": {"launch": "q"}})
	if err == nil {
		t.Fatal("expected error for unknown action")
	}
	if !strings.Contains(err.Error(), "global.launch") {
		t.Fatalf("error %q should name the entry", err)
	}
}

func TestResolverRejectsBadBinding(t *testing.T) {
	_, err := NewResolver(map[string]map[string]string{"global": {"quit": "bogus"}})
	if err == nil {
		t.Fatal("expected error for bad binding syntax")
	}
}

func TestResolverDisplay(t *testing.T) {
	r := Default()

	tests := []struct {
		layer  Layer
		action Action
		want   string
	}{
		{LayerNavigation, ActionUp, "k/Up"},
		{LayerNavigation, ActionEnd, "G/End"},
		{LayerSearch, ActionSearchToggle, "/"},
		{LayerDialog, ActionConfirm, "y/Y/Enter"},
		{LayerSecrets, ActionDelete, "d/Delete"},
		{LayerPayload, ActionCopy, "y"},
	}
	for _, tt := range tests {
		if got := r.Display(tt.layer, tt.action); got != tt.want {
			t.Fatalf("Display(%s, %s) = %q, want %q", tt.layer, tt.action, got, tt.want)
		}
	}
}
