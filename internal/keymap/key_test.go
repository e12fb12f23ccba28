package keymap

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"pgregory.net/rapid"
)

func TestParseKeyCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"q", "q"},
		{"G", "G"},
		{"?", "?"},
		{"/", "/"},
		{"+", "+"},
		{"ctrl+c", "ctrl+c"},
		{"ctrl++", "ctrl++"},
		{"Control+X", "ctrl+X"},
		{"alt+Backspace", "alt+Backspace"},
		{"shift+Tab", "shift+Tab"},
		{"ctrl+alt+x", "ctrl+alt+x"},
		{"Enter", "Enter"},
		{"return", "Enter"},
		{"esc", "Esc"},
		{"escape", "Esc"},
		{"del", "Delete"},
		{"ins", "Insert"},
		{"pgup", "PageUp"},
		{"pgdn", "PageDown"},
		{"space", "Space"},
		{"home", "Home"},
		{"END", "End"},
		{"f5", "F5"},
		{"F12", "F12"},
		{"  k  ", "k"},
	}
	for _, tt := range tests {
		k, err := ParseKey(tt.in)
		if err != nil {
			t.Fatalf("ParseKey(%q) error: %v", tt.in, err)
		}
		if got := k.Display(); got != tt.want {
			t.Fatalf("ParseKey(%q).Display() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseKeyErrors(t *testing.T) {
	for _, in := range []string{"", "  ", "foo", "meta+x", "F0", "F13", "fx", "ctrl+foo"} {
		if _, err := ParseKey(in); err == nil {
			t.Fatalf("ParseKey(%q) succeeded, want error", in)
		}
	}
}

func TestKeyMatchesShift(t *testing.T) {
	tests := []struct {
		binding string
		event   Key
		want    bool
	}{
		{"G", Char('G'), true},
		{"G", Char('g'), false},
		{"g", Char('g'), true},
		{"g", Char('G'), false},
		{"shift+g", Char('G'), true},
		{"shift+g", Char('g'), false},
		{"A", Key{Code: CodeChar, Rune: 'a', Mods: ModShift}, true},
		{"?", Char('?'), true},
		{"?", Char('/'), false},
	}
	for _, tt := range tests {
		b, err := ParseKey(tt.binding)
		if err != nil {
			t.Fatalf("ParseKey(%q) error: %v", tt.binding, err)
		}
		if got := b.Matches(tt.event); got != tt.want {
			t.Fatalf("binding %q matches %v = %v, want %v", tt.binding, tt.event, got, tt.want)
		}
	}
}

func TestKeyMatchesModifiers(t *testing.T) {
	if !Ctrl('c').Matches(Ctrl('c')) {
		t.Fatal("ctrl+c should match ctrl+c")
	}
	if Ctrl('c').Matches(Char('c')) {
		t.Fatal("ctrl+c should not match bare c")
	}
	if Char('c').Matches(Ctrl('c')) {
		t.Fatal("c should not match ctrl+c")
	}
	if !Special(CodeEnter).Matches(Special(CodeEnter)) {
		t.Fatal("Enter should match Enter")
	}
	if Special(CodeEnter).Matches(Special(CodeEsc)) {
		t.Fatal("Enter should not match Esc")
	}
	if Special(CodeEsc).Matches(Key{Code: CodeEsc, Mods: ModAlt}) {
		t.Fatal("Esc should not match alt+Esc")
	}
}

func TestFromKeyMsg(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Key
		ok   bool
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, Char('q'), true},
		{"upper rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}, Char('G'), true},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, Key{Code: CodeChar, Rune: 'x', Mods: ModAlt}, true},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, Char(' '), true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, Special(CodeEnter), true},
		{"tab not ctrl+i", tea.KeyMsg{Type: tea.KeyTab}, Special(CodeTab), true},
		{"ctrl+a", tea.KeyMsg{Type: tea.KeyCtrlA}, Ctrl('a'), true},
		{"ctrl+z", tea.KeyMsg{Type: tea.KeyCtrlZ}, Ctrl('z'), true},
		{"pgup", tea.KeyMsg{Type: tea.KeyPgUp}, Special(CodePageUp), true},
		{"f3", tea.KeyMsg{Type: tea.KeyF3}, Special(CodeF3), true},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Paste: true}, Key{}, false},
		{"multi rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, Key{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromKeyMsg(tt.msg)
			if ok != tt.ok {
				t.Fatalf("FromKeyMsg ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("FromKeyMsg = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Every displayable key must parse back to itself, so help text always
// shows syntax the config file accepts.
func TestKeyDisplayParseRoundTrip(t *testing.T) {
	charRunes := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789?/.,;'[]-=+ ")
	codes := []Code{
		CodeEnter, CodeEsc, CodeTab, CodeBackspace, CodeDelete, CodeInsert,
		CodeHome, CodeEnd, CodePageUp, CodePageDown,
		CodeUp, CodeDown, CodeLeft, CodeRight,
		CodeF1, CodeF6, CodeF12,
	}
	rapid.Check(t, func(t *rapid.T) {
		var k Key
		if rapid.Bool().Draw(t, "isChar") {
			k.Code = CodeChar
			k.Rune = rapid.SampledFrom(charRunes).Draw(t, "rune")
		} else {
			k.Code = rapid.SampledFrom(codes).Draw(t, "code")
		}
		if rapid.Bool().Draw(t, "ctrl") {
			k.Mods |= ModCtrl
		}
		if rapid.Bool().Draw(t, "alt") {
			k.Mods |= ModAlt
		}
		if rapid.Bool().Draw(t, "shift") {
			k.Mods |= ModShift
		}

		parsed, err := ParseKey(k.Display())
		if err != nil {
			t.Fatalf("ParseKey(%q) error: %v", k.Display(), err)
		}
		if parsed != k {
			t.Fatalf("round trip of %q: got %+v, want %+v", k.Display(), parsed, k)
		}
	})
}

func TestParseBinding(t *testing.T) {
	tests := []struct {
		in   string
		want string
		keys int
	}{
		{"k/Up", "k/Up", 2},
		{"d/Delete", "d/Delete", 2},
		{"y/Y/Enter", "y/Y/Enter", 3},
		{"/", "/", 1},
		{"q", "q", 1},
	}
	for _, tt := range tests {
		b, err := ParseBinding(tt.in)
		if err != nil {
			t.Fatalf("ParseBinding(%q) error: %v", tt.in, err)
		}
		if len(b) != tt.keys {
			t.Fatalf("ParseBinding(%q) has %d keys, want %d", tt.in, len(b), tt.keys)
		}
		if got := b.Display(); got != tt.want {
			t.Fatalf("ParseBinding(%q).Display() = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseBinding(""); err == nil {
		t.Fatal("ParseBinding(\"\") succeeded, want error")
	}
	if _, err := ParseBinding("k/bogus"); err == nil {
		t.Fatal("ParseBinding(\"k/bogus\") succeeded, want error")
	}
}

func TestBindingMatchesAny(t *testing.T) {
	b, err := ParseBinding("k/Up")
	if err != nil {
		t.Fatalf("ParseBinding error: %v", err)
	}
	if !b.Matches(Char('k')) {
		t.Fatal("k/Up should match k")
	}
	if !b.Matches(Special(CodeUp)) {
		t.Fatal("k/Up should match Up")
	}
	if b.Matches(Char('j')) {
		t.Fatal("k/Up should not match j")
	}
}

func TestBindingDisplayUsesSlash(t *testing.T) {
	b := Keys(Char('d'), Special(CodeDelete))
	if got := b.Display(); !strings.Contains(got, "/") {
		t.Fatalf("Display() = %q, want slash-joined alternatives", got)
	}
}
