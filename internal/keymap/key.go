// Package keymap maps physical key events to semantic actions through a
// layered, user-configurable binding table.
package keymap

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Mod is a bitset of key modifiers.
type Mod uint8

const (
	ModCtrl Mod = 1 << iota
	ModAlt
	ModShift
)

// Code identifies a key. CodeChar keys carry the character in Key.Rune.
type Code int

const (
	CodeChar Code = iota
	CodeEnter
	CodeEsc
	CodeTab
	CodeBackspace
	CodeDelete
	CodeInsert
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12
)

var codeNames = map[Code]string{
	CodeEnter:     "Enter",
	CodeEsc:       "Esc",
	CodeTab:       "Tab",
	CodeBackspace: "Backspace",
	CodeDelete:    "Delete",
	CodeInsert:    "Insert",
	CodeHome:      "Home",
	CodeEnd:       "End",
	CodePageUp:    "PageUp",
	CodePageDown:  "PageDown",
	CodeUp:        "Up",
	CodeDown:      "Down",
	CodeLeft:      "Left",
	CodeRight:     "Right",
}

var nameCodes = map[string]Code{
	"enter":     CodeEnter,
	"return":    CodeEnter,
	"esc":       CodeEsc,
	"escape":    CodeEsc,
	"tab":       CodeTab,
	"backspace": CodeBackspace,
	"delete":    CodeDelete,
	"del":       CodeDelete,
	"insert":    CodeInsert,
	"ins":       CodeInsert,
	"home":      CodeHome,
	"end":       CodeEnd,
	"pageup":    CodePageUp,
	"pgup":      CodePageUp,
	"pagedown":  CodePageDown,
	"pgdn":      CodePageDown,
	"up":        CodeUp,
	"down":      CodeDown,
	"left":      CodeLeft,
	"right":     CodeRight,
}

// Key is a single physical key chord: a code (or character) plus modifiers.
type Key struct {
	Code Code
	Rune rune
	Mods Mod
}

// Char returns a plain character key.
func Char(r rune) Key { return Key{Code: CodeChar, Rune: r} }

// Ctrl returns a ctrl+character key.
func Ctrl(r rune) Key { return Key{Code: CodeChar, Rune: r, Mods: ModCtrl} }

// Special returns a non-character key.
func Special(code Code) Key { return Key{Code: code} }

// Matches reports whether this key matches an observed key event.
//
// Character keys compare case-insensitively on the character itself while
// tracking Shift separately: an uppercase letter implies Shift on its own
// side, so the binding `G` matches Shift+g but not g, and `g` does not
// match Shift+g. Ctrl and Alt must match exactly. Non-character keys
// require code and modifiers to be equal.
func (k Key) Matches(ev Key) bool {
	if k.Code == CodeChar && ev.Code == CodeChar {
		a, b := k.Rune, ev.Rune
		charsMatch := a == b ||
			(isASCIILetter(a) && isASCIILetter(b) && lowerASCII(a) == lowerASCII(b))

		want := k.Mods
		if isUpperASCII(a) {
			want |= ModShift
		}
		got := ev.Mods
		if isUpperASCII(b) {
			got |= ModShift
		}
		return charsMatch && want == got
	}
	return k.Code == ev.Code && k.Mods == ev.Mods
}

// Display renders the key in binding syntax: "q", "G", "ctrl+c", "Enter",
// "alt+Backspace", "Space", "F5".
func (k Key) Display() string {
	var parts []string
	if k.Mods&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if k.Mods&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if k.Mods&ModShift != 0 {
		parts = append(parts, "shift")
	}

	var name string
	switch {
	case k.Code == CodeChar && k.Rune == ' ':
		name = "Space"
	case k.Code == CodeChar:
		name = string(k.Rune)
	case k.Code >= CodeF1 && k.Code <= CodeF12:
		name = "F" + strconv.Itoa(int(k.Code-CodeF1)+1)
	default:
		name = codeNames[k.Code]
	}

	parts = append(parts, name)
	return strings.Join(parts, "+")
}

// ParseKey parses binding syntax back into a Key. It accepts everything
// Display produces plus the aliases return, escape, del, ins, pgup, pgdn
// and space. Single characters keep their case. Unknown tokens are errors.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Key{}, fmt.Errorf("empty key")
	}

	parts := strings.Split(s, "+")
	keyPart := parts[len(parts)-1]
	modParts := parts[:len(parts)-1]
	if keyPart == "" && len(modParts) > 0 {
		// A trailing separator means the key is the plus sign itself,
		// as in "+" or "ctrl++".
		keyPart = "+"
		modParts = modParts[:len(modParts)-1]
	}

	var mods Mod
	for _, part := range modParts {
		switch strings.ToLower(part) {
		case "ctrl", "control":
			mods |= ModCtrl
		case "alt":
			mods |= ModAlt
		case "shift":
			mods |= ModShift
		default:
			return Key{}, fmt.Errorf("unknown modifier %q", part)
		}
	}

	lower := strings.ToLower(keyPart)
	if code, ok := nameCodes[lower]; ok {
		return Key{Code: code, Mods: mods}, nil
	}
	if lower == "space" {
		return Key{Code: CodeChar, Rune: ' ', Mods: mods}, nil
	}
	if len(lower) > 1 && lower[0] == 'f' {
		n, err := strconv.Atoi(lower[1:])
		if err != nil || n < 1 || n > 12 {
			return Key{}, fmt.Errorf("invalid function key %q", keyPart)
		}
		return Key{Code: CodeF1 + Code(n-1), Mods: mods}, nil
	}
	runes := []rune(keyPart)
	if len(runes) == 1 {
		return Key{Code: CodeChar, Rune: runes[0], Mods: mods}, nil
	}
	return Key{}, fmt.Errorf("unknown key %q", keyPart)
}

// FromKeyMsg converts a bubbletea key message into a Key. The second
// return is false for events no binding can express (pastes, multi-rune
// input, unmapped special keys).
func FromKeyMsg(msg tea.KeyMsg) (Key, bool) {
	var mods Mod
	if msg.Alt {
		mods |= ModAlt
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Paste || len(msg.Runes) != 1 {
			return Key{}, false
		}
		return Key{Code: CodeChar, Rune: msg.Runes[0], Mods: mods}, true
	case tea.KeySpace:
		return Key{Code: CodeChar, Rune: ' ', Mods: mods}, true
	case tea.KeyEnter:
		return Key{Code: CodeEnter, Mods: mods}, true
	case tea.KeyTab:
		return Key{Code: CodeTab, Mods: mods}, true
	case tea.KeyEsc:
		return Key{Code: CodeEsc, Mods: mods}, true
	case tea.KeyBackspace:
		return Key{Code: CodeBackspace, Mods: mods}, true
	case tea.KeyDelete:
		return Key{Code: CodeDelete, Mods: mods}, true
	case tea.KeyInsert:
		return Key{Code: CodeInsert, Mods: mods}, true
	case tea.KeyHome:
		return Key{Code: CodeHome, Mods: mods}, true
	case tea.KeyEnd:
		return Key{Code: CodeEnd, Mods: mods}, true
	case tea.KeyPgUp:
		return Key{Code: CodePageUp, Mods: mods}, true
	case tea.KeyPgDown:
		return Key{Code: CodePageDown, Mods: mods}, true
	case tea.KeyUp:
		return Key{Code: CodeUp, Mods: mods}, true
	case tea.KeyDown:
		return Key{Code: CodeDown, Mods: mods}, true
	case tea.KeyLeft:
		return Key{Code: CodeLeft, Mods: mods}, true
	case tea.KeyRight:
		return Key{Code: CodeRight, Mods: mods}, true
	}

	if code, ok := teaFKeys[msg.Type]; ok {
		return Key{Code: code, Mods: mods}, true
	}
	// Control characters 1..26 not claimed above map to ctrl+letter.
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return Key{
			Code: CodeChar,
			Rune: 'a' + rune(msg.Type-tea.KeyCtrlA),
			Mods: mods | ModCtrl,
		}, true
	}
	return Key{}, false
}

var teaFKeys = map[tea.KeyType]Code{
	tea.KeyF1:  CodeF1,
	tea.KeyF2:  CodeF2,
	tea.KeyF3:  CodeF3,
	tea.KeyF4:  CodeF4,
	tea.KeyF5:  CodeF5,
	tea.KeyF6:  CodeF6,
	tea.KeyF7:  CodeF7,
	tea.KeyF8:  CodeF8,
	tea.KeyF9:  CodeF9,
	tea.KeyF10: CodeF10,
	tea.KeyF11: CodeF11,
	tea.KeyF12: CodeF12,
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isUpperASCII(r rune) bool { return r >= 'A' && r <= 'Z' }

func lowerASCII(r rune) rune {
	if isUpperASCII(r) {
		return r + ('a' - 'A')
	}
	return r
}
