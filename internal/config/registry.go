package config

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"
)

// Scope says where a key binding is active.
type Scope string

const (
	// ScopeGlobal bindings work everywhere, including inside the terminal.
	ScopeGlobal Scope = "global"
	// ScopeDesktop bindings work when the terminal does not have focus.
	ScopeDesktop Scope = "desktop"
	// ScopeTerminal bindings edit the terminal's input line.
	ScopeTerminal Scope = "terminal"
)

// Scopes lists every scope in lookup order.
var Scopes = []Scope{ScopeGlobal, ScopeDesktop, ScopeTerminal}

// ActionDescriptions maps each action to its help text.
var ActionDescriptions = map[string]string{
	// global
	"quit":              "Quit ObvOS",
	"toggle_start_menu": "Toggle start menu",
	"open_terminal":     "Open ObvTerm",
	"close_window":      "Close window",
	"minimize_window":   "Minimize window / close menu",
	"maximize_window":   "Maximize or restore window",
	"next_window":       "Next window",
	"prev_window":       "Previous window",
	"move_window_left":  "Move window left",
	"move_window_right": "Move window right",
	"move_window_up":    "Move window up",
	"move_window_down":  "Move window down",
	"toggle_logs":       "Toggle log viewer",
	"toggle_help":       "Toggle help",

	// desktop
	"select_next": "Select next icon or menu item",
	"select_prev": "Select previous icon or menu item",
	"activate":    "Open selection",

	// terminal
	"submit":           "Run command",
	"history_prev":     "Previous command",
	"history_next":     "Next command",
	"complete":         "Complete",
	"complete_reverse": "Complete (previous candidate)",
	"clear_screen":     "Clear screen",
	"erase_line":       "Erase line",
	"line_start":       "Start of line",
	"line_end":         "End of line",
	"caret_left":       "Cursor left",
	"caret_right":      "Cursor right",
	"backspace":        "Delete before cursor",
	"delete":           "Delete under cursor",
}

func defaultKeybindings() KeybindingsConfig {
	return KeybindingsConfig{
		Global: map[string][]string{
			"quit":              {"ctrl+q"},
			"toggle_start_menu": {"ctrl+o", "f2"},
			"open_terminal":     {"ctrl+t"},
			"close_window":      {"ctrl+w"},
			"minimize_window":   {"esc"},
			"maximize_window":   {"ctrl+f", "f11"},
			"next_window":       {"ctrl+n"},
			"prev_window":       {"ctrl+p"},
			"move_window_left":  {"shift+left"},
			"move_window_right": {"shift+right"},
			"move_window_up":    {"shift+up"},
			"move_window_down":  {"shift+down"},
			"toggle_logs":       {"f12"},
			"toggle_help":       {"f1"},
		},
		Desktop: map[string][]string{
			"select_next": {"down", "right", "j"},
			"select_prev": {"up", "left", "k"},
			"activate":    {"enter", "space"},
		},
		Terminal: map[string][]string{
			"submit":           {"enter"},
			"history_prev":     {"up"},
			"history_next":     {"down"},
			"complete":         {"tab"},
			"complete_reverse": {"shift+tab"},
			"clear_screen":     {"ctrl+l"},
			"erase_line":       {"ctrl+u"},
			"line_start":       {"ctrl+a", "home"},
			"line_end":         {"ctrl+e", "end"},
			"caret_left":       {"left"},
			"caret_right":      {"right"},
			"backspace":        {"backspace"},
			"delete":           {"delete"},
		},
	}
}

// KeybindRegistry resolves key presses to actions.
type KeybindRegistry struct {
	bindings map[string]key.Binding
	actions  map[Scope][]string
	keyIndex map[Scope]map[string]string
	invalid  []string
}

// NewKeybindRegistry builds a registry from the configured keybindings.
// Invalid key strings are skipped and reported by Invalid.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		bindings: make(map[string]key.Binding),
		actions:  make(map[Scope][]string),
		keyIndex: make(map[Scope]map[string]string),
	}
	normalizer := NewKeyNormalizer()

	scoped := map[Scope]map[string][]string{
		ScopeGlobal:   cfg.Keybindings.Global,
		ScopeDesktop:  cfg.Keybindings.Desktop,
		ScopeTerminal: cfg.Keybindings.Terminal,
	}
	for _, scope := range Scopes {
		r.keyIndex[scope] = make(map[string]string)
		actions := make([]string, 0, len(scoped[scope]))
		for action := range scoped[scope] {
			actions = append(actions, action)
		}
		slices.Sort(actions)

		for _, action := range actions {
			var keys []string
			for _, k := range scoped[scope][action] {
				if ok, reason := normalizer.ValidateKey(k); !ok {
					r.invalid = append(r.invalid, fmt.Sprintf("%s.%s: %q: %s", scope, action, k, reason))
					continue
				}
				for _, nk := range normalizer.NormalizeKey(k) {
					if _, taken := r.keyIndex[scope][nk]; !taken {
						r.keyIndex[scope][nk] = action
					}
					keys = append(keys, nk)
				}
			}
			if len(keys) == 0 {
				continue
			}
			r.actions[scope] = append(r.actions[scope], action)
			r.bindings[action] = key.NewBinding(
				key.WithKeys(keys...),
				key.WithHelp(displayKeys(scoped[scope][action]), ActionDescriptions[action]),
			)
		}
	}
	return r
}

// Match returns the action in scope bound to the pressed key, or "".
func (r *KeybindRegistry) Match(scope Scope, msg fmt.Stringer) string {
	for _, action := range r.actions[scope] {
		if key.Matches(msg, r.bindings[action]) {
			return action
		}
	}
	return ""
}

// ActionIn returns the action in scope bound to keyStr, or "".
func (r *KeybindRegistry) ActionIn(scope Scope, keyStr string) string {
	return r.keyIndex[scope][strings.ToLower(keyStr)]
}

// GetAction returns the action bound to keyStr in the first scope that binds it.
func (r *KeybindRegistry) GetAction(keyStr string) string {
	for _, scope := range Scopes {
		if action := r.ActionIn(scope, keyStr); action != "" {
			return action
		}
	}
	return ""
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	b, ok := r.bindings[action]
	if !ok {
		return nil
	}
	return b.Keys()
}

// Binding returns the key.Binding for action.
func (r *KeybindRegistry) Binding(action string) (key.Binding, bool) {
	b, ok := r.bindings[action]
	return b, ok
}

// GetKeysForDisplay returns the keys of action formatted for help text.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	b, ok := r.bindings[action]
	if !ok {
		return ""
	}
	return b.Help().Key
}

// Actions returns the bound actions of scope, sorted.
func (r *KeybindRegistry) Actions(scope Scope) []string {
	return r.actions[scope]
}

// Invalid returns the key strings that were skipped while building the registry.
func (r *KeybindRegistry) Invalid() []string {
	return r.invalid
}

// displayKeys formats key strings as "Ctrl+W, F11".
func displayKeys(keys []string) string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		mods, base := splitKey(strings.ToLower(strings.TrimSpace(k)))
		parts := make([]string, 0, len(mods)+1)
		for _, m := range mods {
			parts = append(parts, capitalize(m))
		}
		parts = append(parts, prettyKey(base))
		out = append(out, strings.Join(parts, "+"))
	}
	return strings.Join(out, ", ")
}

func prettyKey(k string) string {
	switch k {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	}
	if len(k) == 1 {
		return k
	}
	return capitalize(k)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
