package config

import (
	"fmt"
	"slices"
	"strings"
)

// KeyNormalizer turns user-written key strings into the names bubbletea reports.
type KeyNormalizer struct {
	aliases   map[string][]string
	modifiers []string
}

// NewKeyNormalizer creates a normalizer with the common key aliases.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{
		aliases: map[string][]string{
			"return":    {"enter"},
			"enter":     {"return"},
			"escape":    {"esc"},
			"esc":       {"escape"},
			"del":       {"delete"},
			"bs":        {"backspace"},
			"pgup":      {"pageup"},
			"pgdown":    {"pagedown"},
			"spacebar":  {"space"},
			"arrowup":   {"up"},
			"arrowdown": {"down"},
		},
		modifiers: []string{"ctrl", "alt", "shift", "super", "meta", "hyper"},
	}
}

// NormalizeKey lowercases key and returns it followed by its equivalent spellings.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil
	}
	mods, base := splitKey(key)
	prefix := ""
	if len(mods) > 0 {
		prefix = strings.Join(mods, "+") + "+"
	}

	out := []string{prefix + base}
	for _, alt := range n.aliases[base] {
		out = append(out, prefix+alt)
	}
	return out
}

// ValidateKey reports whether key is a usable key string, with a reason when it is not.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return false, "empty key"
	}
	mods, base := splitKey(key)
	for _, mod := range mods {
		if !slices.Contains(n.modifiers, mod) {
			return false, fmt.Sprintf("unknown modifier %q", mod)
		}
	}
	if base == "" {
		return false, "missing key after modifier"
	}
	return true, ""
}

// splitKey separates "ctrl+shift+x" into its modifiers and final key. A
// trailing "++" means the plus key itself.
func splitKey(key string) (mods []string, base string) {
	if key == "+" {
		return nil, "+"
	}
	if strings.HasSuffix(key, "++") {
		return strings.Split(strings.TrimSuffix(key, "++"), "+"), "+"
	}
	parts := strings.Split(key, "+")
	return parts[:len(parts)-1], parts[len(parts)-1]
}
