package wm

import "slices"

// TrayEntry is the taskbar affordance of one open window.
type TrayEntry struct {
	WindowID string `json:"window_id"`
	Title    string `json:"title"`
	Focused  bool   `json:"focused"`
}

// Tray keeps one entry per open window, in the order windows were first opened.
type Tray struct {
	entries []TrayEntry
}

// Add appends an entry for id. It reports false if the window already has one.
func (t *Tray) Add(id, title string) bool {
	if t.Has(id) {
		return false
	}
	t.entries = append(t.entries, TrayEntry{WindowID: id, Title: title})
	return true
}

// Remove drops the entry for id, if any.
func (t *Tray) Remove(id string) {
	t.entries = slices.DeleteFunc(t.entries, func(e TrayEntry) bool {
		return e.WindowID == id
	})
}

// Has reports whether id has an entry.
func (t *Tray) Has(id string) bool {
	return slices.ContainsFunc(t.entries, func(e TrayEntry) bool {
		return e.WindowID == id
	})
}

// Len returns the number of open windows.
func (t *Tray) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries with only the focused window highlighted.
func (t *Tray) Entries(focused string) []TrayEntry {
	out := make([]TrayEntry, len(t.entries))
	for i, e := range t.entries {
		e.Focused = focused != "" && e.WindowID == focused
		out[i] = e
	}
	return out
}
