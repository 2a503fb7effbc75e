package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// GetKeybindings returns all keybinding sections for the help overlay.
// If registry is nil, it falls back to the built-in defaults.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}

	sections := []KeybindingSection{}

	windows := KeybindingSection{Title: "WINDOWS"}
	addBinding(&windows, registry, "toggle_start_menu")
	addBinding(&windows, registry, "open_terminal")
	addBinding(&windows, registry, "close_window")
	addBinding(&windows, registry, "minimize_window")
	addBinding(&windows, registry, "maximize_window")
	addBinding(&windows, registry, "next_window")
	addBinding(&windows, registry, "prev_window")
	addBinding(&windows, registry, "move_window_left")
	addBinding(&windows, registry, "move_window_right")
	addBinding(&windows, registry, "move_window_up")
	addBinding(&windows, registry, "move_window_down")
	if len(windows.Bindings) > 0 {
		sections = append(sections, windows)
	}

	desktop := KeybindingSection{Title: "DESKTOP & START MENU"}
	addBinding(&desktop, registry, "select_next")
	addBinding(&desktop, registry, "select_prev")
	addBinding(&desktop, registry, "activate")
	if len(desktop.Bindings) > 0 {
		sections = append(sections, desktop)
	}

	terminal := KeybindingSection{Title: "OBVTERM"}
	for _, action := range []string{
		"submit", "history_prev", "history_next", "complete", "complete_reverse",
		"clear_screen", "erase_line", "line_start", "line_end",
	} {
		addBinding(&terminal, registry, action)
	}
	if len(terminal.Bindings) > 0 {
		sections = append(sections, terminal)
	}

	system := KeybindingSection{Title: "SYSTEM"}
	addBinding(&system, registry, "toggle_logs")
	addBinding(&system, registry, "toggle_help")
	addBinding(&system, registry, "quit")
	if len(system.Bindings) > 0 {
		sections = append(sections, system)
	}

	return append(sections, getStaticHelpSections()...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: ActionDescriptions[action],
		})
	}
}

// getStaticHelpSections returns help sections that don't need dynamic binding info
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{"Click title bar", "Focus window"},
				{"Drag title bar", "Move window"},
				{"Double-click title bar", "Maximize / restore"},
				{"Click tray entry", "Show, focus or minimize"},
				{"Double-click icon", "Open application"},
			},
		},
	}
}
