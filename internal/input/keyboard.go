// Package input implements keyboard and mouse handling for the ObvOS desktop.
package input

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/obvos/obvos/internal/app"
	"github.com/obvos/obvos/internal/config"
)

// HandleInput is the app.InputHandler for the desktop.
func HandleInput(msg tea.Msg, d *app.Desktop) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, d)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, d)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, d)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, d)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, d)
	case tea.PasteMsg:
		return handlePaste(msg, d)
	}
	return d, nil
}

// HandleKeyPress routes a key through the global scope, then the start menu,
// the terminal or the desktop depending on what has focus.
func HandleKeyPress(msg tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if d.Booting() {
		d.SkipBoot()
		return d, nil
	}

	reg := d.Registry()
	dispatcher := GetDispatcher()

	// Only Tab and Shift+Tab continue a completion cycle
	if d.TerminalFocused() {
		switch reg.Match(config.ScopeTerminal, msg) {
		case "complete", "complete_reverse":
		default:
			d.Terminal().ResetCompletion()
		}
	}

	// Overlays swallow everything except their own toggles and quit
	if d.ShowHelp || d.ShowLogs {
		if msg.String() == "esc" {
			d.ShowHelp, d.ShowLogs = false, false
			return d, nil
		}
		switch action := reg.Match(config.ScopeGlobal, msg); action {
		case "toggle_help", "toggle_logs", "quit":
			return dispatcher.Dispatch(action, msg, d)
		}
		return d, nil
	}

	if action := reg.Match(config.ScopeGlobal, msg); action != "" {
		return dispatcher.Dispatch(action, msg, d)
	}

	switch {
	case d.StartMenuOpen():
		if action := reg.Match(config.ScopeDesktop, msg); action != "" {
			return dispatcher.Dispatch(action, msg, d)
		}

	case d.TerminalFocused():
		if action := reg.Match(config.ScopeTerminal, msg); action != "" {
			return dispatcher.Dispatch(action, msg, d)
		}
		if text := printable(msg); text != "" {
			d.Terminal().Insert(text)
			d.ResetScroll()
		}

	case d.Manager().Focused() == "":
		if action := reg.Match(config.ScopeDesktop, msg); action != "" {
			return dispatcher.Dispatch(action, msg, d)
		}
	}

	return d, nil
}

// printable returns the text a key types, or "" for control keys.
func printable(msg tea.KeyPressMsg) string {
	if msg.Mod&(tea.ModCtrl|tea.ModAlt|tea.ModSuper|tea.ModMeta|tea.ModHyper) != 0 {
		return ""
	}
	return msg.Text
}

func handlePaste(msg tea.PasteMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if d.Booting() || !d.TerminalFocused() {
		return d, nil
	}
	text := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(msg.Content)
	if text != "" {
		d.Terminal().Insert(text)
		d.ResetScroll()
	}
	return d, nil
}
