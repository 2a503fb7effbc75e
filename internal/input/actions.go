package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/obvos/obvos/internal/app"
	"github.com/obvos/obvos/internal/catalog"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(msg tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

// registerHandlers registers all action handlers
func (d *ActionDispatcher) registerHandlers() {
	// Global actions
	d.Register("quit", handleQuit)
	d.Register("toggle_start_menu", handleToggleStartMenu)
	d.Register("open_terminal", handleOpenTerminal)
	d.Register("close_window", handleCloseWindow)
	d.Register("minimize_window", handleMinimizeWindow)
	d.Register("maximize_window", handleMaximizeWindow)
	d.Register("next_window", handleNextWindow)
	d.Register("prev_window", handlePrevWindow)
	d.Register("move_window_left", makeMoveHandler(-1, 0))
	d.Register("move_window_right", makeMoveHandler(1, 0))
	d.Register("move_window_up", makeMoveHandler(0, -1))
	d.Register("move_window_down", makeMoveHandler(0, 1))
	d.Register("toggle_logs", handleToggleLogs)
	d.Register("toggle_help", handleToggleHelp)

	// Desktop and start menu actions
	d.Register("select_next", handleSelectNext)
	d.Register("select_prev", handleSelectPrev)
	d.Register("activate", handleActivate)

	// Terminal actions
	d.Register("submit", terminalAction(func(d *app.Desktop) { d.Terminal().Submit() }))
	d.Register("history_prev", terminalAction(func(d *app.Desktop) { d.Terminal().HistoryUp() }))
	d.Register("history_next", terminalAction(func(d *app.Desktop) { d.Terminal().HistoryDown() }))
	d.Register("complete", terminalAction(func(d *app.Desktop) { d.Terminal().Complete(false) }))
	d.Register("complete_reverse", terminalAction(func(d *app.Desktop) { d.Terminal().Complete(true) }))
	d.Register("clear_screen", terminalAction(func(d *app.Desktop) { d.Terminal().ClearScreen() }))
	d.Register("erase_line", terminalAction(func(d *app.Desktop) { d.Terminal().EraseLine() }))
	d.Register("line_start", terminalAction(func(d *app.Desktop) { d.Terminal().Home() }))
	d.Register("line_end", terminalAction(func(d *app.Desktop) { d.Terminal().End() }))
	d.Register("caret_left", terminalAction(func(d *app.Desktop) { d.Terminal().Left() }))
	d.Register("caret_right", terminalAction(func(d *app.Desktop) { d.Terminal().Right() }))
	d.Register("backspace", terminalAction(func(d *app.Desktop) { d.Terminal().Backspace() }))
	d.Register("delete", terminalAction(func(d *app.Desktop) { d.Terminal().Delete() }))
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, o *app.Desktop) (*app.Desktop, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, o)
	}
	return o, nil
}

// Global action dispatcher instance
var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

// ============================================================================
// Global Action Handlers
// ============================================================================

func handleQuit(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.LogInfo("quit requested")
	return d, tea.Quit
}

func handleToggleStartMenu(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.ToggleStartMenu()
	return d, nil
}

func handleOpenTerminal(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.OpenApp(catalog.TerminalID)
	return d, nil
}

func handleCloseWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if id := d.Manager().Focused(); id != "" {
		d.Manager().Close(id)
	}
	return d, nil
}

// handleMinimizeWindow closes the start menu if it is open, otherwise it
// minimizes the focused window.
func handleMinimizeWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if d.StartMenuOpen() {
		d.CloseStartMenu()
		return d, nil
	}
	if id := d.Manager().Focused(); id != "" {
		d.Manager().Minimize(id)
	}
	return d, nil
}

func handleMaximizeWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if id := d.Manager().Focused(); id != "" {
		d.Manager().Maximize(id)
	}
	return d, nil
}

func handleNextWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.Manager().FocusNext(false)
	return d, nil
}

func handlePrevWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.Manager().FocusNext(true)
	return d, nil
}

func makeMoveHandler(dx, dy int) ActionHandler {
	return func(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
		if id := d.Manager().Focused(); id != "" {
			d.Manager().Drag(id, dx, dy)
		}
		return d, nil
	}
}

func handleToggleLogs(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.ShowLogs = !d.ShowLogs
	if d.ShowLogs {
		d.ShowHelp = false
	}
	return d, nil
}

func handleToggleHelp(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.ShowHelp = !d.ShowHelp
	if d.ShowHelp {
		d.ShowLogs = false
	}
	return d, nil
}

// ============================================================================
// Desktop and Start Menu Action Handlers
// ============================================================================

func handleSelectNext(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if d.StartMenuOpen() {
		d.MoveMenuSelection(1)
	} else {
		d.MoveIconSelection(1)
	}
	return d, nil
}

func handleSelectPrev(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if d.StartMenuOpen() {
		d.MoveMenuSelection(-1)
	} else {
		d.MoveIconSelection(-1)
	}
	return d, nil
}

func handleActivate(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if d.StartMenuOpen() {
		return d, d.ActivateMenu(d.MenuIndex())
	}
	return d, d.ActivateIcon()
}

// ============================================================================
// Terminal Action Handlers
// ============================================================================

// terminalAction wraps a session edit; any terminal key returns the view to the input line.
func terminalAction(fn func(d *app.Desktop)) ActionHandler {
	return func(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
		fn(d)
		d.ResetScroll()
		return d, nil
	}
}
