package input

import (
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/obvos/obvos/internal/app"
	"github.com/obvos/obvos/internal/catalog"
)

// wheelStep is how many terminal lines one wheel notch scrolls.
const wheelStep = 3

// handleMouseClick handles mouse click events
func handleMouseClick(msg tea.MouseClickMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	X := mouse.X
	Y := mouse.Y

	if d.Booting() {
		d.SkipBoot()
		return d, nil
	}
	if mouse.Button != tea.MouseLeft {
		return d, nil
	}
	if d.ShowHelp || d.ShowLogs {
		d.ShowHelp, d.ShowLogs = false, false
		return d, nil
	}

	// Any click outside the start menu closes it
	if d.StartMenuOpen() {
		if i, ok := d.MenuItemAt(X, Y); ok {
			return d, d.ActivateMenu(i)
		}
		if d.MenuRect().Contains(X, Y) {
			return d, nil
		}
		d.CloseStartMenu()
		if d.StartButton().Contains(X, Y) {
			return d, nil
		}
	}

	if Y == d.TaskbarY() {
		return handleTaskbarClick(X, Y, d)
	}

	// Fast hit testing against window geometry, topmost first
	if id, ok := d.Manager().WindowAt(X, Y); ok {
		return handleWindowClick(id, X, Y, d)
	}

	d.Manager().Blur()
	if i, ok := d.IconAt(X, Y); ok {
		d.SelectIcon(i)
		if d.DoubleClick("icon:" + strconv.Itoa(i)) {
			return d, d.ActivateIcon()
		}
		return d, nil
	}
	d.SelectIcon(-1)
	return d, nil
}

func handleTaskbarClick(x, y int, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if d.StartButton().Contains(x, y) {
		d.ToggleStartMenu()
		return d, nil
	}
	if id, ok := d.TrayEntryAt(x, y); ok {
		d.Manager().ToggleFromTray(id)
	}
	return d, nil
}

func handleWindowClick(id string, x, y int, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	m := d.Manager()

	switch d.TitleButtonAt(id, x, y) {
	case app.ButtonClose:
		m.Close(id)
		return d, nil
	case app.ButtonMinimize:
		m.Minimize(id)
		return d, nil
	case app.ButtonMaximize:
		m.Maximize(id)
		return d, nil
	}

	m.Focus(id)
	if d.OnTitleBar(id, x, y) {
		if d.DoubleClick("title:" + id) {
			m.Maximize(id)
			return d, nil
		}
		d.Drag().Begin(m, id, x, y)
	}
	return d, nil
}

// handleMouseMotion moves the dragged window with the pointer.
func handleMouseMotion(msg tea.MouseMotionMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if !d.Drag().Active() {
		return d, nil
	}
	mouse := msg.Mouse()
	d.Drag().Move(d.Manager(), mouse.X, mouse.Y)
	return d, nil
}

func handleMouseRelease(msg tea.MouseReleaseMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if d.Drag().Active() {
		mouse := msg.Mouse()
		d.Drag().Move(d.Manager(), mouse.X, mouse.Y)
		d.Drag().End()
	}
	return d, nil
}

// handleMouseWheel scrolls the terminal transcript when the pointer is over it.
func handleMouseWheel(msg tea.MouseWheelMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	id, ok := d.Manager().WindowAt(mouse.X, mouse.Y)
	if !ok || id != catalog.TerminalID {
		return d, nil
	}
	switch mouse.Button {
	case tea.MouseWheelUp:
		d.ScrollTerminal(wheelStep)
	case tea.MouseWheelDown:
		d.ScrollTerminal(-wheelStep)
	}
	return d, nil
}
