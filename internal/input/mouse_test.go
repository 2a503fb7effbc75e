package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/obvos/obvos/internal/app"
	"github.com/obvos/obvos/internal/catalog"
)

func click(d *app.Desktop, x, y int) {
	HandleInput(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft}, d)
}

func TestTitleButtons(t *testing.T) {
	tests := []struct {
		name      string
		x         int
		open      bool
		maximized bool
		tray      int
	}{
		{name: "close", x: 94, open: false, tray: 0},
		{name: "maximize", x: 92, open: true, maximized: true, tray: 1},
		{name: "minimize", x: 90, open: false, tray: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDesktop(t)
			m := d.Manager()

			click(d, tt.x, 10)

			w, _ := m.Window(catalog.TerminalID)
			if m.IsOpen(catalog.TerminalID) != tt.open {
				t.Errorf("open = %v, want %v", m.IsOpen(catalog.TerminalID), tt.open)
			}
			if w.Maximized != tt.maximized {
				t.Errorf("maximized = %v, want %v", w.Maximized, tt.maximized)
			}
			if got := len(m.Tray()); got != tt.tray {
				t.Errorf("tray entries = %d, want %d", got, tt.tray)
			}
		})
	}
}

func TestTitleBarDrag(t *testing.T) {
	d := newTestDesktop(t)
	m := d.Manager()

	click(d, 30, 10)
	if !d.Drag().Active() {
		t.Fatal("pointer-down on the title bar should start a drag")
	}
	HandleInput(tea.MouseMotionMsg{X: 35, Y: 12}, d)
	if w, _ := m.Window(catalog.TerminalID); w.Left != 29 || w.Top != 12 {
		t.Errorf("after motion window at (%d,%d), want (29,12)", w.Left, w.Top)
	}
	HandleInput(tea.MouseReleaseMsg{X: 36, Y: 12}, d)
	if d.Drag().Active() {
		t.Error("release should end the drag")
	}
	if w, _ := m.Window(catalog.TerminalID); w.Left != 30 {
		t.Errorf("left after release = %d, want 30", w.Left)
	}

	// Motion without a drag does nothing
	HandleInput(tea.MouseMotionMsg{X: 0, Y: 0}, d)
	if w, _ := m.Window(catalog.TerminalID); w.Left != 30 || w.Top != 12 {
		t.Error("window moved without a drag")
	}
}

func TestTitleBarDoubleClickMaximizes(t *testing.T) {
	d := newTestDesktop(t)

	// The test clock is frozen, so two clicks always form a double-click
	click(d, 30, 10)
	HandleInput(tea.MouseReleaseMsg{X: 30, Y: 10}, d)
	click(d, 30, 10)

	w, _ := d.Manager().Window(catalog.TerminalID)
	if !w.Maximized {
		t.Error("double-click on the title bar should maximize")
	}
	if d.Drag().Active() {
		t.Error("double-click must not start a drag")
	}
}

func TestClickBodyFocuses(t *testing.T) {
	d := newTestDesktop(t)
	d.OpenApp("about-me")

	click(d, 30, 15)
	if got := d.Manager().Focused(); got != catalog.TerminalID {
		t.Errorf("focused = %q, want %q", got, catalog.TerminalID)
	}
	if d.Drag().Active() {
		t.Error("clicking the body must not start a drag")
	}
}

func TestTrayClickToggles(t *testing.T) {
	d := newTestDesktop(t)
	m := d.Manager()

	slots := d.TraySlots()
	if len(slots) != 1 {
		t.Fatalf("tray slots = %d, want 1", len(slots))
	}
	x, y := slots[0].Rect.X, slots[0].Rect.Y

	click(d, x, y) // focused -> minimized
	if m.IsOpen(catalog.TerminalID) {
		t.Fatal("clicking the focused window's tray entry should minimize it")
	}
	click(d, x, y) // hidden -> shown
	if !m.IsOpen(catalog.TerminalID) || m.Focused() != catalog.TerminalID {
		t.Error("clicking a minimized window's tray entry should restore and focus it")
	}
}

func TestStartMenuMouse(t *testing.T) {
	d := newTestDesktop(t)

	start := d.StartButton()
	click(d, start.X, start.Y)
	if !d.StartMenuOpen() {
		t.Fatal("start button should open the menu")
	}
	click(d, start.X, start.Y)
	if d.StartMenuOpen() {
		t.Fatal("start button should close an open menu")
	}

	click(d, start.X, start.Y)
	click(d, 110, 2)
	if d.StartMenuOpen() {
		t.Fatal("clicking elsewhere should close the menu")
	}

	click(d, start.X, start.Y)
	r := d.MenuRect()
	click(d, r.X+2, r.Y+3) // second entry
	if d.StartMenuOpen() {
		t.Error("choosing an entry should close the menu")
	}
	if got := d.Manager().Focused(); got != "about-me" {
		t.Errorf("focused = %q, want about-me", got)
	}
}

func TestIconClicks(t *testing.T) {
	d := newTestDesktop(t)

	r := d.IconRect(2)
	click(d, r.X, r.Y)
	if got := d.SelectedIcon(); got != 2 {
		t.Fatalf("selected icon = %d, want 2", got)
	}
	if got := d.Manager().Focused(); got != "" {
		t.Errorf("clicking the desktop should blur windows, focused = %q", got)
	}

	click(d, r.X, r.Y)
	if got := d.Manager().Focused(); got != "projects" {
		t.Errorf("double-click focused %q, want projects", got)
	}

	click(d, 110, 2)
	if d.SelectedIcon() != -1 {
		t.Error("clicking empty desktop should clear the icon selection")
	}
}

func TestWheelScrollsTerminal(t *testing.T) {
	d := newTestDesktop(t)

	HandleInput(tea.MouseWheelMsg{X: 30, Y: 15, Button: tea.MouseWheelUp}, d)
	if d.Scroll() == 0 {
		t.Fatal("wheel up over the terminal should scroll back")
	}
	HandleInput(tea.MouseWheelMsg{X: 30, Y: 15, Button: tea.MouseWheelDown}, d)
	if d.Scroll() != 0 {
		t.Errorf("scroll = %d, want 0", d.Scroll())
	}

	HandleInput(tea.MouseWheelMsg{X: 110, Y: 2, Button: tea.MouseWheelUp}, d)
	if d.Scroll() != 0 {
		t.Error("wheel outside the terminal should not scroll it")
	}
}

func TestRightClickIgnored(t *testing.T) {
	d := newTestDesktop(t)

	HandleInput(tea.MouseClickMsg{X: 94, Y: 10, Button: tea.MouseRight}, d)
	if !d.Manager().IsOpen(catalog.TerminalID) {
		t.Error("right click on close button should be ignored")
	}
}
