package app

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/obvos/obvos/internal/wm"
)

// TitleButton identifies a window title bar button.
type TitleButton int

const (
	// ButtonNone means the point is not on a button.
	ButtonNone TitleButton = iota
	// ButtonMinimize hides the window to the tray.
	ButtonMinimize
	// ButtonMaximize toggles the maximized state.
	ButtonMaximize
	// ButtonClose closes the window.
	ButtonClose
)

const (
	defaultTitleButtons = "_□×"
	trayLabelWidth      = 14
	iconLabelWidth      = 16
	iconColumnWidth     = 18
	menuMinWidth        = 22
)

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// titleButtons returns the three button glyphs: minimize, maximize, close.
func (d *Desktop) titleButtons() []string {
	runes := []rune(d.appearance.TitleButtons)
	if len(runes) != 3 {
		runes = []rune(defaultTitleButtons)
	}
	return []string{string(runes[0]), string(runes[1]), string(runes[2])}
}

// buttonColumn returns the screen column of a title button. Buttons sit at the
// right end of the title bar, separated by one space.
func buttonColumn(w wm.Window, b TitleButton) int {
	return w.Left + w.Width - 2 - 2*int(ButtonClose-b)
}

// TitleButtonAt returns the title bar button of window id under (x, y).
func (d *Desktop) TitleButtonAt(id string, x, y int) TitleButton {
	w, ok := d.manager.Window(id)
	if !ok || y != w.Top {
		return ButtonNone
	}
	for _, b := range []TitleButton{ButtonMinimize, ButtonMaximize, ButtonClose} {
		if x == buttonColumn(w, b) {
			return b
		}
	}
	return ButtonNone
}

// OnTitleBar reports whether (x, y) is on the title bar of window id.
func (d *Desktop) OnTitleBar(id string, x, y int) bool {
	w, ok := d.manager.Window(id)
	return ok && y == w.Top && x >= w.Left && x < w.Left+w.Width
}

// TaskbarY returns the row of the taskbar.
func (d *Desktop) TaskbarY() int {
	return max(d.height-TaskbarHeight, 0)
}

func (d *Desktop) startLabel() string {
	label := d.appearance.StartLabel
	if label == "" {
		label = "Start"
	}
	return " " + label + " "
}

// StartButton returns the start button rectangle.
func (d *Desktop) StartButton() Rect {
	return Rect{X: 0, Y: d.TaskbarY(), Width: ansi.StringWidth(d.startLabel()), Height: TaskbarHeight}
}

// TraySlot is one tray entry's position on the taskbar.
type TraySlot struct {
	wm.TrayEntry
	Label string
	Rect  Rect
}

// TraySlots lays out the tray entries after the start button. Entries that do
// not fit before the status area are dropped.
func (d *Desktop) TraySlots() []TraySlot {
	limit := d.width - ansi.StringWidth(d.statusText()) - 1
	x := d.StartButton().Width + 1
	var slots []TraySlot
	for _, e := range d.manager.Tray() {
		label := " " + ansi.Truncate(e.Title, trayLabelWidth, "…") + " "
		w := ansi.StringWidth(label)
		if x+w > limit {
			break
		}
		slots = append(slots, TraySlot{
			TrayEntry: e,
			Label:     label,
			Rect:      Rect{X: x, Y: d.TaskbarY(), Width: w, Height: TaskbarHeight},
		})
		x += w + 1
	}
	return slots
}

// TrayEntryAt returns the window whose tray entry is under (x, y).
func (d *Desktop) TrayEntryAt(x, y int) (string, bool) {
	for _, s := range d.TraySlots() {
		if s.Rect.Contains(x, y) {
			return s.WindowID, true
		}
	}
	return "", false
}

// IconRect returns the screen rectangle of desktop icon i.
func (d *Desktop) IconRect(i int) Rect {
	perColumn := max((d.TaskbarY()-1)/2, 1)
	col, row := i/perColumn, i%perColumn
	label := d.iconLabel(i)
	return Rect{X: 2 + col*iconColumnWidth, Y: 1 + row*2, Width: ansi.StringWidth(label), Height: 1}
}

func (d *Desktop) iconLabel(i int) string {
	glyph := "▣ "
	if d.launchers[i].IsShortcut() {
		glyph = "↗ "
	}
	return glyph + ansi.Truncate(d.launchers[i].Label, iconLabelWidth-2, "…")
}

// IconAt returns the desktop icon under (x, y).
func (d *Desktop) IconAt(x, y int) (int, bool) {
	if !d.appearance.ShowIcons {
		return -1, false
	}
	for i := range d.launchers {
		if d.IconRect(i).Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

func (d *Desktop) appLauncherCount() int {
	n := 0
	for _, l := range d.launchers {
		if !l.IsShortcut() {
			n++
		}
	}
	return n
}

// menuSeparator reports whether a separator row splits apps from shortcuts.
func (d *Desktop) menuSeparator() bool {
	n := d.appLauncherCount()
	return n > 0 && n < len(d.launchers)
}

// MenuRect returns the start menu rectangle, anchored above the start button.
func (d *Desktop) MenuRect() Rect {
	width := menuMinWidth
	for _, l := range d.launchers {
		width = max(width, ansi.StringWidth(l.Label)+6)
	}
	height := len(d.launchers) + 3
	if d.menuSeparator() {
		height++
	}
	return Rect{X: 0, Y: max(d.TaskbarY()-height, 0), Width: width, Height: height}
}

// menuItemRow returns the screen row of start menu entry i.
func (d *Desktop) menuItemRow(i int) int {
	row := d.MenuRect().Y + 2 + i
	if d.menuSeparator() && i >= d.appLauncherCount() {
		row++
	}
	return row
}

// MenuItemAt returns the start menu entry under (x, y).
func (d *Desktop) MenuItemAt(x, y int) (int, bool) {
	r := d.MenuRect()
	if x <= r.X || x >= r.X+r.Width-1 {
		return -1, false
	}
	for i := range d.launchers {
		if d.menuItemRow(i) == y {
			return i, true
		}
	}
	return -1, false
}
