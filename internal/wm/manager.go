// Package wm implements the desktop window manager: window lifecycle,
// z-order focus, the taskbar tray, maximize/restore and dragging.
//
// The Manager is owned by a single desktop and is not safe for concurrent use.
package wm

import (
	"io"
	"slices"

	"charm.land/log/v2"
)

// Default geometry used when Options leaves a field at zero.
const (
	DefaultCascadeOffset = 30
	DefaultEdgeInset     = 10
)

// Options configures a Manager.
type Options struct {
	// Width and Height are the desktop area available to windows.
	Width  int
	Height int
	// CascadeOffset is added per already-open window when centering a new one.
	CascadeOffset int
	// EdgeInset is the gap kept from the desktop edge when a window is pushed back inside.
	EdgeInset int
	// BaseZ is the z-order floor. Zero means DefaultBaseZ.
	BaseZ int
	// Logger receives debug events. Nil discards them.
	Logger *log.Logger
}

// Manager owns every window, the focus stack and the tray.
type Manager struct {
	registry *Registry
	focus    *FocusStack
	tray     Tray

	width   int
	height  int
	cascade int
	inset   int

	log *log.Logger
}

// NewManager creates a window manager for a desktop of the given size.
func NewManager(opts Options) *Manager {
	if opts.CascadeOffset == 0 {
		opts.CascadeOffset = DefaultCascadeOffset
	}
	if opts.EdgeInset == 0 {
		opts.EdgeInset = DefaultEdgeInset
	}
	if opts.BaseZ == 0 {
		opts.BaseZ = DefaultBaseZ
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		registry: NewRegistry(),
		focus:    NewFocusStack(opts.BaseZ),
		width:    max(0, opts.Width),
		height:   max(0, opts.Height),
		cascade:  opts.CascadeOffset,
		inset:    opts.EdgeInset,
		log:      logger.WithPrefix("wm"),
	}
}

// Declare registers a window so that it can later be opened.
func (m *Manager) Declare(id, title string, width, height int) {
	m.registry.Declare(id, title, width, height)
}

// Open shows the window, places it on first open, adds its tray entry and focuses it.
// Opening an already-visible window only focuses it.
func (m *Manager) Open(id string) {
	w, ok := m.registry.Get(id)
	if !ok {
		m.log.Debug("open of unknown window", "window", id)
		return
	}

	if !w.positioned {
		m.place(w)
	}
	w.Visible = true
	if w.Maximized {
		m.fit(w)
	}
	m.tray.Add(w.ID, w.Title)
	m.focus.Raise(w)
	m.log.Debug("opened", "window", id, "z", w.Z, "top", w.Top, "left", w.Left)
}

// place centers w, cascaded by the number of open windows, then keeps it inside the desktop.
func (m *Manager) place(w *Window) {
	offset := m.tray.Len() * m.cascade
	top := (m.height-w.Height)/2 + offset
	left := (m.width-w.Width)/2 + offset

	if top+w.Height > m.height {
		top = m.height - w.Height - m.inset
	}
	if left+w.Width > m.width {
		left = m.width - w.Width - m.inset
	}
	if top < 0 {
		top = m.inset
	}
	if left < 0 {
		left = m.inset
	}

	w.Top = top
	w.Left = left
	w.positioned = true
}

// Close hides the window, drops its tray entry and hands focus to the topmost remaining window.
func (m *Manager) Close(id string) {
	w, ok := m.registry.Get(id)
	if !ok {
		return
	}
	w.Visible = false
	m.tray.Remove(id)

	if top := topmost(m.registry.Visible()); top != nil {
		m.focus.Raise(top)
	} else {
		m.focus.Clear()
	}
	m.log.Debug("closed", "window", id, "focused", m.focus.Focused())
}

// Minimize hides the window but keeps its tray entry. If it had focus, nothing has focus afterwards.
func (m *Manager) Minimize(id string) {
	w, ok := m.registry.Get(id)
	if !ok || !w.Visible {
		return
	}
	w.Visible = false
	if m.focus.Focused() == id {
		m.focus.Clear()
	}
	m.log.Debug("minimized", "window", id)
}

// ToggleFromTray shows and focuses a hidden or unfocused window, and minimizes a focused one.
func (m *Manager) ToggleFromTray(id string) {
	w, ok := m.registry.Get(id)
	if !ok || !m.tray.Has(id) {
		return
	}
	if !w.Visible || m.focus.Focused() != id {
		w.Visible = true
		if w.Maximized {
			m.fit(w)
		}
		m.focus.Raise(w)
		m.log.Debug("restored from tray", "window", id, "z", w.Z)
		return
	}
	m.Minimize(id)
}

// Maximize toggles the window between maximized and its saved geometry.
func (m *Manager) Maximize(id string) {
	w, ok := m.registry.Get(id)
	if !ok || !w.Visible {
		return
	}
	if w.Maximized {
		m.restore(w)
		return
	}
	saved := w.Rect
	w.saved = &saved
	w.Maximized = true
	m.fit(w)
	m.focus.Raise(w)
	m.log.Debug("maximized", "window", id)
}

// Restore returns a maximized window to its saved geometry. It does nothing otherwise.
func (m *Manager) Restore(id string) {
	w, ok := m.registry.Get(id)
	if !ok || !w.Maximized {
		return
	}
	m.restore(w)
}

func (m *Manager) restore(w *Window) {
	if w.saved != nil {
		w.Rect = *w.saved
	}
	w.saved = nil
	w.Maximized = false
	m.log.Debug("restored", "window", w.ID)
}

// fit sizes w to fill the desktop.
func (m *Manager) fit(w *Window) {
	w.Rect = Rect{Width: m.width, Height: m.height}
}

// Focus raises a visible window above all others and makes it the only focused one.
func (m *Manager) Focus(id string) {
	w, ok := m.registry.Get(id)
	if !ok || !w.Visible {
		return
	}
	m.focus.Raise(w)
}

// Blur drops focus without changing visibility.
func (m *Manager) Blur() {
	m.focus.Clear()
}

// FocusNext cycles focus through visible windows in z-order. With reverse it goes backwards.
func (m *Manager) FocusNext(reverse bool) {
	visible := m.registry.Visible()
	if len(visible) == 0 {
		return
	}
	idx := slices.IndexFunc(visible, func(w *Window) bool {
		return w.ID == m.focus.Focused()
	})
	var next *Window
	switch {
	case idx < 0:
		next = visible[len(visible)-1]
	case reverse:
		// raising the top window again is a no-op, so reverse goes to the one below it
		next = visible[(idx-1+len(visible))%len(visible)]
	default:
		// the bottom window becomes the new top
		next = visible[0]
	}
	m.focus.Raise(next)
}

// Draggable reports whether the window can currently be moved.
func (m *Manager) Draggable(id string) bool {
	w, ok := m.registry.Get(id)
	return ok && w.Visible && w.positioned && !w.Maximized
}

// Drag moves the window by (dx, dy), clamped to the desktop.
func (m *Manager) Drag(id string, dx, dy int) {
	if !m.Draggable(id) {
		return
	}
	w, _ := m.registry.Get(id)
	w.Left = clamp(w.Left+dx, 0, m.width-w.Width)
	w.Top = clamp(w.Top+dy, 0, m.height-w.Height)
}

// MoveTo positions the window at (left, top), clamped to the desktop.
func (m *Manager) MoveTo(id string, left, top int) {
	if w, ok := m.registry.Get(id); ok && m.Draggable(id) {
		m.Drag(id, left-w.Left, top-w.Top)
	}
}

// Resize records a new desktop size. Maximized windows refit; the rest are pulled back inside.
func (m *Manager) Resize(width, height int) {
	m.width = max(0, width)
	m.height = max(0, height)
	for _, w := range m.registry.All() {
		if w.Maximized {
			m.fit(w)
			continue
		}
		if !w.positioned {
			continue
		}
		if w.Left+w.Width > m.width {
			w.Left = max(0, m.width-w.Width)
		}
		if w.Top+w.Height > m.height {
			w.Top = max(0, m.height-w.Height)
		}
	}
	m.log.Debug("desktop resized", "width", m.width, "height", m.height)
}

// Size returns the desktop size.
func (m *Manager) Size() (width, height int) {
	return m.width, m.height
}

// Window returns a snapshot of one window.
func (m *Manager) Window(id string) (Window, bool) {
	w, ok := m.registry.Get(id)
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// Windows returns snapshots of the visible windows in ascending z-order.
func (m *Manager) Windows() []Window {
	visible := m.registry.Visible()
	out := make([]Window, len(visible))
	for i, w := range visible {
		out[i] = *w
	}
	return out
}

// Tray returns the tray entries with the focused window highlighted.
func (m *Manager) Tray() []TrayEntry {
	return m.tray.Entries(m.focus.Focused())
}

// Focused returns the focused window id, or "" when nothing has focus.
func (m *Manager) Focused() string {
	return m.focus.Focused()
}

// IsOpen reports whether the window has a tray entry.
func (m *Manager) IsOpen(id string) bool {
	return m.tray.Has(id)
}

// WindowAt returns the topmost visible window containing (x, y).
func (m *Manager) WindowAt(x, y int) (string, bool) {
	visible := m.registry.Visible()
	for i := len(visible) - 1; i >= 0; i-- {
		if visible[i].Contains(x, y) {
			return visible[i].ID, true
		}
	}
	return "", false
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
