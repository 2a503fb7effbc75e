package wm

// DragSession tracks one pointer drag of a window's title bar. At most one
// drag is active at a time.
type DragSession struct {
	active bool
	id     string
	grabX  int
	grabY  int
}

// Begin starts dragging id from the pointer position (x, y). It focuses the
// window and reports false if a drag is already active or the window cannot move.
func (d *DragSession) Begin(m *Manager, id string, x, y int) bool {
	if d.active || !m.Draggable(id) {
		return false
	}
	m.Focus(id)
	w, _ := m.Window(id)
	d.active = true
	d.id = id
	d.grabX = x - w.Left
	d.grabY = y - w.Top
	return true
}

// Move keeps the grabbed point of the window under the pointer at (x, y).
func (d *DragSession) Move(m *Manager, x, y int) {
	if !d.active {
		return
	}
	m.MoveTo(d.id, x-d.grabX, y-d.grabY)
}

// End finishes the drag.
func (d *DragSession) End() {
	*d = DragSession{}
}

// Active reports whether a drag is in progress.
func (d *DragSession) Active() bool {
	return d.active
}

// WindowID returns the dragged window, or "" when idle.
func (d *DragSession) WindowID() string {
	return d.id
}
