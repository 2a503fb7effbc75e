package wm

// DefaultBaseZ is the z-order floor; the first focused window gets DefaultBaseZ+1.
const DefaultBaseZ = 100

// FocusStack hands out z-order values and remembers the focused window.
type FocusStack struct {
	highest int
	focused string
}

// NewFocusStack creates a focus stack whose first raise yields base+1.
func NewFocusStack(base int) *FocusStack {
	return &FocusStack{highest: base}
}

// Raise gives w the next z-order value and makes it the sole focused window.
func (f *FocusStack) Raise(w *Window) {
	f.highest++
	w.Z = f.highest
	f.focused = w.ID
}

// Clear drops focus.
func (f *FocusStack) Clear() {
	f.focused = ""
}

// Focused returns the focused window id, or "" when nothing has focus.
func (f *FocusStack) Focused() string {
	return f.focused
}

// topmost returns the visible window with the highest z-order, or nil.
func topmost(visible []*Window) *Window {
	var top *Window
	for _, w := range visible {
		if top == nil || w.Z > top.Z {
			top = w
		}
	}
	return top
}
