package wm

import "slices"

// Rect is a window's position and size in desktop units.
type Rect struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Left+r.Width &&
		y >= r.Top && y < r.Top+r.Height
}

// Window is the state of one application window.
type Window struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Rect      `json:"rect"`
	Visible   bool `json:"visible"`
	Z         int  `json:"z"`
	Maximized bool `json:"maximized"`

	positioned bool
	saved      *Rect
}

// Positioned reports whether the window has been placed on the desktop at least once.
func (w Window) Positioned() bool {
	return w.positioned
}

// Saved returns the pre-maximize geometry. It only exists while the window is maximized.
func (w Window) Saved() (Rect, bool) {
	if w.saved == nil {
		return Rect{}, false
	}
	return *w.saved, true
}

// Registry tracks every declared window. Windows are never removed.
type Registry struct {
	windows map[string]*Window
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{windows: make(map[string]*Window)}
}

// Declare registers a hidden, unpositioned window. Re-declaring an id updates
// its title and default size only while it has never been shown.
func (r *Registry) Declare(id, title string, width, height int) {
	if w, ok := r.windows[id]; ok {
		if !w.positioned {
			w.Title = title
			w.Width = width
			w.Height = height
		}
		return
	}
	r.windows[id] = &Window{
		ID:    id,
		Title: title,
		Rect:  Rect{Width: width, Height: height},
	}
	r.order = append(r.order, id)
}

// Get returns the live window for id.
func (r *Registry) Get(id string) (*Window, bool) {
	w, ok := r.windows[id]
	return w, ok
}

// Len returns the number of declared windows.
func (r *Registry) Len() int {
	return len(r.order)
}

// All returns every window in declaration order.
func (r *Registry) All() []*Window {
	all := make([]*Window, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.windows[id])
	}
	return all
}

// Visible returns the visible windows sorted by ascending z-order.
func (r *Registry) Visible() []*Window {
	var visible []*Window
	for _, id := range r.order {
		if w := r.windows[id]; w.Visible {
			visible = append(visible, w)
		}
	}
	slices.SortStableFunc(visible, func(a, b *Window) int {
		return a.Z - b.Z
	})
	return visible
}
