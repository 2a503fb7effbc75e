package shell

// Editor is a single-line input buffer with a rune-indexed caret.
type Editor struct {
	buf   []rune
	caret int
}

// String returns the buffer contents.
func (e *Editor) String() string {
	return string(e.buf)
}

// Caret returns the caret offset in runes.
func (e *Editor) Caret() int {
	return e.caret
}

// Len returns the buffer length in runes.
func (e *Editor) Len() int {
	return len(e.buf)
}

// Set replaces the buffer and puts the caret at the end.
func (e *Editor) Set(s string) {
	e.buf = []rune(s)
	e.caret = len(e.buf)
}

// SetCaret moves the caret, clamped to the buffer.
func (e *Editor) SetCaret(pos int) {
	e.caret = max(0, min(pos, len(e.buf)))
}

// Insert types s at the caret.
func (e *Editor) Insert(s string) {
	r := []rune(s)
	if len(r) == 0 {
		return
	}
	buf := make([]rune, 0, len(e.buf)+len(r))
	buf = append(buf, e.buf[:e.caret]...)
	buf = append(buf, r...)
	buf = append(buf, e.buf[e.caret:]...)
	e.buf = buf
	e.caret += len(r)
}

// Backspace deletes the rune before the caret.
func (e *Editor) Backspace() {
	if e.caret == 0 {
		return
	}
	e.buf = append(e.buf[:e.caret-1], e.buf[e.caret:]...)
	e.caret--
}

// Delete deletes the rune under the caret.
func (e *Editor) Delete() {
	if e.caret >= len(e.buf) {
		return
	}
	e.buf = append(e.buf[:e.caret], e.buf[e.caret+1:]...)
}

// Left moves the caret one rune left.
func (e *Editor) Left() { e.SetCaret(e.caret - 1) }

// Right moves the caret one rune right.
func (e *Editor) Right() { e.SetCaret(e.caret + 1) }

// Home moves the caret to the start of the line.
func (e *Editor) Home() { e.caret = 0 }

// End moves the caret to the end of the line.
func (e *Editor) End() { e.caret = len(e.buf) }

// Clear empties the buffer.
func (e *Editor) Clear() {
	e.buf = nil
	e.caret = 0
}

// notBrowsing is the history cursor value when no entry is recalled.
const notBrowsing = -1

// History is the append-only list of submitted commands and its recall cursor.
type History struct {
	entries []string
	index   int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{index: notBrowsing}
}

// Push appends a command and stops browsing.
func (h *History) Push(cmd string) {
	h.entries = append(h.entries, cmd)
	h.index = notBrowsing
}

// Previous moves the cursor toward older entries, stopping at the oldest.
// It reports false when the history is empty.
func (h *History) Previous() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.index == notBrowsing {
		h.index = len(h.entries)
	}
	h.index = max(0, h.index-1)
	return h.entries[h.index], true
}

// Next moves the cursor toward newer entries. Moving past the newest yields an
// empty line and stops browsing. It reports false when not browsing.
func (h *History) Next() (string, bool) {
	if len(h.entries) == 0 || h.index == notBrowsing {
		return "", false
	}
	h.index++
	if h.index >= len(h.entries) {
		h.index = notBrowsing
		return "", true
	}
	return h.entries[h.index], true
}

// Entries returns the submitted commands, oldest first.
func (h *History) Entries() []string {
	return h.entries
}
