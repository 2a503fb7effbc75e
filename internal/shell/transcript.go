package shell

import "strings"

// Kind classifies a transcript line.
type Kind int

const (
	// KindPlain is banner text and spacing.
	KindPlain Kind = iota
	// KindPrompt is the echo of a submitted command.
	KindPrompt
	// KindOK is normal command output.
	KindOK
	// KindError is an error message.
	KindError
)

// Class tells the renderer how to color a span.
type Class int

const (
	ClassText Class = iota
	ClassPrompt
	ClassDir
	ClassFile
	ClassSep
	ClassLink
)

// Span is a run of text within a line. Href is set for hyperlinks.
type Span struct {
	Text  string
	Class Class
	Href  string
}

// Line is one row of terminal output.
type Line struct {
	Kind  Kind
	Spans []Span
}

// Text returns the line without styling.
func (l Line) Text() string {
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Blank reports whether the line has no text.
func (l Line) Blank() bool {
	for _, s := range l.Spans {
		if s.Text != "" {
			return false
		}
	}
	return true
}

func textLine(kind Kind, text string) Line {
	return Line{Kind: kind, Spans: []Span{{Text: text}}}
}

// textLines splits multi-line text into one Line per row.
func textLines(kind Kind, text string) []Line {
	rows := strings.Split(text, "\n")
	lines := make([]Line, len(rows))
	for i, row := range rows {
		lines[i] = textLine(kind, row)
	}
	return lines
}

// DefaultMaxLines bounds the scrollback kept by a Transcript.
const DefaultMaxLines = 1000

// Transcript is the terminal's output buffer. The oldest lines are dropped
// once it grows past its limit.
type Transcript struct {
	lines []Line
	max   int
}

// NewTranscript creates a transcript keeping at most max lines. Zero means DefaultMaxLines.
func NewTranscript(max int) *Transcript {
	if max <= 0 {
		max = DefaultMaxLines
	}
	return &Transcript{max: max}
}

// Append adds lines to the end.
func (t *Transcript) Append(lines ...Line) {
	t.lines = append(t.lines, lines...)
	if over := len(t.lines) - t.max; over > 0 {
		t.lines = append(t.lines[:0:0], t.lines[over:]...)
	}
}

// Clear removes every line.
func (t *Transcript) Clear() {
	t.lines = nil
}

// Lines returns the current lines, oldest first.
func (t *Transcript) Lines() []Line {
	return t.lines
}

// Len returns the number of lines.
func (t *Transcript) Len() int {
	return len(t.lines)
}
