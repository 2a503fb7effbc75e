package shell

import (
	"slices"
	"strings"
)

// Completer supplies the candidate pools for tab completion.
type Completer struct {
	Commands []string
	Apps     []string
	Files    []string
}

// argCommands take an argument, so completing them as the first token appends a space.
var argCommands = []string{"open", "cat", "read"}

// Candidates returns the candidates for the token ending at caret, and the
// token's rune span in value.
func (c Completer) Candidates(value string, caret int) (list []string, start, end int, first bool) {
	runes := []rune(value)
	caret = max(0, min(caret, len(runes)))
	left := string(runes[:caret])

	start = 0
	if i := strings.LastIndex(left, " "); i >= 0 {
		start = len([]rune(left[:i+1]))
	}
	token := string(runes[start:caret])

	var pool []string
	firstSpace := strings.Index(left, " ")
	switch {
	case firstSpace < 0:
		first = true
		pool = c.Commands
	default:
		switch strings.TrimSpace(left[:firstSpace]) {
		case "open":
			pool = c.Apps
		case "cat", "read":
			pool = c.Files
		}
	}

	for _, s := range pool {
		if strings.HasPrefix(s, token) {
			list = append(list, s)
		}
	}
	return list, start, caret, first
}

// Completion is the cached candidate list for cycling with Tab and Shift+Tab.
type Completion struct {
	list     []string
	index    int
	start    int
	end      int
	first    bool
	spaced   bool
	snapshot string
}

// Reset drops the cached candidates.
func (c *Completion) Reset() {
	*c = Completion{}
}

// Candidates returns the cached candidate list and the index of the applied one.
func (c *Completion) Candidates() ([]string, int) {
	return c.list, c.index
}

// Step completes the token under the editor's caret. The first call on a
// changed buffer computes candidates and applies the first; later calls cycle
// forward, or backward with reverse. It reports whether anything was applied.
func (c *Completion) Step(e *Editor, src Completer, reverse bool) bool {
	value := e.String()
	if c.snapshot != value || len(c.list) == 0 {
		list, start, end, first := src.Candidates(value, e.Caret())
		*c = Completion{
			list:     list,
			start:    start,
			end:      end,
			first:    first,
			snapshot: value,
		}
	} else {
		delta := 1
		if reverse {
			delta = -1
		}
		c.index = (c.index + delta + len(c.list)) % len(c.list)
	}

	if len(c.list) == 0 {
		return false
	}

	choice := c.list[c.index]
	runes := []rune(value)
	cut := c.end
	if c.spaced {
		cut++
	}
	cut = min(cut, len(runes))
	rest := string(runes[cut:])

	var sb strings.Builder
	sb.WriteString(string(runes[:c.start]))
	sb.WriteString(choice)
	caret := c.start + len([]rune(choice))

	c.spaced = false
	if c.first && slices.Contains(argCommands, choice) {
		if !strings.HasPrefix(rest, " ") {
			sb.WriteString(" ")
			c.spaced = true
		}
		caret++
	}
	sb.WriteString(rest)

	e.Set(sb.String())
	e.SetCaret(caret)
	c.snapshot = e.String()
	c.end = c.start + len([]rune(choice))
	return true
}
