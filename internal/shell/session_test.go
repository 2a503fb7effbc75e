package shell

import (
	"slices"
	"strings"
	"testing"

	"github.com/obvos/obvos/internal/catalog"
)

type fakeManager struct {
	opened []string
	closed []string
}

func (f *fakeManager) Open(id string)  { f.opened = append(f.opened, id) }
func (f *fakeManager) Close(id string) { f.closed = append(f.closed, id) }

type fixedClock string

func (c fixedClock) Now() string { return string(c) }

func newTestSession(t *testing.T) (*Session, *fakeManager) {
	t.Helper()
	wm := &fakeManager{}
	s := NewSession(Options{
		Catalog: catalog.Default(),
		Manager: wm,
		Clock:   fixedClock("19/10/2026 09:30:00 AM"),
		Profile: DefaultProfile(),
		Banner:  []string{},
	})
	return s, wm
}

func typeLine(s *Session, line string) {
	s.Insert(line)
	s.Submit()
}

// output returns the transcript lines after the last prompt echo, without blanks.
func output(s *Session) []Line {
	lines := s.Lines()
	last := -1
	for i, l := range lines {
		if l.Kind == KindPrompt {
			last = i
		}
	}
	var out []Line
	for _, l := range lines[last+1:] {
		if !l.Blank() {
			out = append(out, l)
		}
	}
	return out
}

func TestSubmitEchoesPromptFirst(t *testing.T) {
	s, _ := newTestSession(t)
	typeLine(s, "  whoami  ")

	lines := s.Lines()
	if len(lines) < 2 {
		t.Fatalf("expected echo and output, got %d lines", len(lines))
	}
	if lines[0].Kind != KindPrompt || lines[0].Text() != DefaultPrompt+"whoami" {
		t.Errorf("first line = %q, want prompt echo", lines[0].Text())
	}
	if lines[1].Kind != KindOK || !strings.HasPrefix(lines[1].Text(), "User: ") {
		t.Errorf("second line = %q", lines[1].Text())
	}
	if s.Buffer() != "" || s.Caret() != 0 {
		t.Errorf("buffer not cleared: %q caret %d", s.Buffer(), s.Caret())
	}
}

func TestEmptySubmission(t *testing.T) {
	s, _ := newTestSession(t)
	typeLine(s, "   ")

	if len(s.History()) != 0 {
		t.Errorf("empty line added to history: %v", s.History())
	}
	lines := s.Lines()
	if len(lines) != 1 || lines[0].Text() != DefaultPrompt {
		t.Errorf("empty submission transcript = %v", lines)
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		line     string
		wantKind Kind
		want     string
	}{
		{"help", KindOK, "Available commands:"},
		{"HELP", KindOK, "Available commands:"},
		{"whoami", KindOK, "User: ObvOS User"},
		{"date", KindOK, "19/10/2026 09:30:00 AM"},
		{"status", KindOK, "Currently working on:"},
		{"cat Reading.txt", KindOK, "Currently Reading:"},
		{"cat READING.TXT", KindOK, "Currently Reading:"},
		{"read Reading.txt", KindOK, "Currently Reading:"},
		{"cat nothing.txt", KindError, "cat: no such file: nothing.txt. Did you mean 'cat Reading.txt'?"},
		{"open nonexistentapp", KindError, "bash: app not found: nonexistentapp. Try 'ls' to see available files."},
		{"frobnicate now", KindError, "bash: command not found: frobnicate now"},
		{"socials", KindOK, "GitHub: github.com/obvos"},
		{"contact", KindOK, "Email: hello@obvos.dev"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s, _ := newTestSession(t)
			typeLine(s, tt.line)
			out := output(s)
			if len(out) == 0 {
				t.Fatalf("%q produced no output", tt.line)
			}
			if out[0].Kind != tt.wantKind {
				t.Errorf("%q kind = %v, want %v", tt.line, out[0].Kind, tt.wantKind)
			}
			if got := out[0].Text(); got != tt.want {
				t.Errorf("%q first line = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestOpenResolvesAliases(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"open projects", "projects"},
		{"open BIO", "about-me"},
		{"OPEN shell", catalog.TerminalID},
		{"open reading.txt", "library"},
		{"open Goals.TXT", "goals"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s, wm := newTestSession(t)
			typeLine(s, tt.line)
			if !slices.Equal(wm.opened, []string{tt.want}) {
				t.Errorf("%q opened %v, want [%s]", tt.line, wm.opened, tt.want)
			}
			out := output(s)
			if len(out) != 1 || out[0].Text() != "Opening "+tt.want+"..." {
				t.Errorf("%q output = %v", tt.line, out)
			}
		})
	}
}

func TestOpenUnknownDoesNotOpen(t *testing.T) {
	s, wm := newTestSession(t)
	typeLine(s, "open nonexistentapp")
	if len(wm.opened) != 0 {
		t.Errorf("unexpected open: %v", wm.opened)
	}
}

func TestLsClassifiesTokens(t *testing.T) {
	s, _ := newTestSession(t)
	typeLine(s, "ls")
	out := output(s)
	if len(out) != 1 {
		t.Fatalf("ls printed %d lines, want 1", len(out))
	}

	var dirs, files, seps int
	for _, sp := range out[0].Spans {
		switch sp.Class {
		case ClassDir:
			dirs++
			if !strings.HasSuffix(sp.Text, "/") {
				t.Errorf("directory %q missing trailing slash", sp.Text)
			}
		case ClassFile:
			files++
		case ClassSep:
			seps++
		}
	}
	if dirs != len(catalog.DefaultApps()) || files != 1 || seps != dirs+files-1 {
		t.Errorf("ls dirs=%d files=%d seps=%d", dirs, files, seps)
	}
	if !strings.HasSuffix(out[0].Text(), " · Reading.txt") {
		t.Errorf("ls = %q", out[0].Text())
	}
}

func TestSocialsAreLinks(t *testing.T) {
	s, _ := newTestSession(t)
	typeLine(s, "socials")
	for _, l := range output(s) {
		last := l.Spans[len(l.Spans)-1]
		if last.Class != ClassLink || !strings.HasPrefix(last.Href, "https://") {
			t.Errorf("social line %q has no link span", l.Text())
		}
	}
}

func TestClearWipesEverything(t *testing.T) {
	for _, cmd := range []string{"clear", "cls", "CLS"} {
		t.Run(cmd, func(t *testing.T) {
			s, _ := newTestSession(t)
			typeLine(s, "help")
			typeLine(s, cmd)
			if n := len(s.Lines()); n != 0 {
				t.Errorf("%s left %d lines", cmd, n)
			}
			if got := s.History(); !slices.Equal(got, []string{"help", cmd}) {
				t.Errorf("history = %v", got)
			}
		})
	}
}

func TestExitClosesTerminal(t *testing.T) {
	s, wm := newTestSession(t)
	typeLine(s, "exit")
	if !slices.Equal(wm.closed, []string{catalog.TerminalID}) {
		t.Errorf("exit closed %v", wm.closed)
	}
	if out := output(s); len(out) != 0 {
		t.Errorf("exit printed %v", out)
	}
}

func TestHistoryRecall(t *testing.T) {
	s, _ := newTestSession(t)
	cmds := []string{"help", "ls", "date"}
	for _, c := range cmds {
		typeLine(s, c)
	}

	// k presses of Up recall the k-th most recent, floored at the oldest
	for k := 1; k <= 4; k++ {
		s.HistoryUp()
		want := cmds[max(0, len(cmds)-k)]
		if s.Buffer() != want {
			t.Errorf("after %d Up, buffer = %q, want %q", k, s.Buffer(), want)
		}
		if s.Caret() != len(want) {
			t.Errorf("after %d Up, caret = %d, want %d", k, s.Caret(), len(want))
		}
	}

	s.HistoryDown()
	if s.Buffer() != "ls" {
		t.Errorf("Down from oldest = %q, want ls", s.Buffer())
	}
	s.HistoryDown()
	s.HistoryDown()
	if s.Buffer() != "" {
		t.Errorf("Down past newest = %q, want empty", s.Buffer())
	}

	s.Insert("typed")
	s.HistoryDown()
	if s.Buffer() != "typed" {
		t.Errorf("Down while not browsing changed buffer to %q", s.Buffer())
	}
}

func TestHistoryRecallEmpty(t *testing.T) {
	s, _ := newTestSession(t)
	s.Insert("abc")
	s.HistoryUp()
	if s.Buffer() != "abc" {
		t.Errorf("Up with empty history changed buffer to %q", s.Buffer())
	}
}

func TestHistoryResetsAfterSubmit(t *testing.T) {
	s, _ := newTestSession(t)
	typeLine(s, "help")
	typeLine(s, "ls")
	s.HistoryUp()
	s.HistoryUp()
	s.Submit()

	s.HistoryUp()
	if s.Buffer() != "help" {
		t.Errorf("Up after resubmitting = %q, want help", s.Buffer())
	}
	if got := s.History(); !slices.Equal(got, []string{"help", "ls", "help"}) {
		t.Errorf("history = %v", got)
	}
}

func TestEditingKeys(t *testing.T) {
	s, _ := newTestSession(t)
	s.Insert("hllo")
	s.Home()
	s.Right()
	s.Insert("e")
	if s.Buffer() != "hello" || s.Caret() != 2 {
		t.Fatalf("buffer %q caret %d", s.Buffer(), s.Caret())
	}
	s.End()
	s.Backspace()
	s.Left()
	s.Delete()
	if s.Buffer() != "hel" {
		t.Errorf("after edits buffer = %q, want hel", s.Buffer())
	}
	s.EraseLine()
	if s.Buffer() != "" {
		t.Errorf("EraseLine left %q", s.Buffer())
	}
}

func TestClearScreenKeepsInput(t *testing.T) {
	s, _ := newTestSession(t)
	typeLine(s, "help")
	s.Insert("ls")
	s.ClearScreen()
	if len(s.Lines()) != 0 || s.Buffer() != "ls" {
		t.Errorf("ClearScreen: %d lines, buffer %q", len(s.Lines()), s.Buffer())
	}
}

func TestBanner(t *testing.T) {
	s := NewSession(Options{
		Catalog: catalog.Default(),
		Manager: &fakeManager{},
		Clock:   fixedClock(""),
		Profile: DefaultProfile(),
	})
	lines := s.Lines()
	if len(lines) != 4 {
		t.Fatalf("banner has %d lines, want 4", len(lines))
	}
	if !strings.HasPrefix(lines[0].Text(), "ObvOS v1.0 [Version ") {
		t.Errorf("banner starts with %q", lines[0].Text())
	}
	if lines[2].Text() != "Welcome! Type 'help' to begin." {
		t.Errorf("banner welcome = %q", lines[2].Text())
	}
}
