package shell

import (
	"strings"
	"time"

	"charm.land/log/v2"

	"github.com/obvos/obvos/internal/catalog"
)

// DefaultPrompt is echoed before every submitted command.
const DefaultPrompt = "user@obvOS:~$ "

// Options configures a Session.
type Options struct {
	Catalog  *catalog.Catalog
	Manager  WindowManager
	Clock    Clock
	Profile  Profile
	Prompt   string
	Banner   []string
	MaxLines int
	Logger   *log.Logger
}

// DefaultBanner returns the greeting printed when the terminal starts.
func DefaultBanner(now time.Time) []string {
	return []string{
		"ObvOS v1.0 [Version " + now.Format(time.DateOnly) + "]",
		"(c) ObvOS contributors. All rights reserved.",
		"Welcome! Type 'help' to begin.",
	}
}

// Session is one terminal: its input line, history, completion and output.
// Every key the terminal handles maps to one method.
type Session struct {
	editor     Editor
	history    *History
	completion Completion
	completer  Completer
	interp     *Interpreter
	transcript *Transcript
	prompt     string
}

// NewSession creates a terminal session and prints the banner.
func NewSession(opts Options) *Session {
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.Banner == nil {
		opts.Banner = DefaultBanner(time.Now())
	}
	s := &Session{
		history:    NewHistory(),
		interp:     NewInterpreter(opts.Catalog, opts.Manager, opts.Clock, opts.Profile, opts.Logger),
		transcript: NewTranscript(opts.MaxLines),
		prompt:     opts.Prompt,
		completer: Completer{
			Commands: CommandNames(),
			Apps:     opts.Catalog.Names(),
			Files:    opts.Catalog.FileNames(),
		},
	}
	for _, l := range opts.Banner {
		s.transcript.Append(textLine(KindPlain, l))
	}
	if len(opts.Banner) > 0 {
		s.transcript.Append(Line{Kind: KindPlain})
	}
	return s
}

// Prompt returns the prompt text.
func (s *Session) Prompt() string { return s.prompt }

// Buffer returns the input line.
func (s *Session) Buffer() string { return s.editor.String() }

// Caret returns the caret offset in runes.
func (s *Session) Caret() int { return s.editor.Caret() }

// Lines returns the transcript, oldest first.
func (s *Session) Lines() []Line { return s.transcript.Lines() }

// History returns the submitted commands, oldest first.
func (s *Session) History() []string { return s.history.Entries() }

// Completions returns the cached candidates and the applied index.
func (s *Session) Completions() ([]string, int) { return s.completion.Candidates() }

// Submit echoes the line, records it in history, runs it and clears the input.
func (s *Session) Submit() {
	s.completion.Reset()
	cmd := strings.TrimSpace(s.editor.String())
	s.transcript.Append(Line{Kind: KindPrompt, Spans: []Span{
		{Text: s.prompt, Class: ClassPrompt},
		{Text: cmd},
	}})
	if cmd != "" {
		s.history.Push(cmd)
	}

	out := s.interp.Execute(cmd)
	if out.Clear {
		s.transcript.Clear()
	} else if len(out.Lines) > 0 {
		s.transcript.Append(out.Lines...)
		s.transcript.Append(Line{Kind: KindPlain})
	}
	s.editor.Clear()
}

// Complete applies the next completion candidate, or the previous one with reverse.
func (s *Session) Complete(reverse bool) {
	s.completion.Step(&s.editor, s.completer, reverse)
}

// ResetCompletion drops the cached completion candidates.
func (s *Session) ResetCompletion() {
	s.completion.Reset()
}

// HistoryUp recalls the previous command.
func (s *Session) HistoryUp() {
	if cmd, ok := s.history.Previous(); ok {
		s.editor.Set(cmd)
		s.completion.Reset()
	}
}

// HistoryDown recalls the next command, or empties the line past the newest.
func (s *Session) HistoryDown() {
	if cmd, ok := s.history.Next(); ok {
		s.editor.Set(cmd)
		s.completion.Reset()
	}
}

// ClearScreen wipes the transcript without touching the input line.
func (s *Session) ClearScreen() {
	s.transcript.Clear()
}

// EraseLine empties the input line.
func (s *Session) EraseLine() {
	s.edit(s.editor.Clear)
}

// Insert types text at the caret.
func (s *Session) Insert(text string) {
	s.edit(func() { s.editor.Insert(text) })
}

// Backspace deletes before the caret.
func (s *Session) Backspace() { s.edit(s.editor.Backspace) }

// Delete deletes under the caret.
func (s *Session) Delete() { s.edit(s.editor.Delete) }

// Left moves the caret left.
func (s *Session) Left() { s.edit(s.editor.Left) }

// Right moves the caret right.
func (s *Session) Right() { s.edit(s.editor.Right) }

// Home moves the caret to the start of the line.
func (s *Session) Home() { s.edit(s.editor.Home) }

// End moves the caret to the end of the line.
func (s *Session) End() { s.edit(s.editor.End) }

func (s *Session) edit(fn func()) {
	s.completion.Reset()
	fn()
}
