// Package shell implements ObvTerm, the desktop's toy terminal: a line editor
// with history, tab completion and a small builtin command interpreter.
package shell

import (
	"io"
	"regexp"
	"strings"

	"charm.land/log/v2"

	"github.com/obvos/obvos/internal/catalog"
)

// WindowManager is the part of the window manager the interpreter drives.
type WindowManager interface {
	Open(id string)
	Close(id string)
}

// Clock formats the current time for the date command.
type Clock interface {
	Now() string
}

// Link is a labelled hyperlink printed by socials and contact.
type Link struct {
	Label string `toml:"label"`
	URL   string `toml:"url"`
	Text  string `toml:"text,omitempty"`
}

// DisplayText returns Text, or the URL without its scheme.
func (l Link) DisplayText() string {
	if l.Text != "" {
		return l.Text
	}
	s := l.URL
	for _, prefix := range []string{"https://", "http://", "mailto:"} {
		s = strings.TrimPrefix(s, prefix)
	}
	return s
}

// Profile is the owner information printed by whoami, status, socials and contact.
type Profile struct {
	Name     string   `toml:"name"`
	Location string   `toml:"location"`
	Status   []string `toml:"status"`
	Socials  []Link   `toml:"socials"`
	Contact  []Link   `toml:"contact"`
}

// DefaultProfile returns placeholder owner information.
func DefaultProfile() Profile {
	return Profile{
		Name:     "ObvOS User",
		Location: "localhost",
		Status: []string{
			"Jerm: a high-performance terminal.",
			"cuda-GL: GPU-accelerated graphics components with CUDA/OpenGL.",
		},
		Socials: []Link{
			{Label: "GitHub", URL: "https://github.com/obvos"},
			{Label: "X/Twitter", URL: "https://x.com/obvos"},
		},
		Contact: []Link{
			{Label: "Email", URL: "mailto:hello@obvos.dev"},
		},
	}
}

// Output is the effect of one command on the transcript.
type Output struct {
	Lines []Line
	// Clear wipes the transcript, including the echoed command.
	Clear bool
}

// Interpreter runs submitted command lines.
type Interpreter struct {
	catalog *catalog.Catalog
	wm      WindowManager
	clock   Clock
	profile Profile
	log     *log.Logger
}

// NewInterpreter creates an interpreter. A nil logger discards output.
func NewInterpreter(cat *catalog.Catalog, wm WindowManager, clock Clock, profile Profile, logger *log.Logger) *Interpreter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Interpreter{
		catalog: cat,
		wm:      wm,
		clock:   clock,
		profile: profile,
		log:     logger.WithPrefix("shell"),
	}
}

// Execute runs one trimmed command line. Empty lines produce no output.
func (in *Interpreter) Execute(line string) Output {
	line = strings.TrimSpace(line)
	if line == "" {
		return Output{}
	}

	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])
	args := fields[1:]

	b := GetBuiltin(name)
	if b == nil {
		in.log.Debug("unknown command", "line", line)
		return errorOutput("bash: command not found: " + line)
	}
	in.log.Debug("exec", "command", name, "args", args)
	return b.Func(in, args)
}

// txtSuffix matches the extension users tend to type after app names.
var txtSuffix = regexp.MustCompile(`(?i)\.txt$`)

// resolveApp maps the arguments of open to an application identifier.
func (in *Interpreter) resolveApp(args []string) (string, bool) {
	joined := strings.TrimSpace(txtSuffix.ReplaceAllString(strings.Join(args, " "), ""))
	return in.catalog.Resolve(joined)
}

func okOutput(text string) Output {
	return Output{Lines: textLines(KindOK, text)}
}

func errorOutput(text string) Output {
	return Output{Lines: textLines(KindError, text)}
}

func linkLines(links []Link) []Line {
	lines := make([]Line, 0, len(links))
	for _, l := range links {
		lines = append(lines, Line{Kind: KindOK, Spans: []Span{
			{Text: l.Label + ": "},
			{Text: l.DisplayText(), Class: ClassLink, Href: l.URL},
		}})
	}
	return lines
}
