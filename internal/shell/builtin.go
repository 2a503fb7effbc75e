package shell

import (
	"fmt"
	"strings"

	"github.com/obvos/obvos/internal/catalog"
)

// BuiltinFunc runs a builtin with its arguments.
type BuiltinFunc func(in *Interpreter, args []string) Output

// BuiltinCommand represents a built-in command.
type BuiltinCommand struct {
	Name string
	Func BuiltinFunc
	Help string
}

// builtins holds all built-in commands, in completion order.
var builtins = []BuiltinCommand{
	{"help", builtinHelp, "List available commands"},
	{"whoami", builtinWhoami, "Show who owns this desktop"},
	{"ls", builtinLs, "List applications and files"},
	{"open", builtinOpen, "Open an application window"},
	{"socials", builtinSocials, "Show social links"},
	{"contact", builtinContact, "Show contact details"},
	{"date", builtinDate, "Print the current date and time"},
	{"clear", builtinClear, "Clear the terminal"},
	{"cls", builtinClear, "Clear the terminal"},
	{"exit", builtinExit, "Close the terminal"},
	{"status", builtinStatus, "Show what is being worked on"},
	{"cat", builtinCat, "Print a file"},
	{"read", builtinCat, "Print a file"},
}

// builtinMap maps command names to built-in commands.
var builtinMap = make(map[string]*BuiltinCommand)

func init() {
	for i := range builtins {
		builtinMap[builtins[i].Name] = &builtins[i]
	}
}

// GetBuiltin returns the built-in command with the given name.
func GetBuiltin(name string) *BuiltinCommand {
	return builtinMap[name]
}

// CommandNames returns every builtin name in completion order.
func CommandNames() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.Name
	}
	return names
}

const helpText = "Available commands:\n" +
	"- help, whoami, ls, open [app], socials, contact, date, clear (alias: cls), exit, status, cat [%s]"

func builtinHelp(in *Interpreter, _ []string) Output {
	return okOutput(fmt.Sprintf(helpText, in.firstFile()))
}

func builtinWhoami(in *Interpreter, _ []string) Output {
	return okOutput(fmt.Sprintf("User: %s\nLocation: %s", in.profile.Name, in.profile.Location))
}

func builtinLs(in *Interpreter, _ []string) Output {
	var spans []Span
	sep := func() {
		if len(spans) > 0 {
			spans = append(spans, Span{Text: " · ", Class: ClassSep})
		}
	}
	for _, id := range in.catalog.IDs() {
		sep()
		spans = append(spans, Span{Text: id + "/", Class: ClassDir})
	}
	for _, name := range in.catalog.FileNames() {
		sep()
		spans = append(spans, Span{Text: name, Class: ClassFile})
	}
	return Output{Lines: []Line{{Kind: KindOK, Spans: spans}}}
}

func builtinOpen(in *Interpreter, args []string) Output {
	id, ok := in.resolveApp(args)
	if !ok {
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		return errorOutput(fmt.Sprintf("bash: app not found: %s. Try 'ls' to see available files.", arg))
	}
	in.wm.Open(id)
	return okOutput(fmt.Sprintf("Opening %s...", id))
}

func builtinSocials(in *Interpreter, _ []string) Output {
	return Output{Lines: linkLines(in.profile.Socials)}
}

func builtinContact(in *Interpreter, _ []string) Output {
	return Output{Lines: linkLines(in.profile.Contact)}
}

func builtinDate(in *Interpreter, _ []string) Output {
	return okOutput(in.clock.Now())
}

func builtinClear(*Interpreter, []string) Output {
	return Output{Clear: true}
}

func builtinExit(in *Interpreter, _ []string) Output {
	in.wm.Close(catalog.TerminalID)
	return Output{}
}

func builtinStatus(in *Interpreter, _ []string) Output {
	var sb strings.Builder
	sb.WriteString("Currently working on:")
	for _, s := range in.profile.Status {
		sb.WriteString("\n- ")
		sb.WriteString(s)
	}
	return okOutput(sb.String())
}

func builtinCat(in *Interpreter, args []string) Output {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	if content, ok := in.catalog.ReadFile(arg); ok {
		return okOutput(content)
	}
	msg := fmt.Sprintf("cat: no such file: %s.", arg)
	if f := in.firstFile(); f != "" {
		msg += fmt.Sprintf(" Did you mean 'cat %s'?", f)
	}
	return errorOutput(msg)
}

func (in *Interpreter) firstFile() string {
	if names := in.catalog.FileNames(); len(names) > 0 {
		return names[0]
	}
	return ""
}
