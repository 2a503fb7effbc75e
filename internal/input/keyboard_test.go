package input

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/obvos/obvos/internal/app"
	"github.com/obvos/obvos/internal/catalog"
	"github.com/obvos/obvos/internal/config"
)

type idleSampler struct{}

func (idleSampler) Sample() (float64, float64, error) { return 10, 50, nil }

var testNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

// newTestDesktop returns a booted 120x40 desktop with ObvTerm open and focused.
// ObvTerm sits at left 24, top 10, 72x18.
func newTestDesktop(t *testing.T) *app.Desktop {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Desktop.BootDuration = "0s"
	d := app.NewDesktop(app.Options{
		Config:  cfg,
		Width:   120,
		Height:  40,
		Sampler: idleSampler{},
		Now:     func() time.Time { return testNow },
	})
	d.Resize(120, 40)
	if got := d.Manager().Focused(); got != catalog.TerminalID {
		t.Fatalf("focused after startup = %q, want %q", got, catalog.TerminalID)
	}
	return d
}

func press(d *app.Desktop, msgs ...tea.KeyPressMsg) {
	for _, m := range msgs {
		HandleInput(m, d)
	}
}

func typeText(d *app.Desktop, s string) {
	for _, r := range s {
		press(d, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

var (
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyEsc   = tea.KeyPressMsg{Code: tea.KeyEscape}
	keyTab   = tea.KeyPressMsg{Code: tea.KeyTab}
	keyUp    = tea.KeyPressMsg{Code: tea.KeyUp}
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyF1    = tea.KeyPressMsg{Code: tea.KeyF1}
	keyF5    = tea.KeyPressMsg{Code: tea.KeyF5}
)

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func transcript(d *app.Desktop) string {
	var lines []string
	for _, l := range d.Terminal().Lines() {
		lines = append(lines, l.Text())
	}
	return strings.Join(lines, "\n")
}

func TestTypingGoesToTerminal(t *testing.T) {
	d := newTestDesktop(t)

	typeText(d, "whoami")
	if got := d.Terminal().Buffer(); got != "whoami" {
		t.Fatalf("buffer = %q, want %q", got, "whoami")
	}
	press(d, keyEnter)

	out := transcript(d)
	if !strings.Contains(out, "user@obvOS:~$ whoami") {
		t.Errorf("transcript missing prompt echo:\n%s", out)
	}
	if !strings.Contains(out, "User: ObvOS User") {
		t.Errorf("transcript missing whoami output:\n%s", out)
	}
	if d.Terminal().Buffer() != "" {
		t.Errorf("buffer not cleared after submit")
	}
}

func TestTerminalKeys(t *testing.T) {
	d := newTestDesktop(t)

	typeText(d, "op")
	press(d, keyTab)
	if got := d.Terminal().Buffer(); got != "open " {
		t.Errorf("after tab buffer = %q, want %q", got, "open ")
	}

	press(d, ctrl('u'))
	if got := d.Terminal().Buffer(); got != "" {
		t.Errorf("after ctrl+u buffer = %q", got)
	}

	typeText(d, "date")
	press(d, keyEnter, keyUp)
	if got := d.Terminal().Buffer(); got != "date" {
		t.Errorf("history recall = %q, want %q", got, "date")
	}
	press(d, keyDown)
	if got := d.Terminal().Buffer(); got != "" {
		t.Errorf("history past end = %q, want empty", got)
	}

	press(d, ctrl('l'))
	if n := len(d.Terminal().Lines()); n != 0 {
		t.Errorf("ctrl+l left %d lines", n)
	}
}

func TestOtherKeysResetCompletion(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyPressMsg
	}{
		{"unbound key", keyF5},
		{"ctrl chord", ctrl('g')},
		{"global action", tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModShift}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDesktop(t)

			typeText(d, "c")
			press(d, keyTab)
			if got := d.Terminal().Buffer(); got != "contact" {
				t.Fatalf("after tab buffer = %q, want %q", got, "contact")
			}

			press(d, tt.key)
			press(d, keyTab)
			if got := d.Terminal().Buffer(); got != "contact" {
				t.Errorf("tab after %s = %q, want %q recomputed from the buffer", tt.name, got, "contact")
			}
		})
	}
}

func TestOpenCommandFocusesNewWindow(t *testing.T) {
	d := newTestDesktop(t)

	typeText(d, "open projects")
	press(d, keyEnter)

	if got := d.Manager().Focused(); got != "projects" {
		t.Fatalf("focused = %q, want projects", got)
	}
	// Keys no longer reach the terminal
	typeText(d, "x")
	if got := d.Terminal().Buffer(); got != "" {
		t.Errorf("terminal received input while unfocused: %q", got)
	}
}

func TestGlobalWindowKeys(t *testing.T) {
	d := newTestDesktop(t)
	m := d.Manager()

	press(d, ctrl('f'))
	if w, _ := m.Window(catalog.TerminalID); !w.Maximized {
		t.Error("ctrl+f should maximize the focused window")
	}
	press(d, ctrl('f'))
	if w, _ := m.Window(catalog.TerminalID); w.Maximized {
		t.Error("second ctrl+f should restore")
	}

	press(d, tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModShift})
	if w, _ := m.Window(catalog.TerminalID); w.Left != 25 {
		t.Errorf("shift+right left = %d, want 25", w.Left)
	}

	press(d, keyEsc)
	if m.Focused() != "" || m.IsOpen(catalog.TerminalID) {
		t.Error("esc should minimize the focused window")
	}
	if len(m.Tray()) != 1 {
		t.Error("minimized window should keep its tray entry")
	}

	press(d, ctrl('t'))
	if m.Focused() != catalog.TerminalID {
		t.Error("ctrl+t should reopen the terminal")
	}

	press(d, ctrl('w'))
	if m.IsOpen(catalog.TerminalID) || len(m.Tray()) != 0 {
		t.Error("ctrl+w should close the terminal")
	}
}

func TestStartMenuKeys(t *testing.T) {
	d := newTestDesktop(t)

	press(d, ctrl('o'))
	if !d.StartMenuOpen() {
		t.Fatal("ctrl+o should open the start menu")
	}
	press(d, keyEsc)
	if d.StartMenuOpen() {
		t.Fatal("esc should close the start menu")
	}
	if !d.Manager().IsOpen(catalog.TerminalID) {
		t.Fatal("esc with the menu open must not minimize")
	}

	press(d, ctrl('o'), keyDown, keyEnter)
	if d.StartMenuOpen() {
		t.Error("activating an entry should close the menu")
	}
	if got := d.Manager().Focused(); got != "about-me" {
		t.Errorf("focused = %q, want about-me", got)
	}
}

func TestDesktopKeysWhenNothingFocused(t *testing.T) {
	d := newTestDesktop(t)
	d.Manager().Blur()

	press(d, tea.KeyPressMsg{Code: 'j', Text: "j"}, tea.KeyPressMsg{Code: 'j', Text: "j"})
	if got := d.SelectedIcon(); got != 1 {
		t.Fatalf("selected icon = %d, want 1", got)
	}
	press(d, keyEnter)
	if got := d.Manager().Focused(); got != "about-me" {
		t.Errorf("enter on icon focused %q, want about-me", got)
	}
}

func TestHelpOverlaySwallowsKeys(t *testing.T) {
	d := newTestDesktop(t)

	press(d, keyF1)
	if !d.ShowHelp {
		t.Fatal("f1 should show help")
	}
	typeText(d, "ls")
	if d.Terminal().Buffer() != "" {
		t.Error("keys leaked to the terminal under the help overlay")
	}
	press(d, keyEsc)
	if d.ShowHelp {
		t.Error("esc should close help")
	}
	if !d.Manager().IsOpen(catalog.TerminalID) {
		t.Error("esc closing help must not minimize")
	}
}

func TestKeySkipsBoot(t *testing.T) {
	cfg := config.DefaultConfig()
	d := app.NewDesktop(app.Options{Config: cfg, Sampler: idleSampler{}, Now: func() time.Time { return testNow }})
	d.Resize(120, 40)
	if !d.Booting() {
		t.Fatal("desktop should start on the boot splash")
	}
	if d.Manager().IsOpen(catalog.TerminalID) {
		t.Fatal("windows opened before boot finished")
	}

	typeText(d, "x")
	if d.Booting() {
		t.Error("a key should skip the boot splash")
	}
	if d.Terminal().Buffer() != "" {
		t.Error("the skipping key should not be typed")
	}
	if !d.Manager().IsOpen(catalog.TerminalID) {
		t.Error("terminal should open after boot")
	}
}

func TestPasteIntoTerminal(t *testing.T) {
	d := newTestDesktop(t)

	HandleInput(tea.PasteMsg{Content: "cat\nReading.txt"}, d)
	if got := d.Terminal().Buffer(); got != "cat Reading.txt" {
		t.Errorf("buffer = %q, want %q", got, "cat Reading.txt")
	}
}

func TestPrintable(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyPressMsg
		want string
	}{
		{"letter", tea.KeyPressMsg{Code: 'a', Text: "a"}, "a"},
		{"shifted", tea.KeyPressMsg{Code: 'a', Text: "A", Mod: tea.ModShift}, "A"},
		{"space", tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}, " "},
		{"ctrl", tea.KeyPressMsg{Code: 'a', Mod: tea.ModCtrl}, ""},
		{"alt", tea.KeyPressMsg{Code: 'a', Text: "a", Mod: tea.ModAlt}, ""},
		{"enter", keyEnter, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := printable(tt.msg); got != tt.want {
				t.Errorf("printable() = %q, want %q", got, tt.want)
			}
		})
	}
}
