// Package theme provides the desktop color palette, backed by bubbletint themes.
package theme

import (
	"fmt"
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var (
	mu      sync.RWMutex
	enabled bool
	active  string
)

// Initialize sets up the theme registry with the specified theme name.
// If themeName is empty, theming is disabled and the built-in palette is used.
// It may be called again to switch themes while running.
func Initialize(themeName string) error {
	mu.Lock()
	defer mu.Unlock()

	if themeName == "" {
		enabled = false
		active = ""
		return nil
	}

	tint.NewDefaultRegistry()
	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		enabled = true
		active = "default"
		return fmt.Errorf("unknown theme %q, using default", themeName)
	}
	enabled = true
	active = themeName
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Name returns the active theme id, or "" when theming is disabled.
func Name() string {
	mu.RLock()
	defer mu.RUnlock()
	return active
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return nil
	}
	return tint.Current()
}

// pick returns the themed color, or fallback when theming is disabled.
func pick(fallback string, themed func(t *tint.Tint) color.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	return themed(t)
}

// Desktop background
func DesktopBg() color.Color {
	return pick("#008080", func(t *tint.Tint) color.Color { return t.Bg })
}

func WallpaperFg() color.Color {
	return pick("#006868", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// Window chrome
func BorderFocused() color.Color {
	return pick("#AFFFFF", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

func BorderUnfocused() color.Color {
	return pick("#808080", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

func TitleBarFocused() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000080"), lipgloss.Color("#ffffff")
	}
	return t.Blue, t.BrightWhite
}

func TitleBarUnfocused() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#808080"), lipgloss.Color("#c0c0c0")
	}
	return t.BrightBlack, t.White
}

func WindowBody() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#c0c0c0"), lipgloss.Color("#000000")
	}
	return t.Black, t.Fg
}

func TitleButton() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

func TitleButtonClose() color.Color {
	return pick("#ff5555", func(t *tint.Tint) color.Color { return t.BrightRed })
}

// Terminal colors
func TerminalBg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Bg })
}

func TerminalFg() color.Color {
	return pick("#e5e5e5", func(t *tint.Tint) color.Color { return t.Fg })
}

func TerminalPrompt() color.Color {
	return pick("#00ff00", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

func TerminalError() color.Color {
	return pick("#ff5555", func(t *tint.Tint) color.Color { return t.Red })
}

func TerminalOK() color.Color {
	return pick("#e5e5e5", func(t *tint.Tint) color.Color { return t.Fg })
}

func TerminalCursor() color.Color {
	return pick("#00ff00", func(t *tint.Tint) color.Color { return t.Cursor })
}

func TokenDir() color.Color {
	return pick("#5c5cff", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

func TokenFile() color.Color {
	return pick("#ffff00", func(t *tint.Tint) color.Color { return t.Yellow })
}

func TokenSep() color.Color {
	return pick("#7f7f7f", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

func Link() color.Color {
	return pick("#00ffff", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

func CompletionHint() color.Color {
	return pick("#7f7f7f", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// Taskbar colors
func TaskbarBg() color.Color {
	return pick("#c0c0c0", func(t *tint.Tint) color.Color { return t.Black })
}

func TaskbarFg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Fg })
}

func StartButton() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#008000"), lipgloss.Color("#ffffff")
	}
	return t.Green, t.Black
}

func TrayEntry() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#a0a0a0"), lipgloss.Color("#000000")
	}
	return t.BrightBlack, t.Fg
}

func TrayEntryFocused() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000080"), lipgloss.Color("#ffffff")
	}
	return t.Blue, t.BrightWhite
}

func GaugeFg() color.Color {
	return pick("#006400", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

// Start menu colors
func MenuBg() color.Color {
	return pick("#c0c0c0", func(t *tint.Tint) color.Color { return t.Black })
}

func MenuFg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Fg })
}

func MenuSelected() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000080"), lipgloss.Color("#ffffff")
	}
	return t.Blue, t.BrightWhite
}

func MenuHeader() color.Color {
	return pick("#000080", func(t *tint.Tint) color.Color { return t.Purple })
}

// Desktop icon colors
func IconFg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

func IconSelected() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000080"), lipgloss.Color("#ffffff")
	}
	return t.Blue, t.BrightWhite
}

// Boot splash colors
func BootTitle() color.Color {
	return pick("#55ffff", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

func BootText() color.Color {
	return pick("#c0c0c0", func(t *tint.Tint) color.Color { return t.White })
}

func BootBar() color.Color {
	return pick("#00ff00", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

// Log viewer colors
func LogViewerTitle() color.Color {
	return lipgloss.Color("14")
}

func LogViewerError() color.Color {
	return lipgloss.Color("9")
}

func LogViewerWarn() color.Color {
	return lipgloss.Color("11")
}

func LogViewerInfo() color.Color {
	return lipgloss.Color("10")
}

func LogViewerDebug() color.Color {
	return lipgloss.Color("12")
}

func LogViewerBg() color.Color {
	return lipgloss.Color("#1a1a2a")
}

// Help overlay colors
func HelpKeyBadge() color.Color {
	return lipgloss.Color("5")
}

func HelpGray() color.Color {
	return lipgloss.Color("8")
}

func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

func HelpTitle() color.Color {
	return lipgloss.Color("12")
}

// CLI table colors
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
	return fmt.Sprintf("#%02x%02x%02x", r8, g8, b8)
}
