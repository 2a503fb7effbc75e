package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/obvos/obvos/internal/catalog"
	"github.com/obvos/obvos/internal/config"
	"github.com/obvos/obvos/internal/pool"
	"github.com/obvos/obvos/internal/shell"
	"github.com/obvos/obvos/internal/theme"
	"github.com/obvos/obvos/internal/wm"
)

// Layer depths. Windows stack from ZIndexWindows upward in focus order.
const (
	ZIndexWallpaper = 0
	ZIndexIcons     = 1
	ZIndexWindows   = 10
	ZIndexTaskbar   = 1000
	ZIndexMenu      = 1001
	ZIndexNotice    = 1002
	ZIndexOverlay   = 1003
	ZIndexBoot      = 2000
)

const (
	bootBarWidth = 30
	statusSep    = " │ "
)

// View returns the rendered desktop.
func (d *Desktop) View() tea.View {
	view := tea.NewView(d.Render())
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.WindowTitle = "ObvOS"
	return view
}

// Render draws the whole screen.
func (d *Desktop) Render() string {
	layers := pool.GetLayerSlice()
	defer pool.PutLayerSlice(layers)
	*layers = d.appendLayers(*layers)

	canvas := lipgloss.NewCanvas(d.width, d.height)
	for _, layer := range *layers {
		canvas.Compose(layer)
	}
	return canvas.Render()
}

// appendLayers appends the screen layers to layers, bottom first.
func (d *Desktop) appendLayers(layers []*lipgloss.Layer) []*lipgloss.Layer {
	if d.Booting() {
		return append(layers, lipgloss.NewLayer(d.renderBoot()).X(0).Y(0).Z(ZIndexBoot).ID("boot"))
	}

	layers = append(layers, lipgloss.NewLayer(d.renderWallpaper()).X(0).Y(0).Z(ZIndexWallpaper).ID("wallpaper"))

	if d.appearance.ShowIcons {
		for i := range d.launchers {
			r := d.IconRect(i)
			layers = append(layers, lipgloss.NewLayer(d.renderIcon(i)).X(r.X).Y(r.Y).Z(ZIndexIcons))
		}
	}

	focused := d.manager.Focused()
	for i, w := range d.manager.Windows() {
		layers = append(layers, lipgloss.NewLayer(d.renderWindow(w, w.ID == focused)).
			X(w.Left).Y(w.Top).Z(ZIndexWindows+i).ID(w.ID))
	}

	layers = append(layers, lipgloss.NewLayer(d.renderTaskbar()).X(0).Y(d.TaskbarY()).Z(ZIndexTaskbar).ID("taskbar"))

	if d.menuOpen {
		r := d.MenuRect()
		layers = append(layers, lipgloss.NewLayer(d.renderMenu()).X(r.X).Y(r.Y).Z(ZIndexMenu).ID("menu"))
	}

	if notice := d.Notice(); notice != "" {
		box := d.renderNotice(notice)
		x := max(d.width-lipgloss.Width(box), 0)
		y := max(d.TaskbarY()-lipgloss.Height(box), 0)
		layers = append(layers, lipgloss.NewLayer(box).X(x).Y(y).Z(ZIndexNotice).ID("notice"))
	}

	var overlay string
	switch {
	case d.ShowHelp:
		overlay = d.renderHelp()
	case d.ShowLogs:
		overlay = d.renderLogs()
	}
	if overlay != "" {
		x := max((d.width-lipgloss.Width(overlay))/2, 0)
		y := max((d.TaskbarY()-lipgloss.Height(overlay))/2, 0)
		layers = append(layers, lipgloss.NewLayer(overlay).X(x).Y(y).Z(ZIndexOverlay).ID("overlay"))
	}

	return layers
}

// getBorder returns the configured window border.
func (d *Desktop) getBorder() lipgloss.Border {
	switch d.appearance.BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

func (d *Desktop) renderWallpaper() string {
	glyph := d.appearance.Wallpaper
	if ansi.StringWidth(glyph) != 1 {
		glyph = " "
	}
	style := lipgloss.NewStyle().Background(theme.DesktopBg()).Foreground(theme.WallpaperFg())
	row := style.Render(strings.Repeat(glyph, d.width))
	rows := make([]string, d.TaskbarY())
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func (d *Desktop) renderIcon(i int) string {
	style := lipgloss.NewStyle().Background(theme.DesktopBg()).Foreground(theme.IconFg())
	if i == d.iconIndex {
		bg, fg := theme.IconSelected()
		style = style.Background(bg).Foreground(fg)
	}
	return style.Render(d.iconLabel(i))
}

// renderWindow draws a window: title bar on the first row, then the bordered body.
func (d *Desktop) renderWindow(w wm.Window, focused bool) string {
	bodyWidth := max(w.Width-2, 1)
	bodyHeight := max(w.Height-2, 1)

	bg, fg := theme.WindowBody()
	if w.ID == catalog.TerminalID {
		bg, fg = theme.TerminalBg(), theme.TerminalFg()
	}
	base := lipgloss.NewStyle().Background(bg).Foreground(fg)

	var lines []string
	if w.ID == catalog.TerminalID {
		lines = d.terminalLines(bodyWidth, bodyHeight, base, focused)
	} else {
		lines = d.appLines(w.ID, bodyWidth, base)
	}
	lines = fitLines(lines, bodyWidth, bodyHeight, base)

	borderColor := theme.BorderUnfocused()
	if focused {
		borderColor = theme.BorderFocused()
	}
	body := lipgloss.NewStyle().
		Border(d.getBorder()).
		BorderTop(false).
		BorderForeground(borderColor).
		BorderBackground(bg).
		Render(strings.Join(lines, "\n"))

	return d.renderTitleBar(w, focused) + "\n" + body
}

// renderTitleBar draws " Title ... _ □ × " across the window width.
func (d *Desktop) renderTitleBar(w wm.Window, focused bool) string {
	bg, fg := theme.TitleBarUnfocused()
	if focused {
		bg, fg = theme.TitleBarFocused()
	}
	style := lipgloss.NewStyle().Background(bg).Foreground(fg)

	const chrome = 7 // leading space, three buttons with separators, trailing space
	if w.Width < chrome+1 {
		title := ansi.Truncate(" "+w.Title, max(w.Width, 0), "")
		return style.Render(title + strings.Repeat(" ", max(w.Width-ansi.StringWidth(title), 0)))
	}

	title := ansi.Truncate(w.Title, w.Width-chrome-1, "…")
	pad := w.Width - chrome - ansi.StringWidth(title)
	btns := d.titleButtons()

	var b strings.Builder
	b.WriteString(style.Bold(true).Render(" " + title))
	b.WriteString(style.Render(strings.Repeat(" ", pad)))
	b.WriteString(style.Foreground(theme.TitleButton()).Render(btns[0] + " " + btns[1] + " "))
	b.WriteString(style.Foreground(theme.TitleButtonClose()).Bold(true).Render(btns[2]))
	b.WriteString(style.Render(" "))
	return b.String()
}

func (d *Desktop) appLines(id string, width int, base lipgloss.Style) []string {
	a, ok := d.catalog.App(id)
	if !ok {
		return nil
	}
	var lines []string
	for _, l := range strings.Split(a.Body, "\n") {
		lines = append(lines, wrapLine(base.Render(l), width)...)
	}
	return lines
}

// terminalLines renders the transcript and the input line, honoring the scroll offset.
func (d *Desktop) terminalLines(width, height int, base lipgloss.Style, focused bool) []string {
	var lines []string
	for _, l := range d.terminal.Lines() {
		lines = append(lines, wrapLine(renderLine(l, base), width)...)
	}
	lines = append(lines, wrapLine(d.renderInput(base, focused), width)...)

	end := len(lines) - d.scroll
	end = max(end, min(height, len(lines)))
	start := max(end-height, 0)
	return lines[start:end]
}

// renderLine styles a transcript line span by span.
func renderLine(l shell.Line, base lipgloss.Style) string {
	b := pool.GetStringBuilder()
	defer pool.PutStringBuilder(b)
	for _, s := range l.Spans {
		style := base
		switch {
		case l.Kind == shell.KindError:
			style = style.Foreground(theme.TerminalError())
		case s.Class == shell.ClassPrompt:
			style = style.Foreground(theme.TerminalPrompt()).Bold(true)
		case s.Class == shell.ClassDir:
			style = style.Foreground(theme.TokenDir()).Bold(true)
		case s.Class == shell.ClassFile:
			style = style.Foreground(theme.TokenFile())
		case s.Class == shell.ClassSep:
			style = style.Foreground(theme.TokenSep())
		case s.Class == shell.ClassLink:
			style = style.Foreground(theme.Link()).Underline(true)
		case l.Kind == shell.KindOK:
			style = style.Foreground(theme.TerminalOK())
		}
		text := style.Render(s.Text)
		if s.Href != "" {
			text = ansi.SetHyperlink(s.Href) + text + ansi.ResetHyperlink()
		}
		b.WriteString(text)
	}
	return b.String()
}

// renderInput draws the prompt and the input buffer with a block caret.
func (d *Desktop) renderInput(base lipgloss.Style, focused bool) string {
	buf := []rune(d.terminal.Buffer())
	caret := min(d.terminal.Caret(), len(buf))

	var b strings.Builder
	b.WriteString(base.Foreground(theme.TerminalPrompt()).Bold(true).Render(d.terminal.Prompt()))
	b.WriteString(base.Render(string(buf[:caret])))
	under := " "
	rest := ""
	if caret < len(buf) {
		under = string(buf[caret])
		rest = string(buf[caret+1:])
	}
	if focused {
		b.WriteString(base.Background(theme.TerminalCursor()).Foreground(theme.TerminalBg()).Render(under))
	} else {
		b.WriteString(base.Render(under))
	}
	b.WriteString(base.Render(rest))
	return b.String()
}

// wrapLine wraps a styled line to width cells.
func wrapLine(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}

// fitLines pads or cuts lines to exactly width x height cells.
func fitLines(lines []string, width, height int, base lipgloss.Style) []string {
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = ansi.Truncate(lines[i], width, "")
		}
		if pad := width - ansi.StringWidth(line); pad > 0 {
			line += base.Render(strings.Repeat(" ", pad))
		}
		out[i] = line
	}
	return out
}

// statusParts returns the right side of the taskbar: gauge and clock.
func (d *Desktop) statusParts() (gauge, clock string) {
	if d.appearance.ShowSysInfo {
		gauge = d.sysinfo.Gauge()
	}
	if d.appearance.ShowClock {
		clock = d.clock.Now()
	}
	return gauge, clock
}

// statusText is the unstyled taskbar status area.
func (d *Desktop) statusText() string {
	gauge, clock := d.statusParts()
	switch {
	case gauge != "" && clock != "":
		return gauge + statusSep + clock + " "
	case gauge != "":
		return gauge + " "
	case clock != "":
		return clock + " "
	}
	return ""
}

func (d *Desktop) renderTaskbar() string {
	bar := lipgloss.NewStyle().Background(theme.TaskbarBg()).Foreground(theme.TaskbarFg())

	b := pool.GetStringBuilder()
	defer pool.PutStringBuilder(b)
	sbg, sfg := theme.StartButton()
	start := lipgloss.NewStyle().Background(sbg).Foreground(sfg).Bold(true)
	if d.menuOpen {
		start = start.Reverse(true)
	}
	b.WriteString(start.Render(d.startLabel()))
	x := d.StartButton().Width

	for _, s := range d.TraySlots() {
		b.WriteString(bar.Render(strings.Repeat(" ", s.Rect.X-x)))
		ebg, efg := theme.TrayEntry()
		if s.Focused {
			ebg, efg = theme.TrayEntryFocused()
		}
		b.WriteString(lipgloss.NewStyle().Background(ebg).Foreground(efg).Render(s.Label))
		x = s.Rect.X + s.Rect.Width
	}

	status := d.statusText()
	b.WriteString(bar.Render(strings.Repeat(" ", max(d.width-x-ansi.StringWidth(status), 0))))
	gauge, clock := d.statusParts()
	if gauge != "" {
		b.WriteString(bar.Foreground(theme.GaugeFg()).Render(gauge))
		if clock != "" {
			b.WriteString(bar.Render(statusSep))
		}
	}
	if clock != "" {
		b.WriteString(bar.Render(clock))
	}
	if status != "" {
		b.WriteString(bar.Render(" "))
	}
	return ansi.Truncate(b.String(), d.width, "")
}

func (d *Desktop) renderMenu() string {
	r := d.MenuRect()
	inner := r.Width - 2
	base := lipgloss.NewStyle().Background(theme.MenuBg()).Foreground(theme.MenuFg())
	pad := func(s string) string {
		return s + strings.Repeat(" ", max(inner-ansi.StringWidth(s), 0))
	}

	rows := []string{base.Foreground(theme.MenuHeader()).Bold(true).Render(pad(" ObvOS"))}
	apps := d.appLauncherCount()
	for i, l := range d.launchers {
		if i == apps && d.menuSeparator() {
			rows = append(rows, base.Foreground(theme.TokenSep()).Render(strings.Repeat("─", inner)))
		}
		glyph := "▣"
		if l.IsShortcut() {
			glyph = "↗"
		}
		style := base
		if i == d.menuIndex {
			bg, fg := theme.MenuSelected()
			style = style.Background(bg).Foreground(fg)
		}
		rows = append(rows, style.Render(pad(" "+glyph+" "+l.Label)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.BorderFocused()).
		BorderBackground(theme.MenuBg()).
		Render(strings.Join(rows, "\n"))
}

func (d *Desktop) renderNotice(notice string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderFocused()).
		Padding(0, 1).
		Render(ansi.Truncate(notice, max(d.width-4, 1), "…"))
}

func (d *Desktop) renderBoot() string {
	progress := d.BootProgress()
	filled := int(progress * bootBarWidth)

	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.BootTitle()).Bold(true).Render("O b v O S"),
		"",
		lipgloss.NewStyle().Foreground(theme.BootText()).Render("Starting ObvOS..."),
		"",
		lipgloss.NewStyle().Foreground(theme.BootBar()).Render(strings.Repeat("█", filled))+
			lipgloss.NewStyle().Foreground(theme.HelpGray()).Render(strings.Repeat("░", bootBarWidth-filled)),
		"",
		lipgloss.NewStyle().Foreground(theme.HelpGray()).Render("press any key to skip"),
	)
	return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, content)
}

// renderHelp draws the keybinding overlay from the active registry.
func (d *Desktop) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(theme.HelpTitle()).Bold(true)
	badge := lipgloss.NewStyle().Foreground(theme.HelpKeyBadge()).Bold(true)
	gray := lipgloss.NewStyle().Foreground(theme.HelpGray())

	keyWidth := 0
	sections := config.GetKeybindings(d.registry)
	for _, s := range sections {
		for _, kb := range s.Bindings {
			keyWidth = max(keyWidth, ansi.StringWidth(kb.Key))
		}
	}

	var rows []string
	for i, s := range sections {
		if i > 0 {
			rows = append(rows, "")
		}
		rows = append(rows, title.Render(s.Title))
		for _, kb := range s.Bindings {
			key := kb.Key + strings.Repeat(" ", keyWidth-ansi.StringWidth(kb.Key))
			rows = append(rows, "  "+badge.Render(key)+"  "+kb.Description)
		}
	}
	rows = clipRows(rows, d.TaskbarY()-4)
	rows = append(rows, "", gray.Render("F1 or Esc to close"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(0, 2).
		Render(strings.Join(rows, "\n"))
}

// renderLogs draws the most recent log messages that fit on screen.
func (d *Desktop) renderLogs() string {
	levelStyle := map[string]lipgloss.Style{
		"ERROR": lipgloss.NewStyle().Foreground(theme.LogViewerError()),
		"WARN":  lipgloss.NewStyle().Foreground(theme.LogViewerWarn()),
		"INFO":  lipgloss.NewStyle().Foreground(theme.LogViewerInfo()),
		"DEBUG": lipgloss.NewStyle().Foreground(theme.LogViewerDebug()),
	}
	width := max(min(d.width-6, 100), 20)

	rows := []string{lipgloss.NewStyle().Foreground(theme.LogViewerTitle()).Bold(true).Render("Logs"), ""}
	capacity := max(d.TaskbarY()-6, 1)
	logs := d.logs[max(len(d.logs)-capacity, 0):]
	for _, l := range logs {
		level := levelStyle[l.Level].Render(l.Level)
		line := l.Time.Format("15:04:05") + " " + level + " " + l.Message
		rows = append(rows, ansi.Truncate(line, width, "…"))
	}
	if len(logs) == 0 {
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.HelpGray()).Render("no messages"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.LogViewerTitle()).
		Background(theme.LogViewerBg()).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}

func clipRows(rows []string, limit int) []string {
	if limit <= 0 || len(rows) <= limit {
		return rows
	}
	return append(rows[:limit-1:limit-1], "…")
}
