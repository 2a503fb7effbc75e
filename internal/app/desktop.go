// Package app provides the ObvOS desktop: the bubbletea model that ties the
// window manager, the terminal session, the taskbar and the start menu together.
package app

import (
	"io"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/google/uuid"

	"github.com/obvos/obvos/internal/catalog"
	"github.com/obvos/obvos/internal/config"
	"github.com/obvos/obvos/internal/shell"
	"github.com/obvos/obvos/internal/theme"
	"github.com/obvos/obvos/internal/wm"
)

// TaskbarHeight is the number of rows reserved at the bottom of the screen.
const TaskbarHeight = 1

// Default screen size used until the first WindowSizeMsg arrives.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// NotificationDuration is how long a taskbar notification stays visible.
const NotificationDuration = 4 * time.Second

// DoubleClickInterval is the maximum gap between two clicks of a double-click.
const DoubleClickInterval = 400 * time.Millisecond

// Launcher is a start menu entry or desktop icon: either an app or a shortcut.
type Launcher struct {
	Label string
	AppID string
	URL   string
}

// IsShortcut reports whether the launcher points at an external location.
func (l Launcher) IsShortcut() bool { return l.AppID == "" }

// Options configures a Desktop.
type Options struct {
	Config  *config.UserConfig
	Catalog *catalog.Catalog
	Width   int
	Height  int
	Logger  *log.Logger
	Sampler Sampler
	Now     func() time.Time
}

type click struct {
	target string
	at     time.Time
}

// Desktop represents the state of one ObvOS desktop.
// All mutation happens on the bubbletea update loop.
type Desktop struct {
	// ShowHelp toggles the keybinding overlay.
	ShowHelp bool
	// ShowLogs toggles the log overlay.
	ShowLogs bool

	id         string
	cfg        *config.UserConfig
	appearance config.AppearanceConfig
	catalog    *catalog.Catalog
	registry   *config.KeybindRegistry
	manager    *wm.Manager
	drag       wm.DragSession
	terminal   *shell.Session
	clock      *Clock
	sampler    Sampler
	sysinfo    SysInfo
	launchers  []Launcher
	width      int
	height     int
	now        func() time.Time

	booted      bool
	bootStart   time.Time
	bootDelay   time.Duration
	started     bool
	sized       bool
	menuOpen    bool
	menuIndex   int
	iconIndex   int
	scroll      int
	lastClick   click
	notice      string
	noticeUntil time.Time

	logs []LogMessage
	log  *log.Logger
}

// NewDesktop creates a desktop from the configuration and catalog.
func NewDesktop(opts Options) *Desktop {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	sampler := opts.Sampler
	if sampler == nil {
		sampler = hostSampler{}
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}

	id := uuid.NewString()
	base := opts.Logger
	if base == nil {
		base = log.New(io.Discard)
	}
	logger := base.WithPrefix("desktop " + id[:8])

	d := &Desktop{
		id:        id,
		cfg:       cfg,
		catalog:   cat,
		registry:  config.NewKeybindRegistry(cfg),
		clock:     NewClock(cfg),
		sampler:   sampler,
		width:     width,
		height:    height,
		now:       now,
		bootStart: now(),
		bootDelay: cfg.BootDelay(),
		iconIndex: -1,
		log:       logger,
	}
	d.clock.now = now
	d.applyAppearance(cfg.Appearance)

	d.manager = wm.NewManager(wm.Options{
		Width:         width,
		Height:        max(height-TaskbarHeight, 0),
		CascadeOffset: cfg.Desktop.CascadeOffset,
		EdgeInset:     cfg.Desktop.EdgeInset,
		Logger:        logger.WithPrefix("wm"),
	})
	for _, a := range cat.Apps() {
		d.manager.Declare(a.ID, a.Title, a.Width, a.Height)
		d.launchers = append(d.launchers, Launcher{Label: a.Title, AppID: a.ID})
	}
	for _, s := range cat.Shortcuts() {
		d.launchers = append(d.launchers, Launcher{Label: s.Label, URL: s.URL})
	}

	d.terminal = shell.NewSession(shell.Options{
		Catalog:  cat,
		Manager:  d.manager,
		Clock:    d.clock,
		Profile:  cfg.Profile,
		Prompt:   cfg.Desktop.Prompt,
		Banner:   shell.DefaultBanner(d.clock.Time()),
		MaxLines: cfg.Desktop.ScrollbackLines,
		Logger:   logger.WithPrefix("shell"),
	})

	for _, bad := range d.registry.Invalid() {
		d.LogWarn("ignoring invalid key binding: %s", bad)
	}
	if d.bootDelay == 0 {
		d.booted = true
	}
	d.LogInfo("desktop %s created (%dx%d)", id, width, height)
	return d
}

// ID returns the unique desktop identifier.
func (d *Desktop) ID() string { return d.id }

// Manager returns the window manager.
func (d *Desktop) Manager() *wm.Manager { return d.manager }

// Terminal returns the ObvTerm session.
func (d *Desktop) Terminal() *shell.Session { return d.terminal }

// Registry returns the active keybinding registry.
func (d *Desktop) Registry() *config.KeybindRegistry { return d.registry }

// Drag returns the pointer drag state.
func (d *Desktop) Drag() *wm.DragSession { return &d.drag }

// Clock returns the desktop clock.
func (d *Desktop) Clock() *Clock { return d.clock }

// SysInfo returns the taskbar gauge state.
func (d *Desktop) SysInfo() *SysInfo { return &d.sysinfo }

// Launchers returns the start menu entries, apps first then shortcuts.
func (d *Desktop) Launchers() []Launcher { return d.launchers }

// Size returns the screen size in cells.
func (d *Desktop) Size() (width, height int) { return d.width, d.height }

// Resize adapts the desktop to a new screen size.
func (d *Desktop) Resize(width, height int) {
	d.width, d.height = width, height
	d.manager.Resize(width, max(height-TaskbarHeight, 0))
	d.sized = true
	d.startup()
}

// Booting reports whether the boot splash is showing.
func (d *Desktop) Booting() bool { return !d.booted }

// BootProgress returns the splash progress in [0,1].
func (d *Desktop) BootProgress() float64 {
	if d.booted || d.bootDelay <= 0 {
		return 1
	}
	p := float64(d.now().Sub(d.bootStart)) / float64(d.bootDelay)
	return min(max(p, 0), 1)
}

// SkipBoot ends the boot splash.
func (d *Desktop) SkipBoot() {
	if d.booted {
		return
	}
	d.booted = true
	d.LogInfo("boot finished")
	d.startup()
}

// startup opens the configured windows once the desktop is booted and sized.
func (d *Desktop) startup() {
	if d.started || !d.booted || !d.sized {
		return
	}
	d.started = true
	for _, id := range d.cfg.Desktop.OpenOnStart {
		if resolved, ok := d.catalog.Resolve(id); ok {
			d.manager.Open(resolved)
		} else {
			d.LogWarn("open_on_start: unknown app %q", id)
		}
	}
}

// OpenApp opens and focuses a window and closes the start menu.
func (d *Desktop) OpenApp(id string) {
	d.menuOpen = false
	d.manager.Open(id)
	d.LogInfo("open %s", id)
}

// Activate opens an app launcher or hands a shortcut's URL to the host terminal.
func (d *Desktop) Activate(l Launcher) tea.Cmd {
	if !l.IsShortcut() {
		d.OpenApp(l.AppID)
		return nil
	}
	d.menuOpen = false
	d.Notify("Link copied: " + l.URL)
	d.LogInfo("shortcut %s -> %s", l.Label, l.URL)
	return tea.SetClipboard(l.URL)
}

// StartMenuOpen reports whether the start menu is visible.
func (d *Desktop) StartMenuOpen() bool { return d.menuOpen }

// ToggleStartMenu shows or hides the start menu.
func (d *Desktop) ToggleStartMenu() {
	d.menuOpen = !d.menuOpen
	if d.menuOpen {
		d.menuIndex = 0
	}
}

// CloseStartMenu hides the start menu.
func (d *Desktop) CloseStartMenu() { d.menuOpen = false }

// MenuIndex returns the highlighted start menu entry.
func (d *Desktop) MenuIndex() int { return d.menuIndex }

// MoveMenuSelection moves the start menu highlight, wrapping around.
func (d *Desktop) MoveMenuSelection(delta int) {
	d.menuIndex = wrap(d.menuIndex+delta, len(d.launchers))
}

// ActivateMenu runs the highlighted start menu entry.
func (d *Desktop) ActivateMenu(i int) tea.Cmd {
	if i < 0 || i >= len(d.launchers) {
		return nil
	}
	d.menuIndex = i
	return d.Activate(d.launchers[i])
}

// SelectedIcon returns the selected desktop icon, or -1.
func (d *Desktop) SelectedIcon() int { return d.iconIndex }

// SelectIcon selects a desktop icon; -1 clears the selection.
func (d *Desktop) SelectIcon(i int) {
	if i < -1 || i >= len(d.launchers) {
		return
	}
	d.iconIndex = i
}

// MoveIconSelection moves the icon selection, wrapping around.
func (d *Desktop) MoveIconSelection(delta int) {
	if d.iconIndex < 0 {
		if delta < 0 {
			d.iconIndex = len(d.launchers) - 1
		} else {
			d.iconIndex = 0
		}
		return
	}
	d.iconIndex = wrap(d.iconIndex+delta, len(d.launchers))
}

// ActivateIcon opens the selected desktop icon.
func (d *Desktop) ActivateIcon() tea.Cmd {
	if d.iconIndex < 0 || d.iconIndex >= len(d.launchers) {
		return nil
	}
	return d.Activate(d.launchers[d.iconIndex])
}

// TerminalFocused reports whether keyboard input goes to ObvTerm.
func (d *Desktop) TerminalFocused() bool {
	return d.manager.Focused() == catalog.TerminalID
}

// Scroll returns how many lines the terminal view is scrolled back.
func (d *Desktop) Scroll() int { return d.scroll }

// ScrollTerminal scrolls the terminal view; positive values go back in time.
func (d *Desktop) ScrollTerminal(delta int) {
	d.scroll = min(max(d.scroll+delta, 0), len(d.terminal.Lines()))
}

// ResetScroll returns the terminal view to the input line.
func (d *Desktop) ResetScroll() { d.scroll = 0 }

// DoubleClick records a click on target and reports whether it completes a double-click.
func (d *Desktop) DoubleClick(target string) bool {
	now := d.now()
	double := d.lastClick.target == target && now.Sub(d.lastClick.at) <= DoubleClickInterval
	if double {
		d.lastClick = click{}
	} else {
		d.lastClick = click{target: target, at: now}
	}
	return double
}

// Notify shows a short message in the taskbar.
func (d *Desktop) Notify(message string) {
	d.notice = message
	d.noticeUntil = d.now().Add(NotificationDuration)
}

// Notice returns the current notification, if it has not expired.
func (d *Desktop) Notice() string {
	if d.notice == "" || d.now().After(d.noticeUntil) {
		return ""
	}
	return d.notice
}

// ApplyConfig applies a reloaded configuration: appearance and key bindings.
// Catalog and window geometry changes take effect on the next start.
func (d *Desktop) ApplyConfig(cfg *config.UserConfig) {
	if cfg == nil {
		return
	}
	d.cfg.Appearance = cfg.Appearance
	d.cfg.Keybindings = cfg.Keybindings
	d.applyAppearance(cfg.Appearance)
	d.registry = config.NewKeybindRegistry(d.cfg)
	for _, bad := range d.registry.Invalid() {
		d.LogWarn("ignoring invalid key binding: %s", bad)
	}
	d.LogInfo("configuration reloaded")
}

func (d *Desktop) applyAppearance(a config.AppearanceConfig) {
	d.appearance = a
	if err := theme.Initialize(a.Theme); err != nil {
		d.LogWarn("%v", err)
	}
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
