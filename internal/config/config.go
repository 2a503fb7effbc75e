// Package config loads and saves the ObvOS user configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/obvos/obvos/internal/catalog"
	"github.com/obvos/obvos/internal/shell"
)

// Frame rates used by the program loop.
const (
	NormalFPS = 60
	IdleFPS   = 30
)

// UserConfig is the contents of config.toml.
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Desktop     DesktopConfig     `toml:"desktop"`
	Profile     shell.Profile     `toml:"profile"`
	Keybindings KeybindingsConfig `toml:"keybindings"`

	// Catalog overrides. Empty means the built-in set.
	Apps      []catalog.App      `toml:"apps,omitempty"`
	Shortcuts []catalog.Shortcut `toml:"shortcuts,omitempty"`
	Files     []catalog.File     `toml:"files,omitempty"`
}

// AppearanceConfig controls colors and chrome. It is reloaded while running.
type AppearanceConfig struct {
	Theme        string `toml:"theme"`
	BorderStyle  string `toml:"border_style"`
	ShowClock    bool   `toml:"show_clock"`
	ShowSysInfo  bool   `toml:"show_sysinfo"`
	ShowIcons    bool   `toml:"show_icons"`
	Wallpaper    string `toml:"wallpaper"`
	StartLabel   string `toml:"start_label"`
	TitleButtons string `toml:"title_buttons"`
}

// DesktopConfig controls window placement, the terminal and the clock.
type DesktopConfig struct {
	CascadeOffset   int      `toml:"cascade_offset"`
	EdgeInset       int      `toml:"edge_inset"`
	BootDuration    string   `toml:"boot_duration"`
	Timezone        string   `toml:"timezone"`
	ClockFormat     string   `toml:"clock_format"`
	Prompt          string   `toml:"prompt"`
	ScrollbackLines int      `toml:"scrollback_lines"`
	OpenOnStart     []string `toml:"open_on_start"`
}

// KeybindingsConfig maps action names to key strings, per scope.
type KeybindingsConfig struct {
	Global   map[string][]string `toml:"global"`
	Desktop  map[string][]string `toml:"desktop"`
	Terminal map[string][]string `toml:"terminal"`
}

// Defaults for DesktopConfig.
const (
	DefaultCascadeOffset = 2
	DefaultEdgeInset     = 1
	DefaultBootDuration  = 1500 * time.Millisecond
	DefaultTimezone      = "Asia/Kolkata"
	DefaultClockFormat   = "02/01/2006 03:04:05 PM"
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			Theme:        "",
			BorderStyle:  "rounded",
			ShowClock:    true,
			ShowSysInfo:  true,
			ShowIcons:    true,
			Wallpaper:    "░",
			StartLabel:   "Start",
			TitleButtons: "_□×",
		},
		Desktop: DesktopConfig{
			CascadeOffset:   DefaultCascadeOffset,
			EdgeInset:       DefaultEdgeInset,
			BootDuration:    DefaultBootDuration.String(),
			Timezone:        DefaultTimezone,
			ClockFormat:     DefaultClockFormat,
			Prompt:          shell.DefaultPrompt,
			ScrollbackLines: shell.DefaultMaxLines,
			OpenOnStart:     []string{catalog.TerminalID},
		},
		Profile:     shell.DefaultProfile(),
		Keybindings: defaultKeybindings(),
	}
}

// BootDelay returns how long the boot splash stays up. Invalid values fall back to the default.
func (c *UserConfig) BootDelay() time.Duration {
	d, err := time.ParseDuration(c.Desktop.BootDuration)
	if err != nil || d < 0 {
		return DefaultBootDuration
	}
	return d
}

// Location returns the clock time zone, falling back to UTC.
func (c *UserConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Desktop.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Catalog builds the application catalog, using built-ins for empty sections.
func (c *UserConfig) Catalog() (*catalog.Catalog, error) {
	apps, shortcuts, files := c.Apps, c.Shortcuts, c.Files
	if len(apps) == 0 {
		apps = catalog.DefaultApps()
	}
	if len(shortcuts) == 0 {
		shortcuts = catalog.DefaultShortcuts()
	}
	if len(files) == 0 {
		files = catalog.DefaultFiles()
	}
	cat, err := catalog.New(apps, shortcuts, files)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return cat, nil
}

// fillDefaults replaces zero values left by a partial config file.
func (c *UserConfig) fillDefaults() {
	def := DefaultConfig()
	if c.Appearance.BorderStyle == "" {
		c.Appearance.BorderStyle = def.Appearance.BorderStyle
	}
	if c.Appearance.Wallpaper == "" {
		c.Appearance.Wallpaper = def.Appearance.Wallpaper
	}
	if c.Appearance.StartLabel == "" {
		c.Appearance.StartLabel = def.Appearance.StartLabel
	}
	if len([]rune(c.Appearance.TitleButtons)) != 3 {
		c.Appearance.TitleButtons = def.Appearance.TitleButtons
	}
	if c.Desktop.CascadeOffset <= 0 {
		c.Desktop.CascadeOffset = def.Desktop.CascadeOffset
	}
	if c.Desktop.EdgeInset <= 0 {
		c.Desktop.EdgeInset = def.Desktop.EdgeInset
	}
	if c.Desktop.BootDuration == "" {
		c.Desktop.BootDuration = def.Desktop.BootDuration
	}
	if c.Desktop.Timezone == "" {
		c.Desktop.Timezone = def.Desktop.Timezone
	}
	if c.Desktop.ClockFormat == "" {
		c.Desktop.ClockFormat = def.Desktop.ClockFormat
	}
	if c.Desktop.Prompt == "" {
		c.Desktop.Prompt = def.Desktop.Prompt
	}
	if c.Desktop.ScrollbackLines < 100 {
		c.Desktop.ScrollbackLines = def.Desktop.ScrollbackLines
	}
	c.Keybindings.Global = mergeBindings(c.Keybindings.Global, def.Keybindings.Global)
	c.Keybindings.Desktop = mergeBindings(c.Keybindings.Desktop, def.Keybindings.Desktop)
	c.Keybindings.Terminal = mergeBindings(c.Keybindings.Terminal, def.Keybindings.Terminal)
}

// mergeBindings adds the default keys for every action the user left out.
func mergeBindings(user, def map[string][]string) map[string][]string {
	out := make(map[string][]string, len(def))
	for action, keys := range def {
		out[action] = keys
	}
	for action, keys := range user {
		out[action] = keys
	}
	return out
}

// GetConfigPath returns $XDG_CONFIG_HOME/obvos/config.toml, creating the directory.
func GetConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join("obvos", "config.toml"))
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

// LoadUserConfig reads the config file, writing the defaults first if it does not exist.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path, writing the defaults first if it does not exist.
func LoadFrom(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// ReadFrom reads and parses the config at path without creating it.
func ReadFrom(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML config data over the defaults, so omitted keys keep their default values.
func Parse(data []byte) (*UserConfig, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.fillDefaults()
	if _, err := cfg.Catalog(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path with a commented header.
func Save(path string, cfg *UserConfig) error {
	data, err := Marshal(cfg, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Marshal encodes cfg as TOML with the file header.
func Marshal(cfg *UserConfig, path string) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("# ObvOS Configuration File\n")
	sb.WriteString("# Keybindings map an action to a list of keys; multiple keys may share an action.\n")
	sb.WriteString("# [[apps]], [[shortcuts]] and [[files]] replace the built-in desktop contents.\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n\n")

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	sb.Write(data)
	return []byte(sb.String()), nil
}
