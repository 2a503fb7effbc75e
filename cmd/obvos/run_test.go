package main

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/obvos/obvos/internal/app"
	"github.com/obvos/obvos/internal/catalog"
	"github.com/obvos/obvos/internal/config"
)

func TestFilterMouseMotion(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Desktop.BootDuration = "0s"
	d := app.NewDesktop(app.Options{Config: cfg, Width: 120, Height: 40})
	d.Resize(120, 40)

	motion := tea.MouseMotionMsg{X: 10, Y: 10}
	if got := filterMouseMotion(d, motion); got != nil {
		t.Error("motion without a drag should be dropped")
	}

	click := tea.MouseClickMsg{X: 10, Y: 10, Button: tea.MouseLeft}
	if got := filterMouseMotion(d, click); got == nil {
		t.Error("clicks must pass through")
	}

	w, ok := d.Manager().Window(catalog.TerminalID)
	if !ok {
		t.Fatal("terminal not open after startup")
	}
	d.Drag().Begin(d.Manager(), w.ID, w.Left+2, w.Top)
	if got := filterMouseMotion(d, motion); got == nil {
		t.Error("motion during a drag must pass through")
	}
}

func TestApplyThemeFlag(t *testing.T) {
	defer func(old string) { themeName = old }(themeName)

	themeName = ""
	cfg := applyThemeFlag(config.DefaultConfig())
	if cfg.Appearance.Theme != config.DefaultConfig().Appearance.Theme {
		t.Errorf("empty flag changed theme to %q", cfg.Appearance.Theme)
	}

	themeName = "dracula"
	if got := applyThemeFlag(config.DefaultConfig()).Appearance.Theme; got != "dracula" {
		t.Errorf("theme = %q, want dracula", got)
	}
}
