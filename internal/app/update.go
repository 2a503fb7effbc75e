package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/obvos/obvos/internal/config"
)

const bootFrame = time.Second / config.IdleFPS

// BootTickMsg advances the boot splash animation.
type BootTickMsg time.Time

// ClockTickMsg refreshes the taskbar clock and expires notifications.
type ClockTickMsg time.Time

// ConfigReloadMsg carries a configuration reloaded from disk.
type ConfigReloadMsg struct {
	Config *config.UserConfig
}

// ConfigErrorMsg reports a configuration file that failed to reload.
type ConfigErrorMsg struct {
	Err error
}

// InputHandler is a function type that handles input messages.
// This allows Update to delegate to the input package without an import cycle.
type InputHandler func(msg tea.Msg, d *Desktop) (tea.Model, tea.Cmd)

// inputHandler is set by the main package.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// bootTickCmd schedules the next boot splash frame.
func bootTickCmd() tea.Cmd {
	return tea.Tick(bootFrame, func(t time.Time) tea.Msg {
		return BootTickMsg(t)
	})
}

// clockTickCmd schedules the next clock refresh on the second boundary.
func clockTickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return ClockTickMsg(t)
	})
}

// Init starts the boot splash, the clock and the sysinfo sampler.
func (d *Desktop) Init() tea.Cmd {
	cmds := []tea.Cmd{clockTickCmd()}
	if d.appearance.ShowSysInfo {
		cmds = append(cmds, sampleCmd(d.sampler, 0))
	}
	if d.Booting() {
		cmds = append(cmds, bootTickCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles all incoming messages and updates the desktop state.
func (d *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BootTickMsg:
		if !d.Booting() {
			return d, nil
		}
		if d.BootProgress() >= 1 {
			d.SkipBoot()
			return d, nil
		}
		return d, bootTickCmd()

	case ClockTickMsg:
		return d, clockTickCmd()

	case SysInfoMsg:
		if msg.Err != nil {
			d.Log("DEBUG", "sysinfo: %v", msg.Err)
		} else {
			d.sysinfo.Add(msg.CPU, msg.RAM)
		}
		if !d.appearance.ShowSysInfo {
			return d, nil
		}
		return d, sampleCmd(d.sampler, SysInfoInterval)

	case ConfigReloadMsg:
		showedSysInfo := d.appearance.ShowSysInfo
		d.ApplyConfig(msg.Config)
		if !showedSysInfo && d.appearance.ShowSysInfo {
			return d, sampleCmd(d.sampler, 0)
		}
		return d, nil

	case ConfigErrorMsg:
		d.LogError("config reload: %v", msg.Err)
		d.Notify("Config error, keeping current settings")
		return d, nil

	case tea.WindowSizeMsg:
		d.Resize(msg.Width, msg.Height)
		return d, nil

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg,
		tea.MouseReleaseMsg, tea.MouseWheelMsg, tea.PasteMsg:
		if inputHandler != nil {
			return inputHandler(msg, d)
		}
		return d, nil
	}

	return d, nil
}
