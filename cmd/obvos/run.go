package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/obvos/obvos/internal/app"
	"github.com/obvos/obvos/internal/config"
	"github.com/obvos/obvos/internal/input"
	"github.com/obvos/obvos/internal/server"
)

// filterMouseMotion drops mouse motion unless a window is being dragged.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}

	d, ok := model.(*app.Desktop)
	if !ok {
		return msg
	}
	if d.Drag().Active() {
		return msg
	}
	return nil
}

// newLogger writes to --log-file when given, otherwise to fallback.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closer := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "obvos",
	})
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// loadRunConfig loads the user config, falling back to defaults.
func loadRunConfig(logger *log.Logger) (*config.UserConfig, string) {
	path, err := config.GetConfigPath()
	if err != nil {
		logger.Warn("Failed to resolve config path, using defaults", "err", err)
		return applyThemeFlag(config.DefaultConfig()), ""
	}
	userConfig, err := config.LoadFrom(path)
	if err != nil {
		logger.Warn("Failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}
	return applyThemeFlag(userConfig), path
}

func applyThemeFlag(cfg *config.UserConfig) *config.UserConfig {
	if themeName != "" {
		cfg.Appearance.Theme = themeName
	}
	return cfg
}

func runLocal() error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	userConfig, configPath := loadRunConfig(logger)

	cat, err := userConfig.Catalog()
	if err != nil {
		return err
	}

	app.SetInputHandler(input.HandleInput)
	desktop := app.NewDesktop(app.Options{
		Config:  userConfig,
		Catalog: cat,
		Logger:  logger,
	})

	p := tea.NewProgram(
		desktop,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterMouseMotion),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if configPath != "" {
		watchConfig(ctx, p, configPath, logger)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			p.Send(tea.QuitMsg{})
		case <-ctx.Done():
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// watchConfig forwards config file changes to the running program.
func watchConfig(ctx context.Context, p *tea.Program, path string, logger *log.Logger) {
	updates, err := config.Watch(ctx, path, func(err error) {
		p.Send(app.ConfigErrorMsg{Err: err})
	})
	if err != nil {
		logger.Warn("Config reload disabled", "err", err)
		return
	}
	go func() {
		for cfg := range updates {
			p.Send(app.ConfigReloadMsg{Config: applyThemeFlag(cfg)})
		}
	}()
}

func runSSHServer(sshHost, sshPort, sshKeyPath string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	userConfig, _ := loadRunConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.StartSSHServer(ctx, &server.SSHServerConfig{
		Host:       sshHost,
		Port:       sshPort,
		KeyPath:    sshKeyPath,
		UserConfig: userConfig,
		Logger:     logger,
	})
}
